package metadata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// DefaultPDFScanBytes bounds how much of a PDF the provider reads.
// Info dictionaries and JavaScript actions sit in the object stream, so a
// bounded raw scan covers the overwhelming majority of documents without
// loading multi-gigabyte files.
const DefaultPDFScanBytes = 4 << 20 // 4 MiB

// infoFieldPattern matches literal-string values of the common document
// information dictionary keys.
var infoFieldPattern = regexp.MustCompile(`/(Title|Author|Subject|Creator|Producer)\s*\(([^)]*)\)`)

// PDFProvider extracts document-information fields and flags embedded
// JavaScript actions. It works from the raw bytes rather than a full PDF
// object parser: triage needs the signal, not a rendering-grade model of
// the document.
type PDFProvider struct {
	MaxScanBytes int64
}

// Name implements Provider.
func (p *PDFProvider) Name() string { return "pdf" }

// Supports implements Provider.
func (p *PDFProvider) Supports(ext, mimeType string) bool {
	return ext == "pdf" || strings.Contains(mimeType, "pdf")
}

// Extract implements Provider.
func (p *PDFProvider) Extract(ctx context.Context, src Source) (map[string]any, error) {
	limit := p.MaxScanBytes
	if limit <= 0 {
		limit = DefaultPDFScanBytes
	}

	data, err := io.ReadAll(io.LimitReader(src.Reader(), limit))
	if err != nil {
		return nil, fmt.Errorf("read pdf content: %w", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("not a PDF document: missing %%PDF- header")
	}

	info := make(map[string]any)
	for _, m := range infoFieldPattern.FindAllSubmatch(data, -1) {
		key := strings.ToLower(string(m[1]))
		if _, exists := info[key]; !exists {
			info[key] = string(m[2])
		}
	}

	jsDetected := bytes.Contains(data, []byte("/JavaScript")) ||
		bytes.Contains(data, []byte("/JS"))

	return map[string]any{
		"metadata":            info,
		"javascript_detected": jsDetected,
	}, nil
}
