package metadata

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// OfficeProvider extracts core document properties from Office Open XML
// word documents. DOCX is a ZIP container; the properties live in
// docProps/core.xml.
type OfficeProvider struct{}

// Name implements Provider.
func (p *OfficeProvider) Name() string { return "docx" }

// Supports implements Provider.
func (p *OfficeProvider) Supports(ext, mimeType string) bool {
	return ext == "docx" || strings.Contains(mimeType, "wordprocessingml")
}

// coreProperties mirrors the OOXML core-properties part. The xml tags
// match local names, so the dc/dcterms/cp namespace prefixes all resolve.
type coreProperties struct {
	Title          string `xml:"title"`
	Creator        string `xml:"creator"`
	Created        string `xml:"created"`
	Modified       string `xml:"modified"`
	LastModifiedBy string `xml:"lastModifiedBy"`
}

// Extract implements Provider.
func (p *OfficeProvider) Extract(ctx context.Context, src Source) (map[string]any, error) {
	zr, err := zip.NewReader(src.ReaderAt, src.Size)
	if err != nil {
		return nil, fmt.Errorf("open docx container: %w", err)
	}

	var core *zip.File
	for _, f := range zr.File {
		if f.Name == "docProps/core.xml" {
			core = f
			break
		}
	}
	if core == nil {
		return nil, fmt.Errorf("missing docProps/core.xml - not a valid Office document")
	}

	rc, err := core.Open()
	if err != nil {
		return nil, fmt.Errorf("open core properties: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read core properties: %w", err)
	}

	var props coreProperties
	if err := xml.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("parse core properties: %w", err)
	}

	return map[string]any{
		"title":            props.Title,
		"author":           props.Creator,
		"created":          props.Created,
		"modified":         props.Modified,
		"last_modified_by": props.LastModifiedBy,
	}, nil
}
