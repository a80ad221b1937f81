// Package metadata implements the optional, type-specific extractors that
// enrich a triage report. Providers are independently failable: a failing
// provider contributes an error marker to its own metadata slot and never
// aborts the overall report.
package metadata

import (
	"context"
	"io"
)

// Source gives a provider byte access to the file under analysis without
// handing it ownership of the underlying handle.
type Source struct {
	Path     string
	Size     int64
	ReaderAt io.ReaderAt
}

// Reader returns an independent reader over the full content.
func (s Source) Reader() *io.SectionReader {
	return io.NewSectionReader(s.ReaderAt, 0, s.Size)
}

// Provider extracts type-specific metadata for files it supports.
//
// Extract returns either a metadata mapping or an error; the caller
// records errors inline as {"error": ...} in the provider's slot.
// Providers that invoke external tooling must respect ctx, which carries
// a bounded timeout.
type Provider interface {
	// Name is the key the provider's fields appear under in the report
	// metadata mapping.
	Name() string

	// Supports reports whether the provider applies to a file with the
	// given claimed extension (lower-cased, no dot) and resolved MIME type.
	Supports(ext, mimeType string) bool

	// Extract returns the provider's metadata mapping for the file.
	Extract(ctx context.Context, src Source) (map[string]any, error)
}
