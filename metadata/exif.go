package metadata

import (
	"context"
	"fmt"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ExifProvider extracts EXIF tags from JPEG and PNG images.
type ExifProvider struct{}

// Name implements Provider.
func (p *ExifProvider) Name() string { return "exif" }

// Supports implements Provider.
func (p *ExifProvider) Supports(ext, mimeType string) bool {
	switch ext {
	case "jpg", "jpeg", "png":
		return true
	}
	return false
}

// Extract decodes the EXIF block and flattens every tag into the mapping,
// stringified the way evidence reports expect.
func (p *ExifProvider) Extract(ctx context.Context, src Source) (map[string]any, error) {
	x, err := exif.Decode(src.Reader())
	if err != nil {
		return nil, fmt.Errorf("decode exif: %w", err)
	}

	collector := &tagCollector{fields: make(map[string]any)}
	if err := x.Walk(collector); err != nil {
		return nil, fmt.Errorf("walk exif tags: %w", err)
	}
	return collector.fields, nil
}

// tagCollector implements exif.Walker, flattening tags into a mapping.
type tagCollector struct {
	fields map[string]any
}

func (c *tagCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	c.fields[string(name)] = tag.String()
	return nil
}
