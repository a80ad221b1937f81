package metadata

import (
	"context"
	"testing"
)

// fakeProvider matches a single extension and records nothing.
type fakeProvider struct {
	name string
	ext  string
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Supports(ext, mimeType string) bool { return ext == p.ext }

func (p *fakeProvider) Extract(ctx context.Context, src Source) (map[string]any, error) {
	return map[string]any{"provider": p.name}, nil
}

func TestRegistryResolveOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeProvider{name: "first", ext: "bin"})
	r.Register(&fakeProvider{name: "second", ext: "bin"})
	r.Register(&fakeProvider{name: "other", ext: "txt"})

	if r.Count() != 3 {
		t.Errorf("Count = %d, want 3", r.Count())
	}

	matched := r.Resolve("bin", "application/octet-stream")
	if len(matched) != 2 {
		t.Fatalf("Resolve matched %d providers, want 2", len(matched))
	}
	if matched[0].Name() != "first" || matched[1].Name() != "second" {
		t.Errorf("resolution order = %s, %s; want registration order",
			matched[0].Name(), matched[1].Name())
	}
}

func TestRegistryResolveNoMatch(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeProvider{name: "only", ext: "pdf"})

	if matched := r.Resolve("exe", "application/x-msdownload"); len(matched) != 0 {
		t.Errorf("Resolve matched %d providers, want 0", len(matched))
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	if r.Count() != 4 {
		t.Errorf("Count = %d, want 4 built-in providers", r.Count())
	}

	tests := []struct {
		ext      string
		mimeType string
		want     []string
	}{
		{ext: "jpg", mimeType: "image/jpeg", want: []string{"exif"}},
		{ext: "pdf", mimeType: "application/pdf", want: []string{"pdf"}},
		{ext: "docx", mimeType: "zip/office", want: []string{"docx"}},
		{ext: "mp4", mimeType: "video/mp4", want: []string{"video"}},
		{ext: "bin", mimeType: "application/octet-stream", want: nil},
	}

	for _, tt := range tests {
		matched := r.Resolve(tt.ext, tt.mimeType)
		var names []string
		for _, p := range matched {
			names = append(names, p.Name())
		}
		if len(names) != len(tt.want) {
			t.Errorf("Resolve(%q, %q) = %v, want %v", tt.ext, tt.mimeType, names, tt.want)
			continue
		}
		for i := range names {
			if names[i] != tt.want[i] {
				t.Errorf("Resolve(%q, %q) = %v, want %v", tt.ext, tt.mimeType, names, tt.want)
			}
		}
	}
}

func TestSourceReaderIndependence(t *testing.T) {
	src := sourceFromBytes([]byte("shared backing content"))

	first := make([]byte, 6)
	if _, err := src.Reader().Read(first); err != nil {
		t.Fatalf("first read: %v", err)
	}
	second := make([]byte, 6)
	if _, err := src.Reader().Read(second); err != nil {
		t.Fatalf("second read: %v", err)
	}
	if string(first) != "shared" || string(second) != "shared" {
		t.Errorf("readers share position: %q vs %q", first, second)
	}
}
