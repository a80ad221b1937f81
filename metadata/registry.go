package metadata

import "sync"

// Registry holds the provider table resolved once at startup, keyed by
// what each provider declares it supports. Resolution order is
// registration order.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a provider to the registry.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, p)
}

// Resolve returns the providers that apply to the given claimed extension
// and resolved MIME type, in registration order.
func (r *Registry) Resolve(ext, mimeType string) []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []Provider
	for _, p := range r.providers {
		if p.Supports(ext, mimeType) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Count returns the number of registered providers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

// DefaultRegistry returns a registry with all built-in providers
// registered: EXIF for images, PDF properties, DOCX core properties, and
// ffprobe-backed video metadata.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(&ExifProvider{})
	registry.Register(&PDFProvider{MaxScanBytes: DefaultPDFScanBytes})
	registry.Register(&OfficeProvider{})
	registry.Register(&FFProbeProvider{})
	return registry
}
