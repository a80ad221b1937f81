package triagekit

import (
	"bytes"
	"mime"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// MagicSignature defines a file type signature matched against the file
// prefix.
type MagicSignature struct {
	Label string
	Magic []byte
}

// magicHeaderLen is how many leading bytes signature matching consults.
const magicHeaderLen = 16

// magicSignatures is the fixed detection table. Order is a contract:
// the first match wins, even though no current entries overlap.
var magicSignatures = []MagicSignature{
	{Label: "image/jpeg", Magic: []byte{0xFF, 0xD8, 0xFF}},
	{Label: "image/png", Magic: []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}},
	{Label: "application/pdf", Magic: []byte("%PDF-")},
	{Label: "zip/office", Magic: []byte{'P', 'K', 0x03, 0x04}},
	{Label: "windows-executable", Magic: []byte{'M', 'Z'}},
	{Label: "linux-elf", Magic: []byte{0x7F, 'E', 'L', 'F'}},
}

// DetectMagic matches the leading bytes of header against the signature
// table and returns the detected label, or "unknown" if nothing matches.
func DetectMagic(header []byte) string {
	if len(header) > magicHeaderLen {
		header = header[:magicHeaderLen]
	}
	for _, sig := range magicSignatures {
		if bytes.HasPrefix(header, sig.Magic) {
			return sig.Label
		}
	}
	return "unknown"
}

// MIME resolution sources, reported alongside the resolved type.
const (
	MIMESourceContent   = "content"
	MIMESourceExtension = "extension"
	MIMESourceDefault   = "default"
)

// defaultMIMEType is the generic binary fallback when no resolver answers.
const defaultMIMEType = "application/octet-stream"

// MIMEResolver resolves a best-effort MIME type for a file. An empty
// result means the resolver has no answer and the chain moves on.
type MIMEResolver interface {
	Name() string
	Resolve(path string, prefix []byte) string
}

// contentResolver identifies the type from magic numbers in the content.
type contentResolver struct{}

func (contentResolver) Name() string { return MIMESourceContent }

func (contentResolver) Resolve(path string, prefix []byte) string {
	kind, err := filetype.Match(prefix)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

// extensionResolver guesses the type from the claimed file extension.
type extensionResolver struct{}

func (extensionResolver) Name() string { return MIMESourceExtension }

func (extensionResolver) Resolve(path string, prefix []byte) string {
	guess := mime.TypeByExtension(filepath.Ext(path))
	if guess == "" {
		return ""
	}
	// Strip parameters such as "; charset=utf-8"
	if idx := strings.Index(guess, ";"); idx > 0 {
		guess = strings.TrimSpace(guess[:idx])
	}
	return guess
}

// MIMEDetector runs an ordered chain of resolvers. The chain is fixed at
// construction rather than re-discovered per call; it never fails and
// always returns a best-effort type.
type MIMEDetector struct {
	chain []MIMEResolver
}

// NewMIMEDetector builds the standard chain: content magic numbers,
// then extension guess, then the generic binary default.
func NewMIMEDetector() *MIMEDetector {
	return &MIMEDetector{
		chain: []MIMEResolver{
			contentResolver{},
			extensionResolver{},
		},
	}
}

// Detect returns the resolved MIME type and the name of the resolver that
// produced it.
func (d *MIMEDetector) Detect(path string, prefix []byte) (mimeType, source string) {
	for _, r := range d.chain {
		if got := r.Resolve(path, prefix); got != "" {
			return got, r.Name()
		}
	}
	return defaultMIMEType, MIMESourceDefault
}

// ExtensionMismatch reports whether the claimed extension disagrees with
// the resolved MIME type: true iff the lower-cased extension token is
// non-empty and not found as a substring of the MIME string. An empty
// extension never mismatches.
func ExtensionMismatch(claimedExt, mimeType string) bool {
	ext := strings.ToLower(strings.TrimPrefix(claimedExt, "."))
	if ext == "" {
		return false
	}
	return !strings.Contains(mimeType, ext)
}
