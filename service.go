package triagekit

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/forensight/triagekit/metadata"
)

// Analyzer performs static triage of files. It is safe for concurrent
// use: every Analyze call is an independent synchronous invocation with
// no shared mutable state.
type Analyzer struct {
	cfg       *Config
	mimes     *MIMEDetector
	providers *metadata.Registry
}

// NewAnalyzer creates an analyzer from the given configuration and
// provider registry. A nil config falls back to [DefaultConfig]; a nil
// registry falls back to [metadata.DefaultRegistry].
func NewAnalyzer(cfg *Config, providers *metadata.Registry) *Analyzer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if providers == nil {
		providers = metadata.DefaultRegistry()
	}
	return &Analyzer{
		cfg:       cfg,
		mimes:     NewMIMEDetector(),
		providers: providers,
	}
}

// Analyze triages the file at path and returns its report.
//
// Only input errors (missing or unreadable file) fail the call. Every
// other failure degrades gracefully into the report: provider failures
// land inline as {"error": ...} markers and container parse anomalies
// become findings.
func (a *Analyzer) Analyze(ctx context.Context, path string) (*Report, error) {
	handle, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	hashes, contentKey, err := ComputeHashes(handle, a.cfg.HashChunkSize)
	if err != nil {
		return nil, err
	}

	sample, err := handle.ReadPrefix(a.cfg.EntropySampleSize)
	if err != nil {
		return nil, err
	}

	magicHeader := DetectMagic(sample)
	mimeType, _ := a.mimes.Detect(path, sample)

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	mismatch := ExtensionMismatch(ext, mimeType)

	// String extraction and the embedded-signature sweep need the whole
	// content; the bounded sample above only serves entropy and type
	// detection.
	content, err := handle.ReadAll()
	if err != nil {
		return nil, err
	}

	suspicious := ExtractStrings(content, a.cfg.StringMinLength, a.cfg.StringLimit)

	issues := []string{}
	if IsContainerExtension(ext) {
		issues = ScanBoxes(content)
	}

	meta := a.extractMetadata(ctx, handle, ext, mimeType)

	score, reasons := ScoreRisk(a.cfg, Findings{
		ExtensionMismatch: mismatch,
		Entropy:           Entropy(sample),
		SuspiciousStrings: suspicious,
		ContainerIssues:   issues,
	})

	return &Report{
		FileName:          handle.Name(),
		FileSize:          HumanReadableSize(handle.Size()),
		MIMEType:          mimeType,
		MagicHeader:       magicHeader,
		Hashes:            hashes,
		Entropy:           Entropy(sample),
		ExtensionMismatch: mismatch,
		Metadata:          meta,
		SuspiciousStrings: suspicious,
		ContainerIssues:   issues,
		RiskScore:         score,
		RiskReasons:       reasons,
		AnalysisTimestamp: time.Now().UTC().Format(time.RFC3339),
		contentKey:        contentKey,
	}, nil
}

// extractMetadata runs every applicable provider under the configured
// timeout. A provider failure is recorded inline and never aborts the
// report.
func (a *Analyzer) extractMetadata(ctx context.Context, handle *FileHandle, ext, mimeType string) map[string]any {
	meta := map[string]any{}

	src := metadata.Source{
		Path:     handle.Path(),
		Size:     handle.Size(),
		ReaderAt: handle.Reader(),
	}

	for _, p := range a.providers.Resolve(ext, mimeType) {
		pctx, cancel := context.WithTimeout(ctx, a.cfg.ProviderTimeout())
		fields, err := p.Extract(pctx, src)
		cancel()

		if err != nil {
			meta[p.Name()] = map[string]any{"error": err.Error()}
			continue
		}
		meta[p.Name()] = fields
	}
	return meta
}

// AnalyzeAndWrite triages the file and persists the report under the
// configured report directory, returning the report and its written path.
func (a *Analyzer) AnalyzeAndWrite(ctx context.Context, path string) (*Report, string, error) {
	report, err := a.Analyze(ctx, path)
	if err != nil {
		return nil, "", err
	}

	reportPath, err := WriteReport(a.cfg.ReportDir, report)
	if err != nil {
		return nil, "", err
	}
	return report, reportPath, nil
}
