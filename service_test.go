package triagekit

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/forensight/triagekit/metadata"
)

// newTestAnalyzer builds an analyzer with an empty provider registry so
// results do not depend on tools installed on the host.
func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ReportDir = t.TempDir()
	return NewAnalyzer(cfg, metadata.NewRegistry())
}

func TestAnalyzeMissingFile(t *testing.T) {
	a := newTestAnalyzer(t)
	_, err := a.Analyze(context.Background(), "/nonexistent/evidence.bin")
	if err == nil {
		t.Fatal("Analyze on missing file succeeded")
	}
	if !IsInputError(err) {
		t.Errorf("missing file is not an input error: %v", err)
	}
}

func TestAnalyzeZeroFilledBinary(t *testing.T) {
	path := writeTestFile(t, "zeros.bin", make([]byte, 1024))

	a := newTestAnalyzer(t)
	report, err := a.Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.FileName != "zeros.bin" {
		t.Errorf("FileName = %s", report.FileName)
	}
	if report.FileSize != "1.00 KB" {
		t.Errorf("FileSize = %s, want 1.00 KB", report.FileSize)
	}
	if report.MagicHeader != "unknown" {
		t.Errorf("MagicHeader = %s, want unknown", report.MagicHeader)
	}
	if report.Entropy != 0.0 {
		t.Errorf("Entropy = %v, want 0.0", report.Entropy)
	}
	if len(report.SuspiciousStrings) != 0 {
		t.Errorf("SuspiciousStrings = %q, want none", report.SuspiciousStrings)
	}
	// Not a container extension: the box walk never ran.
	if len(report.ContainerIssues) != 0 {
		t.Errorf("ContainerIssues = %q, want none", report.ContainerIssues)
	}
	// Zero bytes carry no content signature, so whatever MIME type the
	// fallback chain settles on cannot contain the token "bin".
	if !report.ExtensionMismatch {
		t.Error("ExtensionMismatch = false, want true")
	}
	if report.RiskScore != 25 {
		t.Errorf("RiskScore = %d, want 25", report.RiskScore)
	}
	if !reflect.DeepEqual(report.RiskReasons, []string{ReasonExtensionMismatch}) {
		t.Errorf("RiskReasons = %q", report.RiskReasons)
	}

	for alg, digest := range report.Hashes {
		if digest == "" {
			t.Errorf("hash %s is empty", alg)
		}
	}
	if len(report.Hashes) != 3 {
		t.Errorf("Hashes has %d entries, want 3", len(report.Hashes))
	}

	if _, err := time.Parse(time.RFC3339, report.AnalysisTimestamp); err != nil {
		t.Errorf("AnalysisTimestamp %q is not RFC3339: %v", report.AnalysisTimestamp, err)
	}
}

func TestAnalyzeWellFormedContainer(t *testing.T) {
	data := bytes.Join([][]byte{
		box("ftyp", []byte("isomiso2")),
		box("free", nil),
		box("free", nil),
	}, nil)
	path := writeTestFile(t, "clip.mp4", data)

	a := newTestAnalyzer(t)
	report, err := a.Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.MIMEType != "video/mp4" {
		t.Errorf("MIMEType = %s, want video/mp4", report.MIMEType)
	}
	if report.ExtensionMismatch {
		t.Error("ExtensionMismatch = true for a genuine mp4")
	}
	if len(report.ContainerIssues) != 0 {
		t.Errorf("ContainerIssues = %q, want none", report.ContainerIssues)
	}
	// The ftyp header itself is a printable run long enough to extract,
	// so the content-agnostic strings rule fires on its own.
	if !reflect.DeepEqual(report.SuspiciousStrings, []string{"ftypisomiso2"}) {
		t.Errorf("SuspiciousStrings = %q", report.SuspiciousStrings)
	}
	if report.RiskScore != 20 {
		t.Errorf("RiskScore = %d, want 20", report.RiskScore)
	}
	if !reflect.DeepEqual(report.RiskReasons, []string{ReasonSuspiciousStrings}) {
		t.Errorf("RiskReasons = %q", report.RiskReasons)
	}
}

func TestAnalyzeMalformedContainer(t *testing.T) {
	data := bytes.Join([][]byte{
		box("ftyp", []byte("isomiso2")),
		{0, 0, 0, 4, 'x', 'x', 'x', 'x'},
	}, nil)
	path := writeTestFile(t, "broken.mp4", data)

	a := newTestAnalyzer(t)
	report, err := a.Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	want := []string{"suspicious box size at offset 16"}
	if !reflect.DeepEqual(report.ContainerIssues, want) {
		t.Errorf("ContainerIssues = %q, want %q", report.ContainerIssues, want)
	}
	// Strings rule fires on the ftyp run, container rule on the bad box.
	if report.RiskScore != 40 {
		t.Errorf("RiskScore = %d, want 40", report.RiskScore)
	}
	wantReasons := []string{ReasonSuspiciousStrings, ReasonContainerIssues}
	if !reflect.DeepEqual(report.RiskReasons, wantReasons) {
		t.Errorf("RiskReasons = %q, want %q", report.RiskReasons, wantReasons)
	}
}

func TestAnalyzeDeterministicHashes(t *testing.T) {
	path := writeTestFile(t, "stable.bin", []byte("the same content every run"))

	a := newTestAnalyzer(t)
	first, err := a.Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("first Analyze: %v", err)
	}
	second, err := a.Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("second Analyze: %v", err)
	}

	if !reflect.DeepEqual(first.Hashes, second.Hashes) {
		t.Errorf("hashes differ across runs: %v vs %v", first.Hashes, second.Hashes)
	}
	if first.ReportFileName() != second.ReportFileName() {
		t.Error("report names differ for identical content")
	}
}

func TestAnalyzeAndWrite(t *testing.T) {
	path := writeTestFile(t, "persist.bin", []byte("write me out"))

	a := newTestAnalyzer(t)
	report, reportPath, err := a.AnalyzeAndWrite(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeAndWrite: %v", err)
	}

	if filepath.Base(reportPath) != report.ReportFileName() {
		t.Errorf("written path %s does not match report name %s",
			reportPath, report.ReportFileName())
	}
	if _, err := os.Stat(reportPath); err != nil {
		t.Errorf("report file not written: %v", err)
	}
}

func TestNewAnalyzerNilFallbacks(t *testing.T) {
	a := NewAnalyzer(nil, nil)
	if a.cfg == nil || a.providers == nil || a.mimes == nil {
		t.Error("nil arguments did not fall back to defaults")
	}
}
