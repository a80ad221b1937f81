package triagekit

import (
	"encoding/json"
	"os"
	"testing"
)

func TestHumanReadableSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{size: 0, want: "0.00 B"},
		{size: 1, want: "1.00 B"},
		{size: 1023, want: "1023.00 B"},
		{size: 1024, want: "1.00 KB"},
		{size: 1536, want: "1.50 KB"},
		{size: 1 << 20, want: "1.00 MB"},
		{size: 3*(1<<20) + 481036, want: "3.46 MB"},
		{size: 1 << 30, want: "1.00 GB"},
		{size: 1 << 40, want: "1.00 TB"},
		{size: 1 << 50, want: "1.00 PB"},
	}

	for _, tt := range tests {
		if got := HumanReadableSize(tt.size); got != tt.want {
			t.Errorf("HumanReadableSize(%d) = %s, want %s", tt.size, got, tt.want)
		}
	}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{score: 0, want: "Safe"},
		{score: 50, want: "Safe"},
		{score: 51, want: "Suspicious"},
		{score: 100, want: "Suspicious"},
	}

	for _, tt := range tests {
		r := &Report{RiskScore: tt.score}
		if got := r.Verdict(); got != tt.want {
			t.Errorf("Verdict at score %d = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestReportFileName(t *testing.T) {
	r := &Report{contentKey: 0xdeadbeef}
	want := "file_report_00000000deadbeef.json"
	if got := r.ReportFileName(); got != want {
		t.Errorf("ReportFileName = %s, want %s", got, want)
	}

	// Same content key, same name.
	other := &Report{contentKey: 0xdeadbeef}
	if other.ReportFileName() != r.ReportFileName() {
		t.Error("identical content keys produced different report names")
	}
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir() + "/nested/reports"
	r := &Report{
		FileName:          "sample.bin",
		FileSize:          "1.00 KB",
		MIMEType:          "application/octet-stream",
		MagicHeader:       "unknown",
		Hashes:            HashSet{HashMD5: "x", HashSHA1: "y", HashSHA256: "z"},
		Entropy:           0.0,
		Metadata:          map[string]any{},
		SuspiciousStrings: []string{},
		ContainerIssues:   []string{},
		RiskReasons:       []string{},
		AnalysisTimestamp: "2026-08-23T00:00:00Z",
		contentKey:        42,
	}

	path, err := WriteReport(dir, r)
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back report: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}

	keys := []string{
		"file_name", "file_size", "mime_type", "magic_header", "hashes",
		"entropy", "extension_mismatch", "metadata", "suspicious_strings",
		"container_issues", "risk_score", "risk_reasons", "analysis_timestamp",
	}
	for _, key := range keys {
		if _, ok := decoded[key]; !ok {
			t.Errorf("report JSON missing key %q", key)
		}
	}
	if len(decoded) != len(keys) {
		t.Errorf("report JSON has %d keys, want %d", len(decoded), len(keys))
	}

	if decoded["file_name"] != "sample.bin" {
		t.Errorf("file_name = %v", decoded["file_name"])
	}
	hashes, ok := decoded["hashes"].(map[string]any)
	if !ok || hashes["sha256"] != "z" {
		t.Errorf("hashes round-trip broken: %v", decoded["hashes"])
	}
}
