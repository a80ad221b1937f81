package triagekit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Report is the structured result of one analysis. The JSON keys are a
// stable external contract; consumers key on them. A report is immutable
// once produced and is written at most once per analysis run.
type Report struct {
	FileName          string         `json:"file_name"`
	FileSize          string         `json:"file_size"`
	MIMEType          string         `json:"mime_type"`
	MagicHeader       string         `json:"magic_header"`
	Hashes            HashSet        `json:"hashes"`
	Entropy           float64        `json:"entropy"`
	ExtensionMismatch bool           `json:"extension_mismatch"`
	Metadata          map[string]any `json:"metadata"`
	SuspiciousStrings []string       `json:"suspicious_strings"`
	ContainerIssues   []string       `json:"container_issues"`
	RiskScore         int            `json:"risk_score"`
	RiskReasons       []string       `json:"risk_reasons"`
	AnalysisTimestamp string         `json:"analysis_timestamp"`

	// contentKey is the xxhash64 of the full content, used only to derive
	// a collision-free report path for concurrent analyses.
	contentKey uint64
}

// Verdict derives the coarse human verdict from the risk score.
func (r *Report) Verdict() string {
	if r.RiskScore > 50 {
		return "Suspicious"
	}
	return "Safe"
}

// ReportFileName returns the content-derived file name the report is
// persisted under. Identical content always maps to the same name, so
// concurrent analyses of different files never race on a path.
func (r *Report) ReportFileName() string {
	return fmt.Sprintf("file_report_%016x.json", r.contentKey)
}

// WriteReport persists the report as indented JSON under dir and returns
// the written path.
func WriteReport(dir string, r *Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	path := filepath.Join(dir, r.ReportFileName())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// HumanReadableSize formats a byte count the way the report's file_size
// field expects ("1.00 KB", "3.47 MB", ...).
func HumanReadableSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < 1024 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.2f PB", value)
}
