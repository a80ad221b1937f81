package triagekit

// Findings carries the binary-analysis outputs the risk aggregator
// consumes.
type Findings struct {
	ExtensionMismatch bool
	Entropy           float64
	SuspiciousStrings []string
	ContainerIssues   []string
}

// Reason strings, emitted in rule-table order.
const (
	ReasonExtensionMismatch = "Extension mismatch"
	ReasonHighEntropy       = "High entropy"
	ReasonSuspiciousStrings = "Suspicious strings"
	ReasonContainerIssues   = "Container structural anomalies"
)

// ScoreRisk combines findings into a bounded score and ordered reason
// list. Each rule is an independent binary trigger with a fixed weight;
// there is no magnitude scaling. The sum is clamped to [0, 100] and
// reasons appear in rule-table order, not discovery order.
//
// The suspicious-strings rule fires on the mere presence of any extracted
// printable run. That is deliberately coarse and content-agnostic,
// preserved for compatibility with existing reports.
func ScoreRisk(cfg *Config, f Findings) (int, []string) {
	rules := []struct {
		triggered bool
		weight    int
		reason    string
	}{
		{f.ExtensionMismatch, cfg.WeightExtensionMismatch, ReasonExtensionMismatch},
		{f.Entropy >= cfg.EntropyThreshold, cfg.WeightHighEntropy, ReasonHighEntropy},
		{len(f.SuspiciousStrings) > 0, cfg.WeightSuspiciousStrings, ReasonSuspiciousStrings},
		{len(f.ContainerIssues) > 0, cfg.WeightContainerIssues, ReasonContainerIssues},
	}

	score := 0
	reasons := []string{}
	for _, rule := range rules {
		if rule.triggered {
			score += rule.weight
			reasons = append(reasons, rule.reason)
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score, reasons
}
