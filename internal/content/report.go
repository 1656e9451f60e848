package content

import "fmt"

// Threats records which detector signals fired for a page.
type Threats struct {
	HiddenContentCount    int  `json:"hidden_content_count"`
	InjectionDetected     bool `json:"injection_detected"`
	DeceptiveUI           bool `json:"deceptive_ui"`
	Phishing              bool `json:"phishing"`
	FakeDialog            bool `json:"fake_dialog"`
	SuspiciousTargetCount int  `json:"suspicious_target_count"`
	HomographPhishing     bool `json:"homograph_phishing"`
}

// RiskReport is the analyzer's assessment of one page. The analyzer never
// mutates a report after construction; the one sanctioned post-construction
// mutation is Escalate, performed by the orchestrator after an independent
// intent-alignment check.
type RiskReport struct {
	URL         string  `json:"url"`
	RiskScore   int     `json:"risk_score"`
	Explanation string  `json:"explanation"`
	Threats     Threats `json:"threats"`
}

// Escalate raises the report's score to at least floor and prepends reason
// to the explanation. Called by the orchestrator when a proposed action is
// misaligned with the user's task, not by the analyzer.
func (r *RiskReport) Escalate(floor int, reason string) {
	if floor > 10 {
		floor = 10
	}
	if r.RiskScore < floor {
		r.RiskScore = floor
	}
	r.Explanation = fmt.Sprintf("Intent mismatch: %s | %s", reason, r.Explanation)
}

// hiddenFinding is one hidden element flagged by the hidden-content detector.
type hiddenFinding struct {
	Tag     string
	Reason  string
	Snippet string
}

// targetFinding is one element whose navigation target looks malicious.
type targetFinding struct {
	Element string
	Text    string
	Target  string
}
