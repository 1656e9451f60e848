// Package mediator implements the action policy mediator: it consumes a page
// risk report plus a proposed agent action and renders an allow/block/confirm
// decision.
//
// The decision precedence is deliberate and ordering-sensitive:
//
//  1. Static blocklist           — hard policy ceiling, overrides everything
//  2. High-risk branch (score ≥ threshold)
//     a. safe-escape click override (cancel/close/…)  → allowed
//     b. navigation: same-page reload blocked, malicious destination
//     blocked, anything else allowed (leaving is the escape route)
//     c. suspicious redirect targets                  → blocked
//     d. phishing                                     → blocked
//     e. fake dialog                                  → blocked
//     f. otherwise                                    → require confirmation
//  3. Sensitive actions / password parameters          → require confirmation
//  4. Default                                          → allowed
//
// The asymmetry in 2b is intentional: staying on a risky page is gated,
// leaving it is encouraged. Defensive blocking must never trap the agent on
// the very page it is trying to escape.
package mediator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gzhole/browsershield/internal/content"
	"github.com/gzhole/browsershield/internal/session"
	"github.com/gzhole/browsershield/internal/trust"
)

// Status is the closed set of decision outcomes.
type Status string

const (
	StatusAllowed             Status = "allowed"
	StatusBlocked             Status = "blocked"
	StatusRequireConfirmation Status = "require_confirmation"
)

// Decision is the terminal output of one mediation call, immutable once
// returned. Reason is always populated; there is no silent allow.
type Decision struct {
	Status Status `json:"status"`
	Reason string `json:"reason"`
}

// blockedActions are internal action kinds prohibited unconditionally,
// regardless of page risk.
var blockedActions = map[string]struct{}{
	"delete":   {},
	"format":   {},
	"sys_call": {},
}

// sensitiveActions require human confirmation even on low-risk pages.
var sensitiveActions = map[string]struct{}{
	"input_text":    {},
	"click_submit":  {},
	"cookie_access": {},
}

// remediationWords mark a click as a safe escape from a risky page.
// "x" is matched as a standalone word so that arbitrary selectors containing
// the letter do not qualify.
var (
	remediationWords      = []string{"cancel", "close", "reject", "deny"}
	remediationXPattern   = regexp.MustCompile(`\bx\b`)
	maliciousDestinations = []string{"attacker.com", "leak", "payload", "127.0.0.1/leak"}
)

// Mediator renders decisions for proposed actions. It is a pure decision
// function: the caller owns all session-state bookkeeping.
type Mediator struct {
	cfg *trust.Config
}

// New creates a mediator bound to the given trust configuration. The only
// configuration input it consumes is the risk threshold.
func New(cfg *trust.Config) *Mediator {
	if cfg == nil {
		cfg = trust.Default()
	}
	return &Mediator{cfg: cfg}
}

// Validate applies the decision precedence to one proposed action.
// Missing inputs degrade to permissive field defaults: a nil report is an
// empty report with score 0, nil params are empty params. The session state
// is read-only here; counting blocked decisions and enforcing the abort
// ceiling belongs to the orchestrator.
func (m *Mediator) Validate(actionType string, params map[string]any, report *content.RiskReport, state *session.State) Decision {
	_ = state

	if params == nil {
		params = map[string]any{}
	}
	if report == nil {
		report = &content.RiskReport{Explanation: "Missing report"}
	}

	// 1. Static blocklist: a hard ceiling no risk signal can override.
	if _, prohibited := blockedActions[actionType]; prohibited {
		return Decision{
			Status: StatusBlocked,
			Reason: fmt.Sprintf("Action '%s' is prohibited by security policy.", actionType),
		}
	}

	// 2. High-risk branch.
	if report.RiskScore >= m.cfg.RiskThreshold {
		serialized := serializeParams(params)

		// 2a. Safe-escape override: a risky page must never trap the agent
		// behind its own risk gate when the agent is trying to leave.
		if actionType == "click" && isRemediation(serialized) {
			return Decision{
				Status: StatusAllowed,
				Reason: "Safe action (Cancel/Close) allowed on risky page to enable recovery.",
			}
		}

		// 2b. Navigation: reloads blocked, malicious destinations blocked,
		// everything else is the canonical escape route.
		if actionType == "navigate" {
			return m.validateEscapeNavigation(params, report)
		}

		// 2c-2e. Near-certain attacks get a hard block rather than a soft
		// confirmation.
		if report.Threats.SuspiciousTargetCount > 0 {
			return Decision{
				Status: StatusBlocked,
				Reason: "I've disabled this button because it appears to redirect to a malicious or deceptive website.",
			}
		}
		if report.Threats.Phishing {
			return Decision{
				Status: StatusBlocked,
				Reason: fmt.Sprintf("I've blocked interaction with this page because it appears to be a phishing scam. %s", report.Explanation),
			}
		}
		if report.Threats.FakeDialog {
			return Decision{
				Status: StatusBlocked,
				Reason: fmt.Sprintf("I've frozen the page because a fake system dialog was detected. %s", report.Explanation),
			}
		}

		// 2f. Risky page, but the action is not otherwise disqualified.
		return Decision{
			Status: StatusRequireConfirmation,
			Reason: fmt.Sprintf("Page risk is high (%d/10). This action might be unsafe.", report.RiskScore),
		}
	}

	// 3. Sensitive actions need a human in the loop.
	if _, sensitive := sensitiveActions[actionType]; sensitive || strings.Contains(serializeParams(params), "password") {
		return Decision{
			Status: StatusRequireConfirmation,
			Reason: fmt.Sprintf("High-risk action '%s' requires user approval.", actionType),
		}
	}

	// 4. Default.
	return Decision{
		Status: StatusAllowed,
		Reason: "Action adheres to security policies.",
	}
}

// validateEscapeNavigation decides a navigate action on a risky page.
func (m *Mediator) validateEscapeNavigation(params map[string]any, report *content.RiskReport) Decision {
	dest := strings.ToLower(stringParam(params, "url"))
	current := strings.ToLower(report.URL)

	// Reloading the same risky page never helps (trailing slashes ignored).
	if dest == current || strings.TrimRight(dest, "/") == strings.TrimRight(current, "/") {
		return Decision{
			Status: StatusBlocked,
			Reason: fmt.Sprintf("I've blocked this navigation because you're already on this risky page (%d/10). Re-loading it won't help—please try a different, safer website instead.", report.RiskScore),
		}
	}

	for _, marker := range maliciousDestinations {
		if strings.Contains(dest, marker) {
			return Decision{
				Status: StatusBlocked,
				Reason: fmt.Sprintf("I've stopped this navigation because the destination '%s' is known to be dangerous, and the page you are currently on is also untrusted.", dest),
			}
		}
	}

	return Decision{
		Status: StatusAllowed,
		Reason: fmt.Sprintf("I'm allowing this navigation because it helps us leave a potentially harmful website (%d/10).", report.RiskScore),
	}
}

// Explain renders a decision for logs and HITL prompts. Deterministic, no
// side effects.
func Explain(d Decision) string {
	return fmt.Sprintf("[SECURITY_LAYER] status: %s | reason: %s", strings.ToUpper(string(d.Status)), d.Reason)
}

func isRemediation(serialized string) bool {
	for _, word := range remediationWords {
		if strings.Contains(serialized, word) {
			return true
		}
	}
	return remediationXPattern.MatchString(serialized)
}

// serializeParams flattens action parameters to a lowercase string for
// substring policy checks. Marshaling failures degrade to best-effort
// fmt rendering rather than an error.
func serializeParams(params map[string]any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return strings.ToLower(fmt.Sprint(params))
	}
	return strings.ToLower(string(data))
}

func stringParam(params map[string]any, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}
