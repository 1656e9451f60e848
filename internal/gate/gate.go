// Package gate wires the content analyzer and the action mediator into one
// per-step review: analyze the page, check the proposed action against the
// user's intent, escalate the report on a mismatch, mediate, keep the
// loop-prevention counter, and append the step to the audit trail.
//
// The gate owns the session bookkeeping the mediator deliberately does not
// do: counting consecutive blocks and recommending an abort when the streak
// reaches the ceiling. Acting on that recommendation (actually stopping the
// task) stays with the caller.
package gate

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gzhole/browsershield/internal/audit"
	"github.com/gzhole/browsershield/internal/content"
	"github.com/gzhole/browsershield/internal/mediator"
	"github.com/gzhole/browsershield/internal/session"
	"github.com/gzhole/browsershield/internal/trust"
)

// intentEscalationFloor is the minimum risk score a report is raised to when
// the proposed action does not align with the stated task.
const intentEscalationFloor = 8

// Action is one step proposed by the agent.
type Action struct {
	Type   string         `json:"action"`
	Params map[string]any `json:"params"`
}

// Outcome is the result of reviewing one proposed step.
type Outcome struct {
	// Report is the page risk assessment, possibly escalated after the
	// intent-alignment check.
	Report *content.RiskReport

	// Sanitized is the hidden-content-free page text safe to show a model.
	Sanitized string

	// Decision is the mediator's verdict on the action.
	Decision mediator.Decision

	// Aligned records the intent-alignment result and its reason.
	Aligned     bool
	AlignReason string

	// ShouldAbort recommends stopping the task: the consecutive-block
	// streak has reached the ceiling.
	ShouldAbort bool
}

// Gate reviews agent steps for one task.
type Gate struct {
	cfg     *trust.Config
	med     *mediator.Mediator
	state   *session.State
	auditor *audit.Logger
	now     func() time.Time
}

// New creates a gate with a fresh session. The auditor may be nil, in which
// case steps are not persisted.
func New(cfg *trust.Config, auditor *audit.Logger) *Gate {
	if cfg == nil {
		cfg = trust.Default()
	}
	return &Gate{
		cfg:     cfg,
		med:     mediator.New(cfg),
		state:   session.New(),
		auditor: auditor,
		now:     time.Now,
	}
}

// StartTask resets session counters for a new task.
func (g *Gate) StartTask() {
	g.state.Reset()
}

// State exposes the session state for inspection.
func (g *Gate) State() *session.State {
	return g.state
}

// Review runs the full per-step pipeline for one proposed action against the
// current page.
func (g *Gate) Review(task, rawHTML, url string, action Action) Outcome {
	report := content.Analyze(rawHTML, url, g.cfg)
	sanitized := content.SanitizeForLLM(rawHTML)

	aligned, alignReason := content.IsIntentAligned(task, action.Type, action.Params, sanitized)
	if !aligned {
		// Documented post-construction mutation: the orchestrator escalates
		// the report when the action is contextually wrong for the goal.
		report.Escalate(intentEscalationFloor, alignReason)
	}

	decision := g.med.Validate(action.Type, action.Params, report, g.state)

	if decision.Status == mediator.StatusBlocked {
		g.state.ObserveBlock()
	} else {
		g.state.ObservePass()
	}

	g.logStep(task, url, action, report, decision)

	return Outcome{
		Report:      report,
		Sanitized:   sanitized,
		Decision:    decision,
		Aligned:     aligned,
		AlignReason: alignReason,
		ShouldAbort: g.state.ShouldAbort(),
	}
}

// logStep appends the step to the audit trail. Identical consecutive blocked
// actions are logged once: a blocked agent retrying the same step would
// otherwise flood the trail.
func (g *Gate) logStep(task, url string, action Action, report *content.RiskReport, decision mediator.Decision) {
	if g.auditor == nil {
		return
	}

	params := serialize(action.Params)
	key := fmt.Sprintf("%s:%s:%s", decision.Status, action.Type, params)
	if decision.Status == mediator.StatusBlocked && key == g.state.LastLoggedActionKey {
		return
	}
	g.state.LastLoggedActionKey = key

	// Audit failures never fail the decision path.
	_ = g.auditor.Log(audit.Event{
		Timestamp:   g.now().Format(time.RFC3339),
		Task:        task,
		ActionType:  action.Type,
		Params:      params,
		URL:         url,
		RiskScore:   report.RiskScore,
		Explanation: report.Explanation,
		Decision:    string(decision.Status),
		Reason:      decision.Reason,
	})
}

func serialize(params map[string]any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprint(params)
	}
	return string(data)
}
