package gate

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gzhole/browsershield/internal/audit"
	"github.com/gzhole/browsershield/internal/mediator"
	"github.com/gzhole/browsershield/internal/session"
)

const phishingPage = `<h1>Bank Security Check</h1>
<p>Verify your bank password to continue.</p>
<a href="http://127.0.0.1/leak">Restore account</a>`

func TestReview_PhishingPageEndToEnd(t *testing.T) {
	g := New(nil, nil)

	out := g.Review("check my email", phishingPage, "http://127.0.0.1/verify",
		Action{Type: "click", Params: map[string]any{"selector": "#restore"}})

	if out.Report.RiskScore < 7 {
		t.Errorf("risk score = %d, want >= 7", out.Report.RiskScore)
	}
	if out.Decision.Status != mediator.StatusBlocked {
		t.Errorf("status = %s, want blocked (reason %q)", out.Decision.Status, out.Decision.Reason)
	}
	if g.State().ConsecutiveBlocks != 1 {
		t.Errorf("ConsecutiveBlocks = %d, want 1", g.State().ConsecutiveBlocks)
	}
}

func TestReview_EscapeClickAllowedOnRiskyPage(t *testing.T) {
	g := New(nil, nil)

	out := g.Review("check my email", phishingPage, "http://127.0.0.1/verify",
		Action{Type: "click", Params: map[string]any{"selector": "#cancel"}})

	if out.Decision.Status != mediator.StatusAllowed {
		t.Errorf("status = %s, want allowed (reason %q)", out.Decision.Status, out.Decision.Reason)
	}
	if g.State().ConsecutiveBlocks != 0 {
		t.Errorf("ConsecutiveBlocks = %d, want 0 after an allowed step", g.State().ConsecutiveBlocks)
	}
}

func TestReview_IntentMismatchEscalates(t *testing.T) {
	g := New(nil, nil)

	// Clean page, but the destination is malicious and unrequested: the
	// alignment check alone must push the score over the threshold.
	out := g.Review("read the news", `<p>Today's headlines.</p>`, "https://www.bbc.com/news",
		Action{Type: "navigate", Params: map[string]any{"url": "http://attacker.com/collect"}})

	if out.Aligned {
		t.Fatal("action should be misaligned")
	}
	if out.Report.RiskScore < 8 {
		t.Errorf("escalated score = %d, want >= 8", out.Report.RiskScore)
	}
	if !strings.HasPrefix(out.Report.Explanation, "Intent mismatch:") {
		t.Errorf("explanation = %q", out.Report.Explanation)
	}
	if out.Decision.Status != mediator.StatusBlocked {
		t.Errorf("status = %s, want blocked (malicious destination)", out.Decision.Status)
	}
}

func TestReview_AlignedCleanStepAllowed(t *testing.T) {
	g := New(nil, nil)

	out := g.Review("read the news", `<p>Today's headlines.</p>`, "https://www.bbc.com/news",
		Action{Type: "click", Params: map[string]any{"selector": "#next-page"}})

	if !out.Aligned {
		t.Errorf("aligned = false, reason %q", out.AlignReason)
	}
	if out.Decision.Status != mediator.StatusAllowed {
		t.Errorf("status = %s, want allowed", out.Decision.Status)
	}
	if out.ShouldAbort {
		t.Error("no abort expected on a clean allowed step")
	}
	if !strings.Contains(out.Sanitized, "Today's headlines.") {
		t.Errorf("sanitized text %q missing page content", out.Sanitized)
	}
}

func TestReview_AbortAfterConsecutiveBlocks(t *testing.T) {
	g := New(nil, nil)
	action := Action{Type: "click", Params: map[string]any{"selector": "#restore"}}

	var out Outcome
	for i := 0; i < session.AbortCeiling; i++ {
		out = g.Review("check my email", phishingPage, "http://127.0.0.1/verify", action)
		if out.Decision.Status != mediator.StatusBlocked {
			t.Fatalf("step %d: status = %s, want blocked", i, out.Decision.Status)
		}
		if i < session.AbortCeiling-1 && out.ShouldAbort {
			t.Fatalf("abort recommended after %d blocks", i+1)
		}
	}
	if !out.ShouldAbort {
		t.Errorf("abort not recommended after %d consecutive blocks", session.AbortCeiling)
	}

	g.StartTask()
	if g.State().ConsecutiveBlocks != 0 {
		t.Error("StartTask must reset the block streak")
	}
}

func TestReview_AuditTrailWithDedup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	auditor, err := audit.New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer auditor.Close()

	g := New(nil, auditor)
	blocked := Action{Type: "click", Params: map[string]any{"selector": "#restore"}}

	// Same blocked action three times: logged once.
	for i := 0; i < 3; i++ {
		g.Review("check my email", phishingPage, "http://127.0.0.1/verify", blocked)
	}
	// A different blocked action breaks the dedup key.
	g.Review("check my email", phishingPage, "http://127.0.0.1/verify",
		Action{Type: "click", Params: map[string]any{"selector": "#continue"}})
	// An allowed action is always logged.
	g.Review("check my email", phishingPage, "http://127.0.0.1/verify",
		Action{Type: "click", Params: map[string]any{"selector": "#cancel"}})

	events := readEvents(t, path)
	if len(events) != 3 {
		t.Fatalf("got %d audit events, want 3", len(events))
	}
	if events[0].Decision != "blocked" || events[1].Decision != "blocked" || events[2].Decision != "allowed" {
		t.Errorf("decisions = %s, %s, %s", events[0].Decision, events[1].Decision, events[2].Decision)
	}
	if events[0].URL != "http://127.0.0.1/verify" {
		t.Errorf("url = %q", events[0].URL)
	}
}

func TestReview_PasswordRedactedInAudit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	auditor, err := audit.New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer auditor.Close()

	g := New(nil, auditor)
	g.Review("log into my account", `<p>Sign in</p>`, "https://accounts.google.com",
		Action{Type: "input_text", Params: map[string]any{"password": "hunter2-secret"}})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "hunter2-secret") {
		t.Error("audit trail leaked a password value")
	}
	if !strings.Contains(string(data), "[REDACTED]") {
		t.Error("audit trail should carry the redaction marker")
	}
}

func readEvents(t *testing.T, path string) []audit.Event {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var events []audit.Event
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e audit.Event
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("malformed audit line %q: %v", sc.Text(), err)
		}
		events = append(events, e)
	}
	return events
}
