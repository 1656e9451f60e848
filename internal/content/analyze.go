package content

import (
	"fmt"
	"strings"

	"github.com/gzhole/browsershield/internal/trust"
)

// Detector weights for score fusion. Trusted pages get discounted weights
// for injection, hidden content and deceptive UI; the deceptive-UI signal is
// additionally suppressed outright on trusted domains.
const (
	weightInjection        = 5
	weightInjectionTrusted = 2
	weightHidden           = 3
	weightHiddenTrusted    = 1
	weightDeceptive        = 4
	weightHomograph        = 8
	weightPhishing         = 7
	weightFakeDialog       = 5
	weightSuspicious       = 4

	maxRiskScore = 10
)

// Analyze inspects raw page markup and produces a risk report. It is a pure
// function of its inputs: no I/O, no errors for malformed HTML (a parse
// failure degrades to an empty document). All seven detectors run
// unconditionally and independently; none short-circuits another.
func Analyze(rawHTML, url string, cfg *trust.Config) *RiskReport {
	doc := Parse(rawHTML)
	trusted := cfg.IsTrustedURL(url)

	hidden := detectHiddenElements(doc, cfg, trusted)
	injections := detectInjection(doc, cfg)
	deceptive := detectDeceptiveUI(doc)
	phishingBrand := detectPhishing(SanitizeForLLM(rawHTML), url, cfg)
	fakeDialog := detectFakeDialog(doc, cfg)
	suspicious := detectSuspiciousTargets(doc, cfg, trusted)
	homograph := detectHomograph(url, cfg)

	score, explanation := fuse(trusted, hidden, injections, deceptive,
		phishingBrand, fakeDialog, suspicious, homograph)

	return &RiskReport{
		URL:         url,
		RiskScore:   score,
		Explanation: explanation,
		Threats: Threats{
			HiddenContentCount:    len(hidden),
			InjectionDetected:     len(injections) > 0,
			DeceptiveUI:           len(deceptive) > 0 && !trusted,
			Phishing:              phishingBrand != "",
			FakeDialog:            fakeDialog != "",
			SuspiciousTargetCount: len(suspicious),
			HomographPhishing:     homograph != "",
		},
	}
}

// fuse adds detector weights into a clamped 0-10 score and accumulates
// reasons in a fixed order: injection, hidden content, deceptive UI,
// homograph, phishing, fake dialog, suspicious targets.
func fuse(trusted bool, hidden []hiddenFinding, injections, deceptive []string,
	phishingBrand, fakeDialog string, suspicious []targetFinding, homograph string) (int, string) {

	score := 0
	var reasons []string

	if len(injections) > 0 {
		score += pick(trusted, weightInjectionTrusted, weightInjection)
		reasons = append(reasons, fmt.Sprintf(
			"Prompt injection detected using keywords: %s", strings.Join(injections, ", ")))
	}

	if len(hidden) > 0 {
		score += pick(trusted, weightHiddenTrusted, weightHidden)
		descs := make([]string, len(hidden))
		for i, h := range hidden {
			descs[i] = fmt.Sprintf("%s (%s)", h.Tag, h.Reason)
		}
		reasons = append(reasons, fmt.Sprintf(
			"Detected hidden content designed for AI eyes: %s", strings.Join(descs, ", ")))
	}

	// Deceptive-UI alerts are not surfaced on trusted domains at all.
	if len(deceptive) > 0 && !trusted {
		score += weightDeceptive
		reasons = append(reasons, fmt.Sprintf(
			"Visual deception: %s", strings.Join(deceptive, ", ")))
	}

	if homograph != "" {
		score += weightHomograph
		reasons = append(reasons, "CRITICAL: "+homograph)
	}

	if phishingBrand != "" {
		score += weightPhishing
		reasons = append(reasons, fmt.Sprintf(
			"Phishing detected: Using brand keyword '%s' on an untrusted or suspicious infrastructure.", phishingBrand))
	}

	if fakeDialog != "" {
		score += weightFakeDialog
		reasons = append(reasons, "Fake UI: "+fakeDialog)
	}

	if len(suspicious) > 0 {
		score += weightSuspicious
		targets := make([]string, len(suspicious))
		for i, t := range suspicious {
			targets[i] = fmt.Sprintf("%s -> %s", t.Element, t.Target)
		}
		reasons = append(reasons, fmt.Sprintf(
			"Suspicious redirects found in buttons: %s", strings.Join(targets, ", ")))
	}

	if score > maxRiskScore {
		score = maxRiskScore
	}

	explanation := "No immediate threats."
	if len(reasons) > 0 {
		explanation = strings.Join(reasons, " | ")
	}
	return score, explanation
}

func pick(trusted bool, trustedWeight, weight int) int {
	if trusted {
		return trustedWeight
	}
	return weight
}

// SanitizeForLLM produces a plain-text rendering of the page with every
// hidden-styled element and all script/style elements removed. The result
// is what the orchestrator feeds to the model: free of injection payloads
// that rely on CSS hiding.
func SanitizeForLLM(rawHTML string) string {
	return Parse(rawHTML).WithoutHidden().WithoutScriptStyle().Text()
}
