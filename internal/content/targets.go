package content

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gzhole/browsershield/internal/trust"
)

// onclickTargetPattern extracts a navigation target assigned inside an
// inline click handler: window.location = 'https://...'.
var onclickTargetPattern = regexp.MustCompile(`(?:window\.)?location(?:\.href)?\s*=\s*['"]([^'"]+)['"]`)

// maliciousMarkers identify destinations known to be attacker-controlled in
// this system's threat model: loopback exfiltration endpoints and the
// conventional attacker.com placeholder used by simulated attacks.
var maliciousMarkers = []string{"127.0.0.1", "attacker.com"}

// detectSuspiciousTargets inspects link hrefs and button/submit-input click
// handlers for redirects to malicious destinations. A target is suspicious
// only when it is an absolute URL, the current page is untrusted, the target
// is not a trusted domain, and the target matches a known-malicious marker.
func detectSuspiciousTargets(doc *Document, cfg *trust.Config, trusted bool) []targetFinding {
	if trusted {
		return nil
	}

	var findings []targetFinding

	doc.q.Find("a,button,input").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		target := ""
		switch name {
		case "a":
			target = s.AttrOr("href", "")
		case "button":
			target = onclickTarget(s)
		case "input":
			typ := strings.ToLower(s.AttrOr("type", ""))
			if typ == "button" || typ == "submit" {
				target = onclickTarget(s)
			}
		}

		if !strings.HasPrefix(target, "http") {
			return
		}
		if cfg.IsTrustedURL(target) {
			return
		}
		if !matchesMaliciousMarker(target) {
			return
		}

		text := strings.TrimSpace(s.Text())
		if text == "" {
			text = strings.TrimSpace(s.AttrOr("value", ""))
		}
		findings = append(findings, targetFinding{
			Element: name,
			Text:    text,
			Target:  target,
		})
	})

	return findings
}

func onclickTarget(s *goquery.Selection) string {
	m := onclickTargetPattern.FindStringSubmatch(s.AttrOr("onclick", ""))
	if m == nil {
		return ""
	}
	return m[1]
}

func matchesMaliciousMarker(target string) bool {
	for _, marker := range maliciousMarkers {
		if strings.Contains(target, marker) {
			return true
		}
	}
	return false
}
