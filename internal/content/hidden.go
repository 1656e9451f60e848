package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gzhole/browsershield/internal/trust"
)

const (
	// hiddenBlobThreshold is the visible-text length above which a hidden
	// element on an untrusted page is reported even without injection
	// keywords. Shorter hidden text is usually accessibility boilerplate.
	hiddenBlobThreshold = 150

	snippetLimit = 50
)

// detectHiddenElements scans every element carrying an inline style and
// reports those hidden from humans but readable by a model. A flagged
// element is reported only when its text contains an injection phrase, or
// the page is untrusted and the hidden text is a long blob.
func detectHiddenElements(doc *Document, cfg *trust.Config, trusted bool) []hiddenFinding {
	var findings []hiddenFinding

	doc.q.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		reason, hidden := hiddenReason(s.AttrOr("style", ""))
		if !hidden {
			return
		}

		text := strings.ToLower(strings.TrimSpace(s.Text()))
		hasKeyword := false
		for _, phrase := range cfg.InjectionPhrases {
			if strings.Contains(text, strings.ToLower(phrase)) {
				hasKeyword = true
				break
			}
		}
		longBlob := len(text) > hiddenBlobThreshold

		if hasKeyword || (!trusted && longBlob) {
			findings = append(findings, hiddenFinding{
				Tag:     goquery.NodeName(s),
				Reason:  "Hidden via " + reason,
				Snippet: truncateSnippet(text),
			})
		}
	})

	return findings
}

func truncateSnippet(s string) string {
	if len(s) > snippetLimit {
		return s[:snippetLimit] + "..."
	}
	return s
}
