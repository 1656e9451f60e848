package content

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gzhole/browsershield/internal/trust"
)

// detectFakeDialog looks for div containers styled as absolute/fixed overlays
// with an explicit z-index whose text mimics a system or security alert.
// Returns a description of the first match, or "".
func detectFakeDialog(doc *Document, cfg *trust.Config) string {
	found := ""

	doc.q.Find("div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		style := strings.ToLower(s.AttrOr("style", ""))
		overlay := strings.Contains(style, "position") &&
			(strings.Contains(style, "fixed") || strings.Contains(style, "absolute")) &&
			strings.Contains(style, "z-index")
		if !overlay {
			return true
		}

		text := strings.ToLower(s.Text())
		for _, kw := range cfg.DialogKeywords {
			if strings.Contains(text, kw) {
				found = fmt.Sprintf("Overlay detected with system keyword: '%s'", kw)
				return false
			}
		}
		return true
	})

	return found
}
