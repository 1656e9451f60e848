package content

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nearInvisibleOpacity is the opacity below which an interactive element is
// considered a near-invisible overlay.
const nearInvisibleOpacity = 0.2

var opacityPattern = regexp.MustCompile(`opacity:\s*([0-9.]+)`)

// detectDeceptiveUI scans interactive elements (buttons, links, inputs) for
// invisible or near-invisible overlay styling.
func detectDeceptiveUI(doc *Document) []string {
	var findings []string

	doc.q.Find("button,a,input").Each(func(_ int, s *goquery.Selection) {
		style := strings.ToLower(s.AttrOr("style", ""))
		m := opacityPattern.FindStringSubmatch(style)
		if m == nil {
			return
		}
		val, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return
		}
		name := goquery.NodeName(s)
		switch {
		case val == 0:
			findings = append(findings, fmt.Sprintf("Invisible element (%s) with zero opacity", name))
		case val < nearInvisibleOpacity:
			findings = append(findings, fmt.Sprintf("Near-invisible element (%s) with opacity %g", name, val))
		}
	})

	return findings
}
