package content

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a parsed HTML page. It is never mutated after construction:
// callers that need a filtered view (hidden elements removed, scripts
// stripped) obtain a derived copy, so several detectors can read the same
// document without interfering with each other.
type Document struct {
	raw string
	q   *goquery.Document
}

// Parse builds a Document from raw markup. Malformed HTML degrades to a
// best-effort tree and a parse failure degrades to an empty document;
// analysis never aborts on adversarial input.
func Parse(raw string) *Document {
	q, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		q, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	return &Document{raw: raw, q: q}
}

// WithoutScriptStyle returns a derived copy with all script and style
// elements removed.
func (d *Document) WithoutScriptStyle() *Document {
	c := Parse(d.raw)
	c.q.Find("script,style").Remove()
	c.rerender()
	return c
}

// WithoutHidden returns a derived copy with every element matching the
// hidden-style rules (display:none, visibility:hidden, font-size:0) removed.
func (d *Document) WithoutHidden() *Document {
	c := Parse(d.raw)
	c.q.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		if _, hidden := hiddenReason(s.AttrOr("style", "")); hidden {
			s.Remove()
		}
	})
	c.rerender()
	return c
}

// rerender refreshes the stored markup after a removal pass so that further
// derived copies start from the filtered tree, not the original page.
func (d *Document) rerender() {
	if h, err := d.q.Html(); err == nil {
		d.raw = h
	}
}

// Text returns all text nodes joined with single spaces, with runs of
// whitespace collapsed and the result trimmed.
func (d *Document) Text() string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range d.q.Nodes {
		walk(n)
	}
	return collapseSpace(strings.Join(parts, " "))
}

// hiddenReason classifies an inline style as human-invisible.
// Matching ignores whitespace inside declarations, so "display: none" and
// "display:none" are treated the same.
func hiddenReason(style string) (string, bool) {
	compact := strings.ReplaceAll(strings.ToLower(style), " ", "")
	switch {
	case strings.Contains(compact, "display:none"):
		return "display:none", true
	case strings.Contains(compact, "visibility:hidden"):
		return "visibility:hidden", true
	case zeroFontPattern.MatchString(compact):
		return "font-size:0", true
	}
	return "", false
}

// zeroFontPattern matches font-size:0 (optionally with a unit) but not
// small nonzero sizes like font-size:0.8em.
var zeroFontPattern = regexp.MustCompile(`font-size:0(px|pt|em|rem|%)?(;|$)`)

// collapseSpace folds all whitespace runs into single spaces and trims.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
