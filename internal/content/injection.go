package content

import (
	"strings"
	"unicode"

	"github.com/gzhole/browsershield/internal/trust"
)

// detectInjection searches the script/style-stripped text of the page for
// each configured injection phrase as a literal, case-insensitive substring.
// Returns the matched phrases.
func detectInjection(doc *Document, cfg *trust.Config) []string {
	text := normalizeForMatch(doc.WithoutScriptStyle().Text())

	var matched []string
	for _, phrase := range cfg.InjectionPhrases {
		if strings.Contains(text, strings.ToLower(phrase)) {
			matched = append(matched, phrase)
		}
	}
	return matched
}

// normalizeForMatch prepares page text for literal phrase matching:
// lowercase, zero-width and format runes stripped, whitespace collapsed.
// Stripping format runes prevents payloads from dodging substring search
// by interleaving invisible characters.
func normalizeForMatch(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Cf, r) || unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsSpace(r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return collapseSpace(b.String())
}
