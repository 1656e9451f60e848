package content

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gzhole/browsershield/internal/trust"
)

const (
	// homographMaxDistance is the edit distance at or below which a domain
	// label is considered a lookalike candidate.
	homographMaxDistance = 2

	// homographMinLabelLen filters out short labels where a distance of 2
	// is too common to be meaningful.
	homographMinLabelLen = 5

	// homographRatioLimit is the normalized-distance cutoff for flagging a
	// candidate without a known character substitution.
	homographRatioLimit = 0.3
)

// lookalikePair is a character substitution commonly used in homograph
// attacks: bad appears in the fake label where good appears in the real one.
type lookalikePair struct {
	bad  string
	good string
}

var lookalikePairs = []lookalikePair{
	{"0", "o"},
	{"1", "l"},
	{"rn", "m"},
	{"vv", "w"},
}

// detectHomograph compares the URL's first host label against the first
// label of every trusted domain. A candidate within edit distance 2 of a
// trusted label (and at least 5 characters long) is flagged when either a
// known character substitution is present, or the distance normalized by
// the trusted label's length is below 0.3. The two-tier rule exists because
// raw edit distance over-triggers on short domains and under-triggers on
// long ones. Returns a description of the match, or "".
func detectHomograph(rawURL string, cfg *trust.Config) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ""
	}
	label, _, _ := strings.Cut(host, ".")

	for _, trusted := range cfg.TrustedDomains {
		target, _, _ := strings.Cut(trusted, ".")
		if label == target {
			continue
		}

		distance := levenshtein(label, target)
		if distance > homographMaxDistance || len(label) < homographMinLabelLen {
			continue
		}

		for _, pair := range lookalikePairs {
			if strings.Contains(label, pair.bad) && strings.Contains(target, pair.good) {
				return fmt.Sprintf("Lookalike domain detected (%s vs %s)", host, trusted)
			}
		}

		if float64(distance)/float64(len(target)) < homographRatioLimit {
			return fmt.Sprintf("Suspiciously similar domain (%s vs %s)", host, trusted)
		}
	}
	return ""
}

// levenshtein computes the classic dynamic-programming edit distance
// between two strings in O(len(a)*len(b)) time and O(len(b)) space.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
