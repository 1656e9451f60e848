package trust

import "strings"

// IsTrustedURL reports whether the URL belongs to a trusted domain.
// Matching is substring-based: "github.com" matches both
// "https://github.com/owner/repo" and "https://gist.github.com".
// Trust is advisory input to risk weighting, never a detector bypass.
func (c *Config) IsTrustedURL(url string) bool {
	for _, domain := range c.TrustedDomains {
		if strings.Contains(url, domain) {
			return true
		}
	}
	return false
}

// IsLocalURL reports whether the URL points at loopback infrastructure.
// Local pages are always eligible for phishing detection so that controlled
// test harnesses can simulate brand-impersonation attacks.
func IsLocalURL(url string) bool {
	return strings.Contains(url, "127.0.0.1") || strings.Contains(url, "localhost")
}
