// Package redact scrubs credentials from action parameters before they are
// written to the audit trail. Agent actions routinely carry typed text
// (including passwords destined for login forms), so everything that reaches
// the log passes through here first.
package redact

import (
	"regexp"
)

var sensitivePatterns = []*regexp.Regexp{
	// Credential-bearing form fields serialized into params
	regexp.MustCompile(`(?i)"(password|passwd|pwd|secret|pin|otp)"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`(?i)(password|passwd|pwd|secret)\s*[=:]\s*[^\s&"']{4,}`),

	// Basic auth embedded in URLs
	regexp.MustCompile(`https?://[^:/\s]+:[^@/\s]+@`),

	// Bearer tokens and common API key shapes that leak through page forms
	regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._-]{20,}`),
	regexp.MustCompile(`(?i)(api[_-]?key|auth[_-]?token|access[_-]?token)\s*[=:]\s*['"]?[A-Za-z0-9_-]{16,}['"]?`),

	// Card-number-looking digit runs typed into inputs
	regexp.MustCompile(`\b(?:\d[ -]?){13,19}\b`),
}

const placeholder = "[REDACTED]"

// Redact replaces credential-shaped substrings with a placeholder.
func Redact(input string) string {
	result := input
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, placeholder)
	}
	return result
}
