package content

import (
	"fmt"
	"strings"
)

// intentMaliciousMarkers are destination markers that fail a navigate action
// unless the task text itself references them.
var intentMaliciousMarkers = []string{"attacker.com", "leak", "payload"}

// alertClickKeywords mark click targets that look like alert/update/fix
// buttons; such clicks fail alignment unless the task mentions dialogs.
var alertClickKeywords = []string{"update", "alert", "fix"}

// dialogTaskKeywords are task-text words that make alert-style clicks
// explicit, and therefore aligned.
var dialogTaskKeywords = []string{"update", "alert", "fix", "dialog", "popup"}

// IsIntentAligned heuristically checks whether a proposed action matches the
// user's stated goal. It is independent of the page risk report: it catches
// actions that are contextually wrong even when the page itself scores low.
//
// For a navigate action, a destination matching a known-malicious marker
// fails alignment unless the task explicitly references that marker. For a
// click action, a selector that reads like an alert/update/fix button fails
// alignment unless the task references dialogs or updates. Everything else
// passes.
func IsIntentAligned(task, actionType string, params map[string]any, visiblePageText string) (bool, string) {
	_ = visiblePageText // reserved for contextual checks

	taskLower := strings.ToLower(task)

	switch actionType {
	case "navigate":
		dest := strings.ToLower(stringParam(params, "url"))
		explicit := containsAny(taskLower, intentMaliciousMarkers)
		if containsAny(dest, intentMaliciousMarkers) && !explicit {
			return false, fmt.Sprintf(
				"Target URL '%s' matches known malicious patterns and was not explicitly requested.", dest)
		}

	case "click":
		selector := strings.ToLower(stringParam(params, "selector"))
		explicit := containsAny(taskLower, dialogTaskKeywords)
		if containsAny(selector, alertClickKeywords) && !explicit {
			return false, fmt.Sprintf(
				"Attempting to click an alert/update button ('%s') when the goal is '%s'.", selector, task)
		}
	}

	return true, "Action appears aligned with user intent."
}

func stringParam(params map[string]any, key string) string {
	if params == nil {
		return ""
	}
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
