// Package approval implements the human-in-the-loop confirmation prompt for
// decisions that require explicit user approval before an action proceeds.
package approval

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Result is the user's verdict on a pending action.
type Result struct {
	Approved   bool
	UserAction string
}

// Prompt describes the action awaiting approval.
type Prompt struct {
	ActionType string
	Params     string
	URL        string
	RiskScore  int
	Reason     string
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Ask prompts the user to approve or deny. Non-interactive sessions
// auto-deny: an unattended agent must never approve its own risky actions.
func Ask(p Prompt) Result {
	if !IsInteractive() {
		return Result{
			Approved:   false,
			UserAction: "auto_deny_non_interactive",
		}
	}

	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "╔══════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(os.Stderr, "║              ⚠️  APPROVAL REQUIRED                            ║")
	fmt.Fprintln(os.Stderr, "╚══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintf(os.Stderr, "Action:  %s\n", p.ActionType)
	fmt.Fprintf(os.Stderr, "Params:  %s\n", p.Params)
	if p.URL != "" {
		fmt.Fprintf(os.Stderr, "Page:    %s (risk %d/10)\n", p.URL, p.RiskScore)
	}
	fmt.Fprintf(os.Stderr, "Reason:  %s\n", p.Reason)
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  [a] Approve once - perform this action")
	fmt.Fprintln(os.Stderr, "  [d] Deny - reject this action")
	fmt.Fprintln(os.Stderr, "")

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Fprint(os.Stderr, "Your choice [a/d]: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return Result{
				Approved:   false,
				UserAction: "error_reading_input",
			}
		}

		input = strings.TrimSpace(strings.ToLower(input))

		switch input {
		case "a", "approve", "yes", "y":
			return Result{
				Approved:   true,
				UserAction: "approve_once",
			}
		case "d", "deny", "no", "n":
			return Result{
				Approved:   false,
				UserAction: "deny",
			}
		default:
			fmt.Fprintln(os.Stderr, "Invalid input. Please enter 'a' to approve or 'd' to deny.")
		}
	}
}
