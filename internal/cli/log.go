package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gzhole/browsershield/internal/audit"
	"github.com/gzhole/browsershield/internal/config"

	"github.com/spf13/cobra"
)

var (
	logFilterDecision string
	logLast           int
	logSummary        bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View and filter the audit log",
	Long: `View the browsershield audit log with filtering and summary options.

Examples:
  browsershield log                        # Show all entries
  browsershield log --last 20              # Show last 20 entries
  browsershield log --decision blocked     # Show only blocked actions
  browsershield log --summary              # Show session summary stats`,
	RunE: logCommand,
}

func init() {
	logCmd.Flags().StringVar(&logFilterDecision, "decision", "", "Filter by decision (allowed, blocked, require_confirmation)")
	logCmd.Flags().IntVar(&logLast, "last", 0, "Show last N entries")
	logCmd.Flags().BoolVar(&logSummary, "summary", false, "Show summary statistics")
	rootCmd.AddCommand(logCmd)
}

func logCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(trustPath, logPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	events, err := readAuditLog(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}

	if len(events) == 0 {
		fmt.Println("No audit log entries found.")
		return nil
	}

	filtered := filterEvents(events)

	if logLast > 0 && logLast < len(filtered) {
		filtered = filtered[len(filtered)-logLast:]
	}

	if logSummary {
		printSummary(events)
		return nil
	}

	printEvents(filtered)
	return nil
}

func readAuditLog(path string) ([]audit.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var events []audit.Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var event audit.Event
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			continue // skip malformed lines
		}
		events = append(events, event)
	}
	return events, scanner.Err()
}

func filterEvents(events []audit.Event) []audit.Event {
	if logFilterDecision == "" {
		return events
	}

	var filtered []audit.Event
	for _, e := range events {
		if !strings.EqualFold(e.Decision, logFilterDecision) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func printEvents(events []audit.Event) {
	for _, e := range events {
		ts := formatTimestamp(e.Timestamp)
		icon := decisionIcon(e.Decision)

		fmt.Printf("%s %s %s %s\n", icon, ts, e.ActionType, e.Params)
		fmt.Printf("     Page: %s (risk %d/10)\n", e.URL, e.RiskScore)
		if e.Explanation != "" {
			fmt.Printf("     Analysis: %s\n", e.Explanation)
		}
		fmt.Printf("     Reason: %s\n", e.Reason)
		fmt.Println()
	}
}

func printSummary(all []audit.Event) {
	counts := map[string]int{}
	for _, e := range all {
		counts[e.Decision]++
	}

	fmt.Println("═══════════════════════════════════════════")
	fmt.Println("  browsershield Audit Summary")
	fmt.Println("═══════════════════════════════════════════")
	fmt.Printf("  Total events:     %d\n", len(all))
	fmt.Printf("  allowed:          %d\n", counts["allowed"])
	fmt.Printf("  confirmation:     %d\n", counts["require_confirmation"])
	fmt.Printf("  blocked:          %d\n", counts["blocked"])
	fmt.Println("═══════════════════════════════════════════")

	if len(all) > 0 {
		fmt.Printf("  First event:      %s\n", formatTimestamp(all[0].Timestamp))
		fmt.Printf("  Last event:       %s\n", formatTimestamp(all[len(all)-1].Timestamp))
	}

	blocked := []audit.Event{}
	for _, e := range all {
		if e.Decision == "blocked" {
			blocked = append(blocked, e)
		}
	}
	if len(blocked) > 0 {
		fmt.Println()
		fmt.Println("  Blocked actions:")
		limit := len(blocked)
		if limit > 10 {
			limit = 10
		}
		for _, e := range blocked[len(blocked)-limit:] {
			fmt.Printf("    %s %s %s\n", formatTimestamp(e.Timestamp), e.ActionType, e.URL)
		}
	}

	fmt.Println()
}

func decisionIcon(decision string) string {
	switch decision {
	case "blocked":
		return "🛑"
	case "require_confirmation":
		return "❓"
	case "allowed":
		return "✅"
	default:
		return "·"
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
