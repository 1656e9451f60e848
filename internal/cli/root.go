package cli

import (
	"github.com/spf13/cobra"
)

var (
	trustPath string
	logPath   string
)

var rootCmd = &cobra.Command{
	Use:   "browsershield",
	Short: "browsershield - Security layer for autonomous browsing agents",
	Long: `browsershield guards an autonomous browsing agent against malicious web
content and against the agent's own unsafe action proposals. It analyzes raw
page markup into an explainable risk report (hidden injection payloads,
deceptive UI, phishing, fake dialogs, lookalike domains, malicious redirect
targets) and mediates every proposed action into an allow/block/confirm
decision with loop prevention.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&trustPath, "trust", "", "Path to trust config YAML (default: ~/.browsershield/trust.yaml)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Path to audit log file (default: ~/.browsershield/audit.jsonl)")
}

func Execute() error {
	return rootCmd.Execute()
}
