package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gzhole/browsershield/internal/config"
	"github.com/gzhole/browsershield/internal/content"
	"github.com/gzhole/browsershield/internal/trust"

	"github.com/spf13/cobra"
)

var (
	analyzeURL      string
	analyzeSanitize bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file.html]",
	Short: "Analyze page markup and print the risk report",
	Long: `Run the content risk analyzer over an HTML file (or stdin when no file is
given) and print the resulting risk report as JSON.

  browsershield analyze --url https://example.com page.html
  cat page.html | browsershield analyze --url http://127.0.0.1/login
  browsershield analyze --url http://evil.test page.html --sanitized`,
	Args: cobra.MaximumNArgs(1),
	RunE: analyzeCommand,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "URL the markup was fetched from (required)")
	analyzeCmd.Flags().BoolVar(&analyzeSanitize, "sanitized", false, "Also print the sanitized model-visible text")
	_ = analyzeCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(analyzeCmd)
}

func analyzeCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(trustPath, logPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	trusted, err := trust.Load(cfg.TrustPath)
	if err != nil {
		return fmt.Errorf("failed to load trust config: %w", err)
	}

	rawHTML, err := readInput(args)
	if err != nil {
		return err
	}

	report := content.Analyze(rawHTML, analyzeURL, trusted)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if analyzeSanitize {
		fmt.Println()
		fmt.Println("─── Sanitized text ───")
		fmt.Println(content.SanitizeForLLM(rawHTML))
	}

	return nil
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
