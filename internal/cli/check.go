package cli

import (
	"encoding/json"
	"fmt"

	"github.com/gzhole/browsershield/internal/approval"
	"github.com/gzhole/browsershield/internal/audit"
	"github.com/gzhole/browsershield/internal/config"
	"github.com/gzhole/browsershield/internal/gate"
	"github.com/gzhole/browsershield/internal/mediator"
	"github.com/gzhole/browsershield/internal/trust"

	"github.com/spf13/cobra"
)

var (
	checkURL    string
	checkAction string
	checkParams string
	checkTask   string
	checkNoAsk  bool
)

var checkCmd = &cobra.Command{
	Use:   "check [file.html]",
	Short: "Mediate one proposed action against a page",
	Long: `Analyze a page, check the proposed action against the task intent, and
render an allow/block/confirm decision. When the decision requires
confirmation the user is prompted interactively (non-interactive sessions
auto-deny).

  browsershield check page.html --url http://127.0.0.1/login \
      --action click --params '{"selector":"#submit"}' \
      --task "log into the test site"`,
	Args: cobra.MaximumNArgs(1),
	RunE: checkCommand,
}

func init() {
	checkCmd.Flags().StringVar(&checkURL, "url", "", "URL the markup was fetched from (required)")
	checkCmd.Flags().StringVar(&checkAction, "action", "", "Proposed action type, e.g. navigate, click, input_text (required)")
	checkCmd.Flags().StringVar(&checkParams, "params", "{}", "Action parameters as JSON")
	checkCmd.Flags().StringVar(&checkTask, "task", "", "The user's task, for the intent-alignment check")
	checkCmd.Flags().BoolVar(&checkNoAsk, "no-input", false, "Never prompt; treat confirmation as denial")
	_ = checkCmd.MarkFlagRequired("url")
	_ = checkCmd.MarkFlagRequired("action")
	rootCmd.AddCommand(checkCmd)
}

func checkCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(trustPath, logPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	trusted, err := trust.Load(cfg.TrustPath)
	if err != nil {
		return fmt.Errorf("failed to load trust config: %w", err)
	}

	var params map[string]any
	if err := json.Unmarshal([]byte(checkParams), &params); err != nil {
		return fmt.Errorf("invalid --params JSON: %w", err)
	}

	rawHTML, err := readInput(args)
	if err != nil {
		return err
	}

	auditor, err := audit.New(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer auditor.Close()

	g := gate.New(trusted, auditor)
	outcome := g.Review(checkTask, rawHTML, checkURL, gate.Action{
		Type:   checkAction,
		Params: params,
	})

	if !outcome.Aligned {
		fmt.Printf("Intent mismatch: %s\n", outcome.AlignReason)
	}
	fmt.Printf("Risk: %d/10 - %s\n", outcome.Report.RiskScore, outcome.Report.Explanation)
	fmt.Println(mediator.Explain(outcome.Decision))

	if outcome.Decision.Status == mediator.StatusRequireConfirmation && !checkNoAsk {
		result := approval.Ask(approval.Prompt{
			ActionType: checkAction,
			Params:     checkParams,
			URL:        checkURL,
			RiskScore:  outcome.Report.RiskScore,
			Reason:     outcome.Decision.Reason,
		})
		if result.Approved {
			fmt.Println("Approved by user.")
			return nil
		}
		fmt.Printf("Denied (%s).\n", result.UserAction)
	}

	return nil
}
