package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"meet-importer/core/config"
	"meet-importer/feature/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the import command
	dryRunImport      bool
	yesConfirm        bool
	fromSnapshot      string
	importOutput      string
	continueOnFailure bool
	blockOnConflict   bool
)

// importCmd plans an import, asks for confirmation and applies it.
var importCmd = &cobra.Command{
	Use:   "import [source]",
	Short: "Import a legacy meet database into the meet service",
	Long: `Import a legacy meet database (.mdb, or a .zip containing one) into the
meet-management service.

The import is always planned first against a mirror of the remote state and the
report is printed. Records are written only after confirmation.

Examples:
  # Plan only
  import meet.mdb --dry-run

  # Import with interactive confirmation
  import backup.zip

  # Import with auto-confirm (non-interactive)
  import meet.mdb --yes

  # Replay an archived legacy export
  import --from-snapshot 6f1c... --yes --output yaml`,
	Args: func(cmd *cobra.Command, args []string) error {
		if fromSnapshot == "" && len(args) != 1 {
			return fmt.Errorf("expected exactly one source or --from-snapshot")
		}
		if fromSnapshot != "" && len(args) > 0 {
			return fmt.Errorf("a source cannot be combined with --from-snapshot")
		}
		return nil
	},
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&dryRunImport, "dry-run", false, "Plan only, never write to the meet service")
	importCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm the import (non-interactive)")
	importCmd.Flags().StringVar(&fromSnapshot, "from-snapshot", "", "Replay the legacy export archived by this run id")
	importCmd.Flags().StringVarP(&importOutput, "output", "o", outputText, "Report format: text, json or yaml")
	importCmd.Flags().BoolVar(&continueOnFailure, "continue-on-failure", false, "Keep going when an entries, results or relays batch is rejected")
	importCmd.Flags().BoolVar(&blockOnConflict, "block-on-conflict", false, "Abort when a team matches by name with a different abbreviation")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, func(cfg *config.Config) {
		if cmd.Flags().Changed("continue-on-failure") {
			cfg.Import.ContinueOnBatchFailure = continueOnFailure
		}
		if cmd.Flags().Changed("block-on-conflict") {
			cfg.Import.BlockOnConflict = blockOnConflict
		}
	})
	if err != nil {
		return err
	}
	l := a.logger
	defer l.Sync()

	source := importer.SnapshotPrefix + fromSnapshot
	if fromSnapshot == "" {
		source = args[0]
	}

	// Step 1: Plan (always runs)
	l.Info("Planning import...", zap.String("source", source))
	plan, err := a.service.Plan(ctx, source)
	if err != nil {
		_ = printReport(l, os.Stdout, importOutput, plan)
		return fmt.Errorf("failed to plan import: %w", err)
	}

	// Step 2: Print report
	if err := printReport(l, os.Stdout, importOutput, plan); err != nil {
		return err
	}

	if dryRunImport || a.cfg.Import.DryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if plannedActions(plan) == 0 {
		l.Info("Nothing to import.")
		return nil
	}

	// Step 3: Apply (if confirmed)
	if !confirmImport() {
		l.Warn("Import cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Applying import...")
	report, err := a.service.Run(ctx, importer.Request{Source: source})
	if printErr := printReport(l, os.Stdout, importOutput, report); printErr != nil {
		l.Warn("Failed to print report", zap.Error(printErr))
	}
	if err != nil {
		return fmt.Errorf("import %s failed: %w", report.ID, err)
	}

	l.Info("Import complete", zap.String("run_id", report.ID))
	return nil
}

// confirmImport prompts the user for confirmation or uses --yes flag.
func confirmImport() bool {
	if yesConfirm {
		fmt.Fprintln(os.Stderr, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(os.Stderr, "\n⚠️  Type 'yes' to write these records to the meet service: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
