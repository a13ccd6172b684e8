package cmd

import (
	"fmt"
	"os"

	"meet-importer/feature/ledger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runsLimit  int
	runsOutput string
)

// runsCmd lists recorded import runs or shows one of them.
var runsCmd = &cobra.Command{
	Use:   "runs [id]",
	Short: "List recorded import runs",
	Long:  `Lists the most recent import runs recorded in the ledger database, or shows one run with its phases and issues.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		l := a.logger
		defer l.Sync()

		if !a.cfg.Database.Enabled {
			return fmt.Errorf("the ledger database is disabled (DATABASE_ENABLED=false)")
		}

		if len(args) == 1 {
			run, err := a.ledger.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if runsOutput == outputText {
				printRun(l, *run)
				for _, issue := range run.Issues {
					l.Warn("Issue", zap.String("phase", issue.Phase), zap.String("kind", issue.Kind), zap.String("message", issue.Message))
				}
				return nil
			}
			return render(os.Stdout, runsOutput, run)
		}

		runs, err := a.ledger.List(ctx, runsLimit)
		if err != nil {
			return err
		}
		if runsOutput != outputText {
			return render(os.Stdout, runsOutput, runs)
		}
		if len(runs) == 0 {
			l.Info("No import runs recorded")
		}
		for _, run := range runs {
			printRun(l, run)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", ledger.DefaultListLimit, "Maximum number of runs to list")
	runsCmd.Flags().StringVarP(&runsOutput, "output", "o", outputText, "Output format: text, json or yaml")

	RootCmd.AddCommand(runsCmd)
}

func printRun(l *zap.Logger, run ledger.Run) {
	l.Info("Import run",
		zap.String("id", run.ID),
		zap.String("meet", run.MeetName),
		zap.String("status", run.Status),
		zap.Bool("dry_run", run.DryRun),
		zap.Time("started_at", run.StartedAt),
		zap.Duration("duration", run.FinishedAt.Sub(run.StartedAt)),
		zap.String("error", run.Error),
	)
	for _, p := range run.Phases {
		l.Info("Phase",
			zap.String("phase", p.Name),
			zap.Int("planned", p.Planned),
			zap.Int("applied", p.Applied),
			zap.Int("skipped", p.Skipped),
		)
	}
}
