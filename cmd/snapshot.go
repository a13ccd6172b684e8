package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var snapshotOutput string

// snapshotCmd is the parent command for the legacy snapshot archive.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect archived legacy exports",
}

// snapshotListCmd lists the runs with an archived legacy export.
var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived legacy exports",
	Long:  `Lists the run ids whose legacy export is archived in the snapshot bucket. Replay one with "import --from-snapshot <id>".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		l := a.logger
		defer l.Sync()

		if a.archive == nil {
			return fmt.Errorf("the snapshot archive is disabled (STORAGE_ENABLED=false)")
		}

		runs, err := a.archive.List(ctx)
		if err != nil {
			return err
		}
		if snapshotOutput != outputText {
			return render(os.Stdout, snapshotOutput, runs)
		}
		l.Info("Archived snapshots", zap.Int("count", len(runs)))
		for _, id := range runs {
			fmt.Println(id)
		}
		return nil
	},
}

func init() {
	snapshotListCmd.Flags().StringVarP(&snapshotOutput, "output", "o", outputText, "Output format: text, json or yaml")

	snapshotCmd.AddCommand(snapshotListCmd)
	RootCmd.AddCommand(snapshotCmd)
}
