package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"meet-importer/feature/importer"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
)

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// render writes v as JSON or YAML.
func render(w io.Writer, format string, v any) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case outputJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	case outputYAML:
		data, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// printReport writes a report in the requested format. Text goes through the logger.
func printReport(l *zap.Logger, w io.Writer, format string, report *importer.Report) error {
	if format != outputText {
		return render(w, format, report)
	}

	l.Info("Import report",
		zap.String("run_id", report.ID),
		zap.String("meet", report.Meet),
		zap.Int("meet_id", report.MeetID),
		zap.String("status", report.Status),
		zap.Bool("dry_run", report.DryRun),
	)
	for _, p := range report.Phases {
		l.Info("Phase",
			zap.String("phase", p.Name),
			zap.Int("considered", p.Considered),
			zap.Int("planned", p.Planned),
			zap.Int("applied", p.Applied),
			zap.Int("skipped", p.Skipped),
			zap.Int("lookups", p.Lookups),
			zap.Int("conflicts", p.Conflicts),
		)
	}

	// Show a sample of issues; the full list is in the ledger and in --output json
	maxShow := 10
	if len(report.Issues) < maxShow {
		maxShow = len(report.Issues)
	}
	for _, issue := range report.Issues[:maxShow] {
		l.Warn("Issue",
			zap.String("phase", issue.Phase),
			zap.String("kind", string(issue.Kind)),
			zap.String("message", issue.Message),
		)
	}
	if len(report.Issues) > maxShow {
		l.Info("Additional issues not shown", zap.Int("count", len(report.Issues)-maxShow))
	}
	return nil
}

// plannedActions sums the planned actions of every phase.
func plannedActions(report *importer.Report) int {
	n := 0
	for _, p := range report.Phases {
		n += p.Planned
	}
	return n
}
