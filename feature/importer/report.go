package importer

import (
	"time"

	"meet-importer/core/reconcile"
	"meet-importer/feature/ledger"
)

// PhaseReport holds the counts of one phase.
type PhaseReport struct {
	Name       string `json:"name" yaml:"name"`
	Considered int    `json:"considered" yaml:"considered"`
	Planned    int    `json:"planned" yaml:"planned"`
	Applied    int    `json:"applied" yaml:"applied"`
	Skipped    int    `json:"skipped" yaml:"skipped"`
	Lookups    int    `json:"lookups" yaml:"lookups"`
	Conflicts  int    `json:"conflicts" yaml:"conflicts"`
}

// Report describes the outcome of an import run.
type Report struct {
	ID         string             `json:"id" yaml:"id"`
	Source     string             `json:"source" yaml:"source"`
	Meet       string             `json:"meet" yaml:"meet"`
	MeetID     int                `json:"meet_id" yaml:"meet_id"`
	DryRun     bool               `json:"dry_run" yaml:"dry_run"`
	Status     string             `json:"status" yaml:"status"`
	Error      string             `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt  time.Time          `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time          `json:"finished_at" yaml:"finished_at"`
	Phases     []PhaseReport      `json:"phases" yaml:"phases"`
	Issues     []reconcile.Issue  `json:"issues" yaml:"issues"`
	Actions    []reconcile.Action `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// Phase returns the report of the named phase.
func (r *Report) Phase(name string) (PhaseReport, bool) {
	for _, p := range r.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return PhaseReport{}, false
}

// IssueCount returns the number of issues of the given kind.
func (r *Report) IssueCount(kind reconcile.IssueKind) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Kind == kind {
			n++
		}
	}
	return n
}

// add appends the outcome of a planned and applied phase.
func (r *Report) add(plan *reconcile.Plan, applied int) {
	r.Phases = append(r.Phases, PhaseReport{
		Name:       plan.Phase,
		Considered: plan.Summary.Considered,
		Planned:    plan.Summary.Planned,
		Applied:    applied,
		Skipped:    plan.Summary.Skipped,
		Lookups:    plan.Summary.Lookups,
		Conflicts:  plan.Summary.Conflicts,
	})
	r.Issues = append(r.Issues, plan.Issues...)
	if r.DryRun {
		r.Actions = append(r.Actions, plan.Actions...)
	}
}

func (r *Report) finish(err error, at time.Time) {
	r.FinishedAt = at
	switch {
	case err != nil:
		r.Status = ledger.StatusFailed
		r.Error = err.Error()
	case r.DryRun:
		r.Status = ledger.StatusDryRun
	default:
		r.Status = ledger.StatusSucceeded
	}
}

// Run converts the report into a ledger record.
func (r *Report) Run() *ledger.Run {
	run := &ledger.Run{
		ID:         r.ID,
		Source:     r.Source,
		MeetName:   r.Meet,
		MeetID:     r.MeetID,
		DryRun:     r.DryRun,
		Status:     r.Status,
		Error:      r.Error,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
	for _, p := range r.Phases {
		run.Phases = append(run.Phases, ledger.Phase{
			Name:       p.Name,
			Considered: p.Considered,
			Planned:    p.Planned,
			Applied:    p.Applied,
			Skipped:    p.Skipped,
		})
	}
	for _, issue := range r.Issues {
		run.Issues = append(run.Issues, ledger.Issue{
			Phase:   issue.Phase,
			Kind:    string(issue.Kind),
			Message: issue.Message,
		})
	}
	return run
}
