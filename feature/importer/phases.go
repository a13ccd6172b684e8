package importer

import (
	"context"
	"fmt"

	"meet-importer/core/errors"
	"meet-importer/core/meetservice"
	"meet-importer/core/reconcile"
	"meet-importer/feature/entries"
	"meet-importer/feature/legacy"
	"meet-importer/feature/meet"
	"meet-importer/feature/meet/models"
	"meet-importer/feature/relays"
	"meet-importer/feature/results"
	"meet-importer/feature/roster"

	"go.uber.org/zap"
)

// runner carries the state of one run from phase to phase.
type runner struct {
	service *Service
	target  meetservice.Service
	mutator *remoteMutator
	store   *legacy.Store
	report  *Report
	log     *zap.Logger
}

// meetOutput is what the meet phase hands to later phases.
type meetOutput struct {
	MeetID int
}

// rosterOutput is what the teams phase hands to later phases.
type rosterOutput struct {
	Directory *roster.Directory
	Resolver  *roster.Resolver
}

// entriesOutput is what the entries phase hands to later phases.
type entriesOutput struct {
	Entries []meetservice.Entry
}

func (r *runner) execute(ctx context.Context, m *models.Meet) error {
	mo, err := r.meet(ctx, m)
	if err != nil {
		return err
	}
	ro, err := r.roster(ctx)
	if err != nil {
		return err
	}
	eo, err := r.entries(ctx, mo, ro)
	if err != nil {
		return err
	}
	if err := r.results(ctx, mo, ro, eo); err != nil {
		return err
	}
	return r.relays(ctx, mo, ro)
}

func (r *runner) meet(ctx context.Context, m *models.Meet) (meetOutput, error) {
	existing, err := r.target.FindMeet(ctx, m.Name)
	if err != nil {
		return meetOutput{}, &errors.PhaseError{Phase: meet.Phase, Err: err}
	}

	plan := meet.Plan(m, existing)
	if err := r.apply(ctx, plan, false); err != nil {
		return meetOutput{}, err
	}

	out := meetOutput{}
	switch {
	case r.mutator.created != nil:
		out.MeetID = r.mutator.created.MeetID
	case existing != nil:
		out.MeetID = existing.MeetID
	}
	r.mutator.meetID = out.MeetID
	r.report.MeetID = out.MeetID
	return out, nil
}

func (r *runner) roster(ctx context.Context) (rosterOutput, error) {
	remote, err := r.target.ListTeams(ctx)
	if err != nil {
		return rosterOutput{}, &errors.PhaseError{Phase: roster.Phase, Err: err}
	}

	teams, problems := roster.Translate(r.store, r.service.now())
	dir := roster.NewDirectory(remote)
	plan := roster.Plan(teams, dir)
	for _, p := range problems {
		plan.Report(p)
	}

	if r.service.policy.BlockOnConflict && plan.Summary.Conflicts > 0 {
		r.record(plan, 0)
		return rosterOutput{}, &errors.PhaseError{
			Phase: roster.Phase,
			Err:   fmt.Errorf("%d teams blocked: %w", plan.Summary.Conflicts, errors.ErrConflict),
		}
	}

	if err := r.apply(ctx, plan, false); err != nil {
		return rosterOutput{}, err
	}

	// Created teams and athletes only get ids from the service
	if plan.Summary.Planned > 0 {
		remote, err = r.target.ListTeams(ctx)
		if err != nil {
			return rosterOutput{}, &errors.PhaseError{Phase: roster.Phase, Err: err}
		}
		dir = roster.NewDirectory(remote)
	}
	return rosterOutput{Directory: dir, Resolver: roster.NewResolver(r.store, dir)}, nil
}

func (r *runner) entries(ctx context.Context, mo meetOutput, ro rosterOutput) (entriesOutput, error) {
	existing, err := r.target.ListEntries(ctx, mo.MeetID)
	if err != nil {
		return entriesOutput{}, &errors.PhaseError{Phase: entries.Phase, Err: err}
	}

	plan := entries.Plan(entries.Input{
		Store:    r.store,
		Resolver: ro.Resolver,
		MeetID:   mo.MeetID,
		Existing: existing,
	})
	if err := r.apply(ctx, plan, r.service.policy.ContinueOnBatchFailure); err != nil {
		return entriesOutput{}, err
	}

	if plan.Summary.Planned > 0 {
		existing, err = r.target.ListEntries(ctx, mo.MeetID)
		if err != nil {
			return entriesOutput{}, &errors.PhaseError{Phase: entries.Phase, Err: err}
		}
	}
	return entriesOutput{Entries: existing}, nil
}

func (r *runner) results(ctx context.Context, mo meetOutput, ro rosterOutput, eo entriesOutput) error {
	plan := results.Plan(results.Input{
		Store:    r.store,
		Resolver: ro.Resolver,
		MeetID:   mo.MeetID,
		Entries:  eo.Entries,
	})
	return r.apply(ctx, plan, r.service.policy.ContinueOnBatchFailure)
}

func (r *runner) relays(ctx context.Context, mo meetOutput, ro rosterOutput) error {
	known := true
	existing, err := r.target.ListRelays(ctx, mo.MeetID)
	switch {
	case errors.Is(err, errors.ErrUnsupported):
		r.log.Info("Remote service cannot list relay teams, submitting all", zap.Error(err))
		known = false
	case err != nil:
		return &errors.PhaseError{Phase: relays.Phase, Err: err}
	}

	plan := relays.Plan(relays.Input{
		Store:         r.store,
		Resolver:      ro.Resolver,
		MeetID:        mo.MeetID,
		Existing:      existing,
		ExistingKnown: known,
	})
	return r.apply(ctx, plan, r.service.policy.ContinueOnBatchFailure)
}

// apply executes a phase plan and records it. With isolate, rejected records
// become issues and the run continues.
func (r *runner) apply(ctx context.Context, plan *reconcile.Plan, isolate bool) error {
	r.log.Debug("Applying phase", zap.String("phase", plan.Phase), zap.Int("planned", plan.Summary.Planned))

	applied, err := reconcile.ApplyPlan(ctx, plan, r.mutator, reconcile.Options{
		Confirmed: true,
		Isolate:   isolate,
	})

	var applyErr *reconcile.ApplyError
	if err != nil && isolate && errors.As(err, &applyErr) {
		for _, f := range applyErr.Failed {
			plan.ReportIssue(reconcile.Issue{
				Kind:    reconcile.IssueFailure,
				Message: fmt.Sprintf("%s: %v", f.Action.Key, f.Err),
				Err:     f.Err,
			})
		}
		err = nil
	}

	r.record(plan, applied)
	if err != nil {
		return &errors.PhaseError{Phase: plan.Phase, Err: err}
	}
	return nil
}

func (r *runner) record(plan *reconcile.Plan, applied int) {
	r.report.add(plan, applied)

	for _, issue := range plan.Issues {
		r.log.Warn("Import issue",
			zap.String("phase", issue.Phase),
			zap.String("kind", string(issue.Kind)),
			zap.String("message", issue.Message))
	}
	r.log.Info("Phase finished",
		zap.String("phase", plan.Phase),
		zap.Int("considered", plan.Summary.Considered),
		zap.Int("planned", plan.Summary.Planned),
		zap.Int("applied", applied),
		zap.Int("skipped", plan.Summary.Skipped),
		zap.Int("lookups", plan.Summary.Lookups),
		zap.Int("conflicts", plan.Summary.Conflicts))
}
