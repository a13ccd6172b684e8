package meet

import (
	"fmt"

	"meet-importer/core/errors"
	"meet-importer/core/meetservice"
	"meet-importer/core/reconcile"
	"meet-importer/feature/meet/models"
)

// Phase is the name of the meet setup phase.
const Phase = "meet"

// Plan decides whether the meet must be created. An existing meet is left
// untouched; events missing from it are reported.
func Plan(m *models.Meet, existing *meetservice.Meet) *reconcile.Plan {
	plan := reconcile.NewPlan(Phase)
	plan.Summary.Considered = 1

	reportUnmapped(plan, m)

	programs := reconcile.NewIndex(m.Events, func(e models.Event) (int, bool) { return e.ProgramNumber, true })
	for _, dup := range programs.Duplicates() {
		plan.ReportIssue(reconcile.Issue{
			Kind:    reconcile.IssueDuplicate,
			Message: fmt.Sprintf("program number %d is used by more than one event", dup),
		})
	}

	if existing == nil {
		plan.Add(reconcile.Action{
			Type:    reconcile.ActionCreateMeet,
			Key:     "meet " + m.Name,
			Reason:  "meet not found",
			Payload: m.ToRemote(),
		})
		return plan
	}

	plan.Skip()
	remote := reconcile.NewIndex(existing.Events, func(e meetservice.Event) (int, bool) {
		return int(e.ProgramNumber), true
	})
	for _, e := range m.Events {
		if !remote.Has(e.ProgramNumber) {
			plan.Report(errors.NewRemoteLookup("event", e.ProgramNumber))
		}
	}
	return plan
}

func reportUnmapped(plan *reconcile.Plan, m *models.Meet) {
	unmapped := func(format string, args ...any) {
		plan.ReportIssue(reconcile.Issue{Kind: reconcile.IssueUnmapped, Message: fmt.Sprintf(format, args...)})
	}

	if m.Course == models.CourseUnmapped {
		unmapped("meet course is neither long nor short course")
	}
	if m.Class != models.MeetClassMasters {
		unmapped("meet class %d: events are not classified", m.Class)
	}

	for _, e := range m.Events {
		if e.Stroke == models.StrokeUnmapped {
			unmapped("event %d: stroke has no discipline", e.ProgramNumber)
		}
		if e.Kind == models.KindUnmapped {
			unmapped("event %d: neither individual nor relay", e.ProgramNumber)
		}
		if m.Class == models.MeetClassMasters && e.Classification == "" {
			unmapped("event %d: no event type for %d rounds", e.ProgramNumber, e.Rounds)
		}
	}
}
