package entries

import (
	"fmt"

	"meet-importer/core/meetservice"
	"meet-importer/core/reconcile"
	"meet-importer/feature/legacy"
	"meet-importer/feature/roster"
)

// Phase is the name of the individual entries phase.
const Phase = "entries"

// Input is the snapshot the entries phase works on.
type Input struct {
	Store    *legacy.Store
	Resolver *roster.Resolver
	MeetID   int
	// Existing are the entries the meet already has remotely.
	Existing []meetservice.Entry
}

// Plan creates an entry for every legacy entry row without a remote
// counterpart. Rows whose athlete, team or event cannot be resolved are
// skipped and reported.
func Plan(in Input) *reconcile.Plan {
	plan := reconcile.NewPlan(Phase)

	existing := reconcile.NewIndex(in.Existing, func(e meetservice.Entry) (meetservice.EntryKey, bool) {
		return e.Key(), true
	})
	planned := make(map[meetservice.EntryKey]struct{})

	for i, row := range in.Store.Entries {
		plan.Summary.Considered++

		who, err := in.Resolver.Athlete(row.AthNo)
		if err != nil {
			plan.Report(fmt.Errorf("entry row %d: %w", i+1, err))
			continue
		}
		event, err := in.Store.Event(row.EventPtr)
		if err != nil {
			plan.Report(fmt.Errorf("entry row %d: %w", i+1, err))
			continue
		}

		entry := meetservice.Entry{
			AthleteID:     who.Athlete.AthleteID,
			MeetID:        in.MeetID,
			TeamID:        who.Team.TeamID,
			ProgramNumber: meetservice.ProgramNumber(event.No),
			SeedTime:      SeedTime(row),
			StatusCode:    meetservice.StatusEntered,
			Scratched:     row.Scratched,
		}
		key := entry.Key()

		if existing.Has(key) {
			plan.Skip()
			continue
		}
		if _, dup := planned[key]; dup {
			plan.ReportIssue(reconcile.Issue{
				Kind:    reconcile.IssueDuplicate,
				Message: fmt.Sprintf("entry row %d: athlete %d already entered in event %d", i+1, key.AthleteID, event.No),
			})
			continue
		}
		planned[key] = struct{}{}

		plan.Add(reconcile.Action{
			Type:    reconcile.ActionCreateEntries,
			Key:     fmt.Sprintf("entry %d/%d", event.No, key.AthleteID),
			Reason:  "no remote entry",
			Payload: entry,
		})
	}

	return plan
}

// SeedTime picks the converted seed time, then the actual seed time.
// Nil means no seed time.
func SeedTime(row legacy.EntryRow) *float64 {
	if row.ConvSeed != nil {
		return row.ConvSeed
	}
	return row.ActualSeed
}
