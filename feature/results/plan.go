package results

import (
	"fmt"

	"meet-importer/core/errors"
	"meet-importer/core/meetservice"
	"meet-importer/core/reconcile"
	"meet-importer/feature/legacy"
	"meet-importer/feature/roster"
)

// Phase is the name of the results phase.
const Phase = "results"

// Input is the snapshot the results phase works on.
type Input struct {
	Store    *legacy.Store
	Resolver *roster.Resolver
	MeetID   int
	// Entries are the remote entries of the meet, including ones created by this run.
	Entries []meetservice.Entry
}

// Reading is a secondary timed reading of an entry.
type Reading struct {
	Code    string
	Seconds float64
}

// Readings returns the final time and the secondary readings of a legacy entry
// row. Absent and zero times are not readings.
func Readings(row legacy.EntryRow) (*float64, []Reading) {
	final := timed(row.FinTime)

	var heats []Reading
	for _, r := range []struct {
		code  string
		value *float64
	}{
		{meetservice.TimeTypePad, row.FinPad},
		{meetservice.TimeTypeBackup1, row.FinBack1},
		{meetservice.TimeTypeBackup2, row.FinBack2},
		{meetservice.TimeTypeBackup3, row.FinBack3},
	} {
		if v := timed(r.value); v != nil {
			heats = append(heats, Reading{Code: r.code, Seconds: *v})
		}
	}
	return final, heats
}

func timed(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

// Plan builds a result for every legacy entry row with at least one reading.
// Rows without readings are dropped; rows whose remote entry cannot be found
// are reported.
func Plan(in Input) *reconcile.Plan {
	plan := reconcile.NewPlan(Phase)

	entries := reconcile.NewIndex(in.Entries, func(e meetservice.Entry) (meetservice.EntryKey, bool) {
		return e.Key(), true
	})

	for i, row := range in.Store.Entries {
		plan.Summary.Considered++

		final, heats := Readings(row)
		if final == nil && len(heats) == 0 {
			plan.Skip()
			continue
		}

		who, err := in.Resolver.Athlete(row.AthNo)
		if err != nil {
			plan.Report(fmt.Errorf("result row %d: %w", i+1, err))
			continue
		}
		event, err := in.Store.Event(row.EventPtr)
		if err != nil {
			plan.Report(fmt.Errorf("result row %d: %w", i+1, err))
			continue
		}

		key := meetservice.EntryKey{ProgramNumber: meetservice.ProgramNumber(event.No), AthleteID: who.Athlete.AthleteID}
		entry, ok := entries.Get(key)
		if !ok {
			plan.Report(fmt.Errorf("result row %d: %w", i+1,
				errors.NewRemoteLookup("entry", fmt.Sprintf("%d/%d", event.No, key.AthleteID))))
			continue
		}

		result := meetservice.Result{
			EntryID:     entry.EntryID,
			MeetID:      in.MeetID,
			HeatResults: make([]meetservice.TimeResult, 0, len(heats)),
		}
		if final != nil {
			result.FinalResult = &meetservice.TimeResult{EntryID: entry.EntryID, MeetID: in.MeetID, Seconds: *final}
		}
		for _, h := range heats {
			result.HeatResults = append(result.HeatResults, meetservice.TimeResult{
				EntryID:      entry.EntryID,
				MeetID:       in.MeetID,
				Seconds:      h.Seconds,
				TimeTypeCode: h.Code,
			})
		}

		plan.Add(reconcile.Action{
			Type:    reconcile.ActionUpsertResults,
			Key:     fmt.Sprintf("result %d", entry.EntryID),
			Reason:  fmt.Sprintf("%d readings", len(heats)+boolCount(final != nil)),
			Payload: result,
		})
	}

	return plan
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}
