package relays

import (
	"fmt"

	"meet-importer/core/meetservice"
	"meet-importer/core/reconcile"
	"meet-importer/feature/legacy"
	"meet-importer/feature/meet"
	"meet-importer/feature/roster"
)

// Phase is the name of the relays phase.
const Phase = "relays"

// Input is the snapshot the relays phase works on.
type Input struct {
	Store    *legacy.Store
	Resolver *roster.Resolver
	MeetID   int
	// Existing are the relay teams the meet already has remotely.
	Existing []meetservice.RelayTeam
	// ExistingKnown is false when the service cannot list relay teams; every
	// relay team is then submitted.
	ExistingKnown bool
}

// Plan assembles relay teams from the relay and relay roster tables. Legs keep
// the order of the roster table. Relay teams already present remotely are
// skipped when the remote relay list is known.
func Plan(in Input) *reconcile.Plan {
	plan := reconcile.NewPlan(Phase)

	existing := reconcile.NewIndex(in.Existing, func(r meetservice.RelayTeam) (meetservice.RelayKey, bool) {
		return r.Key(), true
	})
	planned := make(map[meetservice.RelayKey]struct{})

	for _, row := range in.Store.Relays {
		plan.Summary.Considered++

		team, err := in.Resolver.Team(row.TeamNo)
		if err != nil {
			plan.Report(fmt.Errorf("relay %d: %w", row.RelayNo, err))
			continue
		}
		event, err := in.Store.Event(row.EventPtr)
		if err != nil {
			plan.Report(fmt.Errorf("relay %d: %w", row.RelayNo, err))
			continue
		}

		relay := meetservice.RelayTeam{
			MeetID:        in.MeetID,
			ProgramNumber: meetservice.ProgramNumber(event.No),
			TeamID:        team.TeamID,
			SeedTime:      row.ConvSeed,
			Letter:        row.Letter,
			Scratched:     row.Scratched,
			StatusCode:    meetservice.StatusEntered,
		}
		key := relay.Key()
		label := fmt.Sprintf("relay %d/%s/%s", event.No, team.Abbreviation, row.Letter)

		if in.ExistingKnown && existing.Has(key) {
			plan.Skip()
			continue
		}
		if _, dup := planned[key]; dup {
			plan.ReportIssue(reconcile.Issue{
				Kind:    reconcile.IssueDuplicate,
				Message: label + " appears more than once",
			})
			continue
		}
		planned[key] = struct{}{}

		relay.Members = members(plan, in, row)
		legs := event.RelayLegs
		if legs <= 0 {
			legs = meet.DefaultRelayLegs
		}
		if len(relay.Members) > legs {
			plan.ReportIssue(reconcile.Issue{
				Kind:    reconcile.IssueInvalid,
				Message: fmt.Sprintf("%s has %d members for %d legs", label, len(relay.Members), legs),
			})
		}

		plan.Add(reconcile.Action{
			Type:    reconcile.ActionCreateRelays,
			Key:     label,
			Reason:  fmt.Sprintf("%d members", len(relay.Members)),
			Payload: relay,
		})
	}

	return plan
}

// members resolves the legs of a relay team. Legs whose athlete cannot be
// resolved are left out and reported.
func members(plan *reconcile.Plan, in Input, row legacy.RelayRow) []meetservice.RelayMember {
	roster := in.Store.Roster(row.RelayNo)
	out := make([]meetservice.RelayMember, 0, len(roster))
	for _, leg := range roster {
		who, err := in.Resolver.Athlete(leg.AthNo)
		if err != nil {
			plan.Report(fmt.Errorf("relay %d leg %d: %w", row.RelayNo, leg.PosNo, err))
			continue
		}
		out = append(out, meetservice.RelayMember{Leg: leg.PosNo, AthleteID: who.Athlete.AthleteID})
	}
	return out
}
