package roster

import (
	"fmt"

	"meet-importer/core/reconcile"
	"meet-importer/feature/meet/models"
)

// Phase is the name of the teams and athletes phase.
const Phase = "teams"

// Plan computes the add-only roster delta. A team without a remote match is
// created whole; for a matched team only members whose member number is
// unknown in the remote roster are added. Member numbers repeated within a
// legacy team are reported and only the first athlete is kept. Athletes with
// no member number cannot be matched on a later run, so they are reported and
// never created.
func Plan(teams []models.Team, dir *Directory) *reconcile.Plan {
	plan := reconcile.NewPlan(Phase)

	for _, team := range teams {
		plan.Summary.Considered++
		members := uniqueMembers(plan, team)

		remote, conflict, ok := dir.Team(team.Abbreviation, team.Name)
		if conflict != nil {
			plan.Report(conflict)
		}

		if !ok {
			create := team
			create.Members = members
			plan.Add(reconcile.Action{
				Type:    reconcile.ActionCreateTeams,
				Key:     "team " + teamLabel(team),
				Reason:  fmt.Sprintf("team not found, %d members", len(members)),
				Payload: create.ToRemote(),
			})
			continue
		}
		plan.Skip()

		for _, member := range members {
			plan.Summary.Considered++
			if _, exists := dir.Athlete(remote.TeamID, member.MemberNumber); exists {
				plan.Skip()
				continue
			}
			plan.Add(reconcile.Action{
				Type:    reconcile.ActionCreateAthletes,
				Key:     fmt.Sprintf("athlete %s/%s", remote.Abbreviation, member.MemberNumber),
				Reason:  "member number not in remote roster",
				Payload: member.ToRemote(remote.TeamID),
			})
		}
	}

	return plan
}

func uniqueMembers(plan *reconcile.Plan, team models.Team) []models.Athlete {
	seen := make(map[string]struct{}, len(team.Members))
	members := make([]models.Athlete, 0, len(team.Members))
	for _, m := range team.Members {
		if m.MemberNumber == "" {
			plan.ReportIssue(reconcile.Issue{
				Kind:    reconcile.IssueInvalid,
				Message: fmt.Sprintf("team %s: athlete %d has no member number", teamLabel(team), m.LegacyID),
			})
			continue
		}
		if _, dup := seen[m.MemberNumber]; dup {
			plan.ReportIssue(reconcile.Issue{
				Kind:    reconcile.IssueDuplicate,
				Message: fmt.Sprintf("team %s: member number %q used by more than one athlete", teamLabel(team), m.MemberNumber),
			})
			continue
		}
		seen[m.MemberNumber] = struct{}{}
		members = append(members, m)
	}
	return members
}

func teamLabel(t models.Team) string {
	if t.Abbreviation != "" {
		return t.Abbreviation
	}
	return t.Name
}
