package roster

import (
	"meet-importer/core/errors"
	"meet-importer/core/meetservice"
	"meet-importer/core/reconcile"
)

// Directory resolves teams and athletes against a snapshot of the remote roster.
type Directory struct {
	byAbbr  *reconcile.Index[string, meetservice.Team]
	byName  *reconcile.Index[string, meetservice.Team]
	members map[int]*reconcile.Index[string, meetservice.Athlete]
}

// NewDirectory indexes the remote teams. Abbreviations match case-sensitively.
func NewDirectory(teams []meetservice.Team) *Directory {
	d := &Directory{
		byAbbr: reconcile.NewIndex(teams, func(t meetservice.Team) (string, bool) {
			return t.Abbreviation, t.Abbreviation != ""
		}),
		byName: reconcile.NewIndex(teams, func(t meetservice.Team) (string, bool) {
			return t.TeamName, t.TeamName != ""
		}),
		members: make(map[int]*reconcile.Index[string, meetservice.Athlete], len(teams)),
	}
	for _, t := range teams {
		if _, ok := d.members[t.TeamID]; ok {
			continue
		}
		d.members[t.TeamID] = reconcile.NewIndex(t.Members, func(a meetservice.Athlete) (string, bool) {
			return a.MemberNumber, true
		})
	}
	return d
}

// Team finds the remote team for a legacy abbreviation and name. The
// abbreviation is tried first; a team found only by name is still a match but
// comes with a conflict when its abbreviation differs.
func (d *Directory) Team(abbr, name string) (meetservice.Team, *errors.ConflictError, bool) {
	if abbr != "" {
		if t, ok := d.byAbbr.Get(abbr); ok {
			return t, nil, true
		}
	}

	t, ok := d.byName.Get(name)
	if !ok {
		return meetservice.Team{}, nil, false
	}
	if t.Abbreviation != abbr {
		return t, &errors.ConflictError{
			TeamName:     t.TeamName,
			RemoteAbbr:   t.Abbreviation,
			LegacyAbbr:   abbr,
			RemoteTeamID: t.TeamID,
		}, true
	}
	return t, nil, true
}

// Athlete finds a member of a remote team by member number.
func (d *Directory) Athlete(teamID int, memberNumber string) (meetservice.Athlete, bool) {
	return d.members[teamID].Get(memberNumber)
}
