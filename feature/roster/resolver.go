package roster

import (
	"fmt"

	"meet-importer/core/errors"
	"meet-importer/core/meetservice"
	"meet-importer/feature/legacy"
)

// Resolved is the remote identity of a legacy athlete.
type Resolved struct {
	Team    meetservice.Team
	Athlete meetservice.Athlete
}

// Resolver follows a legacy athlete number to the remote team and athlete:
// legacy athlete, legacy team, remote team, then remote member.
type Resolver struct {
	store *legacy.Store
	dir   *Directory
}

// NewResolver creates a resolver over a legacy store and a remote roster snapshot.
func NewResolver(store *legacy.Store, dir *Directory) *Resolver {
	return &Resolver{store: store, dir: dir}
}

// Team resolves a legacy team number to the remote team.
func (r *Resolver) Team(teamNo int) (meetservice.Team, error) {
	legacyTeam, err := r.store.Team(teamNo)
	if err != nil {
		return meetservice.Team{}, err
	}
	team, _, ok := r.dir.Team(legacyTeam.Abbr, legacyTeam.Name)
	if !ok {
		return meetservice.Team{}, errors.NewRemoteLookup("team", teamKey(legacyTeam))
	}
	return team, nil
}

// Athlete resolves a legacy athlete number to the remote team and athlete.
func (r *Resolver) Athlete(athNo int) (Resolved, error) {
	legacyAthlete, err := r.store.Athlete(athNo)
	if err != nil {
		return Resolved{}, err
	}

	team, err := r.Team(legacyAthlete.TeamNo)
	if err != nil {
		return Resolved{}, err
	}

	athlete, ok := r.dir.Athlete(team.TeamID, legacyAthlete.RegNo)
	if !ok {
		return Resolved{}, errors.NewRemoteLookup("athlete", fmt.Sprintf("%s in team %s", legacyAthlete.RegNo, team.Abbreviation))
	}
	return Resolved{Team: team, Athlete: athlete}, nil
}

func teamKey(t legacy.TeamRow) string {
	if t.Abbr != "" {
		return t.Abbr
	}
	return t.Name
}
