package roster

import (
	"fmt"
	"time"

	"meet-importer/core/errors"
	"meet-importer/feature/legacy"
	"meet-importer/feature/meet/models"
)

// Translate builds canonical teams with their members from the legacy store.
// Athletes whose team is missing and unreadable birth dates are returned as
// issues; the athlete is still kept in the latter case.
func Translate(store *legacy.Store, now time.Time) ([]models.Team, []error) {
	var issues []error

	teams := make([]models.Team, 0, len(store.Teams))
	position := make(map[int]int, len(store.Teams))
	for _, row := range store.Teams {
		if _, dup := position[row.No]; dup {
			continue
		}
		position[row.No] = len(teams)
		teams = append(teams, models.Team{
			LegacyID:     row.No,
			Name:         row.Name,
			Abbreviation: row.Abbr,
		})
	}

	for _, row := range store.Athletes {
		idx, ok := position[row.TeamNo]
		if !ok {
			issues = append(issues, fmt.Errorf("athlete %d: %w", row.CompNo, errors.NewLegacyLookup("team", row.TeamNo)))
			continue
		}

		athlete := models.Athlete{
			LegacyID:      row.CompNo,
			Surname:       row.LastName,
			FirstName:     row.FirstName,
			OtherNames:    row.Initial,
			PreferredName: row.PrefName,
			Sex:           row.Sex,
			Age:           row.Age,
			MemberNumber:  row.RegNo,
			TeamNo:        row.TeamNo,
		}

		dob, err := legacy.InferBirthDate(row.BirthDate, now)
		if err != nil {
			issues = append(issues, fmt.Errorf("athlete %d: %w", row.CompNo, err))
		} else {
			athlete.DOB = dob
		}

		teams[idx].Members = append(teams[idx].Members, athlete)
	}

	return teams, issues
}
