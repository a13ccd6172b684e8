package roster

import (
	"testing"
	"time"

	"meet-importer/core/errors"
	"meet-importer/core/meetservice"
	"meet-importer/core/reconcile"
	"meet-importer/feature/legacy"
	"meet-importer/feature/meet/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *legacy.Store {
	t.Helper()
	store, err := legacy.Parse(map[string][]byte{
		legacy.TableMeet: []byte(`{"Meet_name1":"Open"}`),
		legacy.TableTeam: []byte(`{"Team_no":1,"Team_name":"Harbour Masters","Team_abbr":"HM"}
{"Team_no":2,"Team_name":"River Rats","Team_abbr":"RR"}`),
		legacy.TableAthlete: []byte(`{"Ath_no":10,"Comp_no":500,"Last_name":"Smith","First_name":"Ann","Ath_Sex":"F","Birth_date":"05/20/50 00:00:00","Ath_age":76,"Reg_no":"M1","Team_no":1}
{"Ath_no":11,"Comp_no":501,"Last_name":"Jones","First_name":"Bo","Ath_Sex":"M","Birth_date":"garbage","Ath_age":34,"Reg_no":"M2","Team_no":1}
{"Ath_no":12,"Comp_no":502,"Last_name":"Lost","First_name":"Cy","Birth_date":"01/01/90 00:00:00","Reg_no":"M9","Team_no":9}`),
	})
	require.NoError(t, err)
	return store
}

func TestTranslate(t *testing.T) {
	teams, issues := Translate(newStore(t), now)

	require.Len(t, teams, 2)
	require.Len(t, teams[0].Members, 2)
	assert.Empty(t, teams[1].Members)

	ann := teams[0].Members[0]
	assert.Equal(t, 500, ann.LegacyID)
	assert.Equal(t, time.Date(1950, time.May, 20, 0, 0, 0, 0, time.UTC), ann.DOB, "century corrected")

	bo := teams[0].Members[1]
	assert.True(t, bo.DOB.IsZero())
	assert.Equal(t, "", bo.ToRemote(1).DOB)

	require.Len(t, issues, 2)
	assert.Contains(t, issues[0].Error(), "athlete 501")
	assert.ErrorIs(t, issues[1], errors.ErrLookup)
}

func remoteTeams() []meetservice.Team {
	return []meetservice.Team{
		{
			TeamID:       40,
			TeamName:     "Completely Different Name",
			Abbreviation: "ABC",
			Members:      []meetservice.Athlete{{AthleteID: 400, MemberNumber: "A1", TeamID: 40}},
		},
		{
			TeamID:       41,
			TeamName:     "River Rats",
			Abbreviation: "RIV",
			Members:      []meetservice.Athlete{{AthleteID: 410, MemberNumber: "R1", TeamID: 41}},
		},
	}
}

func TestDirectory_Team(t *testing.T) {
	dir := NewDirectory(remoteTeams())

	t.Run("Abbreviation wins regardless of name", func(t *testing.T) {
		team, conflict, ok := dir.Team("ABC", "Alpha Beta Club")
		assert.True(t, ok)
		assert.Nil(t, conflict)
		assert.Equal(t, 40, team.TeamID)
	})

	t.Run("Name fallback reports conflict", func(t *testing.T) {
		team, conflict, ok := dir.Team("RR", "River Rats")
		assert.True(t, ok)
		require.NotNil(t, conflict)
		assert.Equal(t, 41, team.TeamID)
		assert.Equal(t, "RIV", conflict.RemoteAbbr)
		assert.Equal(t, "RR", conflict.LegacyAbbr)
	})

	t.Run("Abbreviation is case sensitive", func(t *testing.T) {
		_, _, ok := dir.Team("abc", "Nobody")
		assert.False(t, ok)
	})

	t.Run("No match", func(t *testing.T) {
		_, _, ok := dir.Team("ZZZ", "Nobody")
		assert.False(t, ok)
	})
}

func TestPlan(t *testing.T) {
	dir := NewDirectory(remoteTeams())
	teams := []models.Team{
		{
			LegacyID:     1,
			Name:         "Alpha Beta Club",
			Abbreviation: "ABC",
			Members:      []models.Athlete{{LegacyID: 1, MemberNumber: "A1"}, {LegacyID: 2, MemberNumber: "A2"}},
		},
		{
			LegacyID:     2,
			Name:         "River Rats",
			Abbreviation: "RR",
			Members:      []models.Athlete{{LegacyID: 3, MemberNumber: "R1"}},
		},
		{
			LegacyID:     3,
			Name:         "New Club",
			Abbreviation: "NEW",
			Members:      []models.Athlete{{LegacyID: 4, MemberNumber: "N1"}, {LegacyID: 5, MemberNumber: "N2"}},
		},
	}

	plan := Plan(teams, dir)

	newTeams := reconcile.Payloads[meetservice.Team](plan, reconcile.ActionCreateTeams)
	require.Len(t, newTeams, 1)
	assert.Equal(t, "NEW", newTeams[0].Abbreviation)
	assert.Len(t, newTeams[0].Members, 2, "unmatched team is created with all members")

	athletes := reconcile.Payloads[meetservice.Athlete](plan, reconcile.ActionCreateAthletes)
	require.Len(t, athletes, 1)
	assert.Equal(t, "A2", athletes[0].MemberNumber)
	assert.Equal(t, 40, athletes[0].TeamID, "athlete joins the remote team")

	assert.Equal(t, 1, plan.Summary.Conflicts)
	assert.Equal(t, 2, plan.Summary.Planned)
	// Two matched teams plus athletes A1 and R1
	assert.Equal(t, 4, plan.Summary.Skipped)
}

func TestPlan_DuplicateMemberNumbers(t *testing.T) {
	teams := []models.Team{{
		LegacyID:     1,
		Name:         "New Club",
		Abbreviation: "NEW",
		Members:      []models.Athlete{{LegacyID: 1, MemberNumber: "N1"}, {LegacyID: 2, MemberNumber: "N1"}},
	}}

	plan := Plan(teams, NewDirectory(nil))

	created := reconcile.Payloads[meetservice.Team](plan, reconcile.ActionCreateTeams)
	require.Len(t, created, 1)
	assert.Len(t, created[0].Members, 1)
	require.Len(t, plan.Issues, 1)
	assert.Equal(t, reconcile.IssueDuplicate, plan.Issues[0].Kind)
}

func TestPlan_BlankMemberNumbers(t *testing.T) {
	teams := []models.Team{{
		LegacyID:     1,
		Name:         "New Club",
		Abbreviation: "NEW",
		Members: []models.Athlete{
			{LegacyID: 1, MemberNumber: ""},
			{LegacyID: 2, MemberNumber: ""},
			{LegacyID: 3, MemberNumber: "N3"},
		},
	}}

	plan := Plan(teams, NewDirectory(nil))

	created := reconcile.Payloads[meetservice.Team](plan, reconcile.ActionCreateTeams)
	require.Len(t, created, 1)
	require.Len(t, created[0].Members, 1)
	assert.Equal(t, "N3", created[0].Members[0].MemberNumber)

	require.Len(t, plan.Issues, 2)
	for _, issue := range plan.Issues {
		assert.Equal(t, reconcile.IssueInvalid, issue.Kind)
		assert.Contains(t, issue.Message, "has no member number")
	}
	assert.Contains(t, plan.Issues[1].Message, "athlete 2")
}

func TestPlan_SecondRunIsEmpty(t *testing.T) {
	teams, _ := Translate(newStore(t), now)
	remote := make([]meetservice.Team, 0, len(teams))
	for _, team := range teams {
		remote = append(remote, team.ToRemote())
	}

	plan := Plan(teams, NewDirectory(remote))
	assert.Empty(t, plan.Actions)
	assert.Empty(t, plan.Issues)
}

func TestResolver(t *testing.T) {
	store := newStore(t)
	dir := NewDirectory([]meetservice.Team{{
		TeamID:       70,
		TeamName:     "Harbour Masters",
		Abbreviation: "HM",
		Members:      []meetservice.Athlete{{AthleteID: 700, MemberNumber: "M1", TeamID: 70}},
	}})
	r := NewResolver(store, dir)

	got, err := r.Athlete(10)
	require.NoError(t, err)
	assert.Equal(t, 70, got.Team.TeamID)
	assert.Equal(t, 700, got.Athlete.AthleteID)

	_, err = r.Athlete(11)
	assert.ErrorIs(t, err, errors.ErrLookup)
	assert.Contains(t, err.Error(), "remote athlete M2 in team HM")

	_, err = r.Athlete(99)
	assert.Contains(t, err.Error(), "legacy athlete 99")

	_, err = r.Team(2)
	assert.Contains(t, err.Error(), "remote team RR")
}
