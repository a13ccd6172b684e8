package meet

import (
	"testing"
	"time"

	"meet-importer/core/meetservice"
	"meet-importer/core/reconcile"
	"meet-importer/feature/legacy"
	"meet-importer/feature/meet/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meetRow() legacy.MeetRow {
	return legacy.MeetRow{
		Name:                    "Spring Open",
		Start:                   "03/15/24 00:00:00",
		End:                     "03/16/24 00:00:00",
		EntryDeadline:           "03/01/24 17:30:00",
		CalcDate:                "12/31/24 00:00:00",
		MaxIndividualPerAthlete: 5,
		MaxRelayPerAthlete:      2,
		MaxEntriesTotal:         7,
		Class:                   models.MeetClassMasters,
		Course:                  1,
	}
}

func TestTranslate(t *testing.T) {
	events := []legacy.EventRow{
		{No: 2, Rounds: 1, IndRel: "R", Gender: "F", RelayLegs: 4, Stroke: "A", Distance: 200},
		{No: 1, Rounds: 1, IndRel: "I", Gender: "X", Stroke: "A", Distance: 50},
	}

	m, err := Translate(meetRow(), events)
	require.NoError(t, err)
	require.Len(t, m.Events, 2)

	first := m.Events[0]
	assert.Equal(t, 1, first.ProgramNumber, "events are ordered by program number")
	assert.Equal(t, "Freestyle", first.Stroke.Discipline())
	assert.Equal(t, "50m LC", first.Distance())
	assert.Equal(t, 1, first.Legs)
	assert.Equal(t, "Seeded Individual Mixed Finals", first.Classification)

	relay := m.Events[1]
	assert.Equal(t, "Seeded Womens Relay Finals", relay.Classification)
	assert.Equal(t, 4, relay.Legs)

	remote := m.ToRemote()
	assert.Equal(t, "2024-03-15", remote.StartDate)
	assert.Equal(t, "2024-03-16", remote.EndDate)
	assert.Equal(t, "2024-03-01T17:30:00", remote.Deadline)
	assert.Equal(t, "2024-12-31", remote.AgeUpDate)
	assert.Equal(t, 7, remote.MaxTotalEvents)
	assert.Equal(t, meetservice.ProgramNumber(1), remote.Events[0].ProgramNumber)
	assert.Equal(t, 1, remote.Events[0].EventOrder)
}

func TestTranslate_InvalidDate(t *testing.T) {
	row := meetRow()
	row.EntryDeadline = "soon"

	_, err := Translate(row, nil)
	assert.ErrorContains(t, err, "entry_deadline")
}

func TestTranslateEvent(t *testing.T) {
	tests := []struct {
		name       string
		meetClass  int
		course     models.Course
		row        legacy.EventRow
		discipline string
		distance   string
		legs       int
		class      string
	}{
		{
			name:       "Masters mens relay",
			meetClass:  6,
			course:     models.CourseShort,
			row:        legacy.EventRow{No: 3, Rounds: 1, IndRel: "R", Gender: "M", RelayLegs: 4, Stroke: "E", Distance: 200},
			discipline: "Individual Medley",
			distance:   "200m SC",
			legs:       4,
			class:      "Seeded Mens Relay Finals",
		},
		{
			name:       "Masters mixed relay",
			meetClass:  6,
			course:     models.CourseLong,
			row:        legacy.EventRow{No: 4, Rounds: 1, IndRel: "R", Gender: "X", RelayLegs: 4, Stroke: "B", Distance: 100},
			discipline: "Backstroke",
			distance:   "100m LC",
			legs:       4,
			class:      "Seeded Mixed Relay Finals",
		},
		{
			name:       "Relay outside masters still gets legs",
			meetClass:  1,
			course:     models.CourseLong,
			row:        legacy.EventRow{No: 5, Rounds: 2, IndRel: "R", Gender: "F", RelayLegs: 4, Stroke: "D", Distance: 200},
			discipline: "Butterfly",
			distance:   "200m LC",
			legs:       4,
			class:      "",
		},
		{
			name:       "Relay without leg count",
			meetClass:  6,
			course:     models.CourseLong,
			row:        legacy.EventRow{No: 6, Rounds: 1, IndRel: "R", Gender: "F", Stroke: "C", Distance: 200},
			discipline: "Breaststroke",
			distance:   "200m LC",
			legs:       DefaultRelayLegs,
			class:      "Seeded Womens Relay Finals",
		},
		{
			name:       "Multi round masters event",
			meetClass:  6,
			course:     models.CourseLong,
			row:        legacy.EventRow{No: 7, Rounds: 2, IndRel: "I", Stroke: "A", Distance: 100},
			discipline: "Freestyle",
			distance:   "100m LC",
			legs:       1,
			class:      "",
		},
		{
			name:       "Unmapped codes",
			meetClass:  6,
			course:     models.CourseUnmapped,
			row:        legacy.EventRow{No: 8, Rounds: 1, IndRel: "I", Stroke: "Z", Distance: 25},
			discipline: "",
			distance:   "25m ",
			legs:       1,
			class:      "Seeded Individual Mixed Finals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := TranslateEvent(tt.meetClass, tt.course, tt.row)
			assert.Equal(t, tt.discipline, e.Stroke.Discipline())
			assert.Equal(t, tt.distance, e.Distance())
			assert.Equal(t, tt.legs, e.Legs)
			assert.Equal(t, tt.class, e.Classification)
		})
	}
}

func TestPlan(t *testing.T) {
	m := &models.Meet{
		Name:   "Spring Open",
		Class:  models.MeetClassMasters,
		Course: models.CourseLong,
		Start:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Events: []models.Event{
			{ProgramNumber: 1, Kind: models.KindIndividual, Stroke: models.StrokeFreestyle, Rounds: 1, Classification: "Seeded Individual Mixed Finals"},
			{ProgramNumber: 2, Kind: models.KindIndividual, Stroke: models.StrokeUnmapped, Rounds: 1, Classification: "Seeded Individual Mixed Finals"},
		},
	}

	t.Run("Missing meet is created", func(t *testing.T) {
		plan := Plan(m, nil)

		require.Len(t, plan.Actions, 1)
		assert.Equal(t, reconcile.ActionCreateMeet, plan.Actions[0].Type)
		payload, ok := plan.Actions[0].Payload.(meetservice.Meet)
		require.True(t, ok)
		assert.Equal(t, "Spring Open", payload.Name)
		assert.Len(t, payload.Events, 2)

		require.Len(t, plan.Issues, 1)
		assert.Equal(t, reconcile.IssueUnmapped, plan.Issues[0].Kind)
		assert.Contains(t, plan.Issues[0].Message, "event 2")
	})

	t.Run("Existing meet is kept", func(t *testing.T) {
		existing := &meetservice.Meet{MeetID: 9, Name: "Spring Open", Events: []meetservice.Event{{ProgramNumber: 1}}}
		plan := Plan(m, existing)

		assert.Empty(t, plan.Actions)
		assert.Equal(t, 1, plan.Summary.Skipped)
		assert.Equal(t, 1, plan.Summary.Lookups, "event 2 is missing remotely")
	})

	t.Run("Duplicate program numbers", func(t *testing.T) {
		dup := *m
		dup.Events = append([]models.Event{}, m.Events[0], m.Events[0])
		plan := Plan(&dup, nil)

		var kinds []reconcile.IssueKind
		for _, issue := range plan.Issues {
			kinds = append(kinds, issue.Kind)
		}
		assert.Contains(t, kinds, reconcile.IssueDuplicate)
	})
}
