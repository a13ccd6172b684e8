package meet

import (
	"fmt"
	"sort"
	"time"

	"meet-importer/feature/legacy"
	"meet-importer/feature/meet/models"
)

// Translate turns the legacy meet row and event rows into the canonical meet.
// Events are ordered by program number. Unreadable meet dates are an error
// since the meet cannot be created without them.
func Translate(row legacy.MeetRow, events []legacy.EventRow) (*models.Meet, error) {
	m := &models.Meet{
		Name:                row.Name,
		MaxIndividualEvents: row.MaxIndividualPerAthlete,
		MaxRelayEvents:      row.MaxRelayPerAthlete,
		MaxTotalEvents:      row.MaxEntriesTotal,
		Class:               row.Class,
		Course:              models.ParseCourse(row.Course),
	}
	if m.Name == "" {
		return nil, fmt.Errorf("legacy meet has no name")
	}

	dates := []struct {
		field string
		raw   string
		dst   *time.Time
	}{
		{"Meet_start", row.Start, &m.Start},
		{"Meet_end", row.End, &m.End},
		{"entry_deadline", row.EntryDeadline, &m.Deadline},
		{"Calc_date", row.CalcDate, &m.AgeUpDate},
	}
	for _, d := range dates {
		t, err := legacy.ParseDate(d.raw)
		if err != nil {
			return nil, fmt.Errorf("meet %s: %w", d.field, err)
		}
		*d.dst = t
	}

	m.Events = make([]models.Event, 0, len(events))
	for _, e := range events {
		m.Events = append(m.Events, TranslateEvent(row.Class, m.Course, e))
	}
	sort.SliceStable(m.Events, func(i, j int) bool {
		return m.Events[i].ProgramNumber < m.Events[j].ProgramNumber
	})

	return m, nil
}

// TranslateEvent builds the canonical event for a legacy event row.
func TranslateEvent(meetClass int, course models.Course, row legacy.EventRow) models.Event {
	e := models.Event{
		ProgramNumber:  row.No,
		Kind:           models.ParseEventKind(row.IndRel),
		Gender:         models.ParseGender(row.Gender),
		Stroke:         models.ParseStroke(row.Stroke),
		Course:         course,
		DistanceMeters: row.Distance,
		Rounds:         row.Rounds,
		Legs:           1,
	}

	if e.Kind == models.KindRelay {
		e.Legs = row.RelayLegs
		if e.Legs <= 0 {
			e.Legs = DefaultRelayLegs
		}
	}
	e.Classification = Classify(meetClass, e)
	return e
}

// DefaultRelayLegs is used for relay events that do not record a leg count.
const DefaultRelayLegs = 4

// Classify returns the event type label. Only single-round events of masters
// meets are classified; every other combination yields an empty label.
func Classify(meetClass int, e models.Event) string {
	if meetClass != models.MeetClassMasters || e.Rounds != 1 {
		return ""
	}

	switch e.Kind {
	case models.KindIndividual:
		return "Seeded Individual Mixed Finals"
	case models.KindRelay:
		switch e.Gender {
		case models.GenderMen:
			return "Seeded Mens Relay Finals"
		case models.GenderWomen:
			return "Seeded Womens Relay Finals"
		case models.GenderMixed:
			return "Seeded Mixed Relay Finals"
		}
	}
	return ""
}
