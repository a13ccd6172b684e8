package models

import (
	"fmt"
	"time"

	"meet-importer/core/meetservice"
)

const (
	dateLayout     = "2006-01-02"
	deadlineLayout = "2006-01-02T15:04:05"
)

// Event is a canonical meet event.
type Event struct {
	ProgramNumber  int
	Kind           EventKind
	Gender         Gender
	Stroke         Stroke
	Course         Course
	DistanceMeters int
	Rounds         int
	Legs           int
	Classification string
}

// Distance formats the distance as "<meters>m <course>".
func (e Event) Distance() string {
	return fmt.Sprintf("%dm %s", e.DistanceMeters, e.Course.Token())
}

// ToRemote converts the event to its wire form.
func (e Event) ToRemote() meetservice.Event {
	return meetservice.Event{
		EventType:     e.Classification,
		EventOrder:    e.ProgramNumber,
		ProgramNumber: meetservice.ProgramNumber(e.ProgramNumber),
		Discipline:    e.Stroke.Discipline(),
		Distance:      e.Distance(),
		Legs:          e.Legs,
	}
}

// Meet is the canonical meet setup.
type Meet struct {
	Name                string
	Start               time.Time
	End                 time.Time
	Deadline            time.Time
	AgeUpDate           time.Time
	MaxIndividualEvents int
	MaxRelayEvents      int
	MaxTotalEvents      int
	Class               int
	Course              Course
	Events              []Event
}

// ToRemote converts the meet to its wire form.
func (m Meet) ToRemote() meetservice.Meet {
	events := make([]meetservice.Event, 0, len(m.Events))
	for _, e := range m.Events {
		events = append(events, e.ToRemote())
	}

	return meetservice.Meet{
		Name:                m.Name,
		StartDate:           m.Start.Format(dateLayout),
		EndDate:             m.End.Format(dateLayout),
		Deadline:            m.Deadline.Format(deadlineLayout),
		MaxIndividualEvents: m.MaxIndividualEvents,
		MaxRelayEvents:      m.MaxRelayEvents,
		MaxTotalEvents:      m.MaxTotalEvents,
		AgeUpDate:           m.AgeUpDate.Format(dateLayout),
		Events:              events,
	}
}

// Athlete is a canonical team member.
type Athlete struct {
	// LegacyID is the competitor number.
	LegacyID      int
	Surname       string
	FirstName     string
	OtherNames    string
	PreferredName string
	Sex           string
	// DOB is zero when the legacy birth date could not be read.
	DOB          time.Time
	Age          int
	MemberNumber string
	TeamNo       int
}

// ToRemote converts the athlete to its wire form as a member of teamID.
func (a Athlete) ToRemote(teamID int) meetservice.Athlete {
	dob := ""
	if !a.DOB.IsZero() {
		dob = a.DOB.Format(dateLayout)
	}
	return meetservice.Athlete{
		AthleteID:     a.LegacyID,
		Surname:       a.Surname,
		FirstName:     a.FirstName,
		OtherNames:    a.OtherNames,
		PreferredName: a.PreferredName,
		Sex:           a.Sex,
		DOB:           dob,
		Age:           a.Age,
		MemberNumber:  a.MemberNumber,
		TeamID:        teamID,
	}
}

// Team is a canonical team with its roster.
type Team struct {
	LegacyID     int
	Name         string
	Abbreviation string
	Members      []Athlete
}

// ToRemote converts the team and its members to the wire form used for creation.
func (t Team) ToRemote() meetservice.Team {
	members := make([]meetservice.Athlete, 0, len(t.Members))
	for _, a := range t.Members {
		members = append(members, a.ToRemote(t.LegacyID))
	}
	return meetservice.Team{
		TeamID:       t.LegacyID,
		TeamName:     t.Name,
		Abbreviation: t.Abbreviation,
		Members:      members,
	}
}
