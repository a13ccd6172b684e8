package meetservice

// StatusEntered is the status code given to every imported entry and relay team.
const StatusEntered = "ENTERED"

// Time type codes for secondary timed readings.
const (
	TimeTypePad     = "PAD"
	TimeTypeBackup1 = "BACKUP1"
	TimeTypeBackup2 = "BACKUP2"
	TimeTypeBackup3 = "BACKUP3"
)

// Event is an event of a meet as exchanged with the service.
type Event struct {
	EventType     string        `json:"event_type"`
	EventOrder    int           `json:"event_order"`
	ProgramNumber ProgramNumber `json:"program_number"`
	Discipline    string        `json:"discipline"`
	Distance      string        `json:"distance"`
	Legs          int           `json:"legs"`
}

// Meet is the meet setup. Dates use YYYY-MM-DD, Deadline is a full timestamp.
type Meet struct {
	MeetID              int     `json:"meet_id,omitempty"`
	Name                string  `json:"meetname"`
	StartDate           string  `json:"startdate"`
	EndDate             string  `json:"enddate"`
	Deadline            string  `json:"deadline"`
	MaxIndividualEvents int     `json:"max_individual_events"`
	MaxRelayEvents      int     `json:"max_relay_events"`
	MaxTotalEvents      int     `json:"max_total_events"`
	AgeUpDate           string  `json:"age_up_date"`
	Events              []Event `json:"events"`
}

// Athlete is a team member.
type Athlete struct {
	AthleteID     int    `json:"athlete_id"`
	Surname       string `json:"surname"`
	FirstName     string `json:"first_name"`
	OtherNames    string `json:"other_names"`
	PreferredName string `json:"preferred_name"`
	Sex           string `json:"sex"`
	DOB           string `json:"dob"`
	Age           int    `json:"age"`
	MemberNumber  string `json:"member_number"`
	TeamID        int    `json:"team_id"`
}

// Team is a club with its roster.
type Team struct {
	TeamID       int       `json:"team_id"`
	TeamName     string    `json:"team_name"`
	Abbreviation string    `json:"abbreviation"`
	Members      []Athlete `json:"members"`
}

// Entry is an individual entry of an athlete into an event.
type Entry struct {
	EntryID       int           `json:"entry_id,omitempty"`
	AthleteID     int           `json:"athlete_id"`
	MeetID        int           `json:"meet_id"`
	TeamID        int           `json:"team_id"`
	ProgramNumber ProgramNumber `json:"program_number"`
	SeedTime      *float64      `json:"seed_time"`
	StatusCode    string        `json:"status_code"`
	Scratched     bool          `json:"scratched"`
}

// RelayMember is one leg of a relay team.
type RelayMember struct {
	Leg       int `json:"leg"`
	AthleteID int `json:"athlete_id"`
}

// RelayTeam is a relay entry, identified by program number, team and letter.
type RelayTeam struct {
	RelayID       int           `json:"relay_id,omitempty"`
	MeetID        int           `json:"meet_id"`
	ProgramNumber ProgramNumber `json:"program_number"`
	TeamID        int           `json:"team_id"`
	SeedTime      *float64      `json:"seed_time"`
	Letter        string        `json:"letter"`
	Scratched     bool          `json:"scratched"`
	StatusCode    string        `json:"status_code"`
	Members       []RelayMember `json:"members"`
}

// TimeResult is a single timed reading of an entry.
type TimeResult struct {
	EntryID      int     `json:"entry_id"`
	MeetID       int     `json:"meet_id"`
	Seconds      float64 `json:"seconds"`
	TimeTypeCode string  `json:"time_type_code,omitempty"`
}

// Result groups the final and secondary readings of an entry.
type Result struct {
	EntryID     int          `json:"entry_id"`
	MeetID      int          `json:"meet_id"`
	FinalResult *TimeResult  `json:"final_result"`
	HeatResults []TimeResult `json:"heat_results"`
}

// EntryKey identifies an individual entry within a meet.
type EntryKey struct {
	ProgramNumber ProgramNumber
	AthleteID     int
}

// Key returns the identity of the entry.
func (e Entry) Key() EntryKey {
	return EntryKey{ProgramNumber: e.ProgramNumber, AthleteID: e.AthleteID}
}

// RelayKey identifies a relay team within a meet.
type RelayKey struct {
	ProgramNumber ProgramNumber
	TeamID        int
	Letter        string
}

// Key returns the identity of the relay team.
func (r RelayTeam) Key() RelayKey {
	return RelayKey{ProgramNumber: r.ProgramNumber, TeamID: r.TeamID, Letter: r.Letter}
}
