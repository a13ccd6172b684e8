package legacy

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"meet-importer/core/utils"
)

// record is one exported row, keyed by column name.
type record map[string]any

func (r record) int(key string) int {
	return utils.ToInt(r[key])
}

// text returns a column as a string with trailing padding removed.
func (r record) text(key string) string {
	return strings.TrimRight(utils.ToString(r[key]), " \t\r\n")
}

func (r record) bool(key string) bool {
	return utils.ToBool(r[key])
}

// has reports whether a column was exported with a non-null value.
func (r record) has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// float returns a numeric column, or nil when it is absent, null or not a number.
func (r record) float(key string) *float64 {
	if !r.has(key) {
		return nil
	}
	f, ok := utils.ToFloat(r[key])
	if !ok {
		return nil
	}
	return &f
}

// MeetRow is the single row of the meet table.
type MeetRow struct {
	Name                    string
	Start                   string
	End                     string
	EntryDeadline           string
	CalcDate                string
	MaxIndividualPerAthlete int
	MaxRelayPerAthlete      int
	MaxEntriesTotal         int
	Class                   int
	Course                  int
}

// EventRow is a row of the event table.
type EventRow struct {
	// Ptr is the key entries and relays refer to.
	Ptr int
	// No is the program number.
	No        int
	Rounds    int
	IndRel    string
	Gender    string
	RelayLegs int
	Stroke    string
	Distance  int
}

// TeamRow is a row of the team table.
type TeamRow struct {
	No   int
	Name string
	Abbr string
}

// AthleteRow is a row of the athlete table.
type AthleteRow struct {
	// No is the key entries and relay rosters refer to.
	No        int
	CompNo    int
	LastName  string
	FirstName string
	Initial   string
	PrefName  string
	Sex       string
	BirthDate string
	Age       int
	RegNo     string
	TeamNo    int
}

// EntryRow is a row of the entry table. Timed fields are nil when not exported.
type EntryRow struct {
	AthNo      int
	EventPtr   int
	ConvSeed   *float64
	ActualSeed *float64
	Scratched  bool
	FinTime    *float64
	FinPad     *float64
	FinBack1   *float64
	FinBack2   *float64
	FinBack3   *float64
}

// RelayRow is a row of the relay table.
type RelayRow struct {
	TeamNo    int
	EventPtr  int
	RelayNo   int
	ConvSeed  *float64
	Letter    string
	Scratched bool
}

// RelayNameRow is a row of the relaynames table: one leg of a relay team.
type RelayNameRow struct {
	RelayNo int
	AthNo   int
	PosNo   int
}

// decodeLines parses JSON-lines output. Blank lines are ignored.
func decodeLines(table string, data []byte) ([]record, error) {
	var records []record

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()

		var rec record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("table %s line %d: %w", table, line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("table %s: %w", table, err)
	}
	return records, nil
}

func parseMeet(r record) MeetRow {
	return MeetRow{
		Name:                    r.text("Meet_name1"),
		Start:                   r.text("Meet_start"),
		End:                     r.text("Meet_end"),
		EntryDeadline:           r.text("entry_deadline"),
		CalcDate:                r.text("Calc_date"),
		MaxIndividualPerAthlete: r.int("indmax_perath"),
		MaxRelayPerAthlete:      r.int("relmax_perath"),
		MaxEntriesTotal:         r.int("entrymax_total"),
		Class:                   r.int("Meet_class"),
		Course:                  r.int("Meet_course"),
	}
}

func parseEvent(r record) EventRow {
	e := EventRow{
		No:        r.int("Event_no"),
		Rounds:    r.int("Event_rounds"),
		IndRel:    r.text("Ind_rel"),
		Gender:    r.text("Event_gender"),
		RelayLegs: r.int("Num_RelayLegs"),
		Stroke:    r.text("Event_stroke"),
		Distance:  r.int("Event_dist"),
	}
	e.Ptr = e.No
	if r.has("Event_ptr") {
		e.Ptr = r.int("Event_ptr")
	}
	return e
}

func parseTeam(r record) TeamRow {
	return TeamRow{
		No:   r.int("Team_no"),
		Name: r.text("Team_name"),
		Abbr: r.text("Team_abbr"),
	}
}

func parseAthlete(r record) AthleteRow {
	a := AthleteRow{
		CompNo:    r.int("Comp_no"),
		LastName:  r.text("Last_name"),
		FirstName: r.text("First_name"),
		Initial:   r.text("Initial"),
		PrefName:  r.text("Pref_name"),
		Sex:       r.text("Ath_Sex"),
		BirthDate: r.text("Birth_date"),
		Age:       r.int("Ath_age"),
		RegNo:     strings.TrimSpace(r.text("Reg_no")),
		TeamNo:    r.int("Team_no"),
	}
	a.No = a.CompNo
	if r.has("Ath_no") {
		a.No = r.int("Ath_no")
	}
	return a
}

func parseEntry(r record) EntryRow {
	return EntryRow{
		AthNo:      r.int("Ath_no"),
		EventPtr:   r.int("Event_ptr"),
		ConvSeed:   r.float("ConvSeed_time"),
		ActualSeed: r.float("ActualSeed_time"),
		Scratched:  r.bool("Scr_stat"),
		FinTime:    r.float("Fin_Time"),
		FinPad:     r.float("Fin_pad"),
		FinBack1:   r.float("Fin_back1"),
		FinBack2:   r.float("Fin_back2"),
		FinBack3:   r.float("Fin_back3"),
	}
}

func parseRelay(r record) RelayRow {
	return RelayRow{
		TeamNo:    r.int("Team_no"),
		EventPtr:  r.int("Event_ptr"),
		RelayNo:   r.int("Relay_no"),
		ConvSeed:  r.float("ConvSeed_time"),
		Letter:    strings.TrimSpace(r.text("Team_ltr")),
		Scratched: r.bool("Scr_stat"),
	}
}

func parseRelayName(r record) RelayNameRow {
	return RelayNameRow{
		RelayNo: r.int("Relay_no"),
		AthNo:   r.int("Ath_no"),
		PosNo:   r.int("Pos_no"),
	}
}
