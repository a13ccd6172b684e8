package legacy

import (
	"context"
	"fmt"
	"sync"

	"meet-importer/core/errors"
	"meet-importer/core/reconcile"

	"golang.org/x/sync/errgroup"
)

// Store holds the parsed legacy tables of one database. It is read-only once
// Load returns and may be shared between goroutines.
type Store struct {
	Meet       MeetRow
	Events     []EventRow
	Teams      []TeamRow
	Athletes   []AthleteRow
	Entries    []EntryRow
	Relays     []RelayRow
	RelayNames []RelayNameRow

	// Raw holds the exported bytes of every table, for archiving.
	Raw map[string][]byte

	events   *reconcile.Index[int, EventRow]
	teams    *reconcile.Index[int, TeamRow]
	athletes *reconcile.Index[int, AthleteRow]
	rosters  map[int][]RelayNameRow
}

// Load exports every table through exporter and builds the store.
// Tables are exported concurrently.
func Load(ctx context.Context, exporter Exporter) (*Store, error) {
	var mu sync.Mutex
	raw := make(map[string][]byte, len(Tables))

	g, gctx := errgroup.WithContext(ctx)
	for _, table := range Tables {
		g.Go(func() error {
			data, err := exporter.Export(gctx, table)
			if err != nil {
				return fmt.Errorf("failed to export table %s: %w", table, err)
			}
			mu.Lock()
			raw[table] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Parse(raw)
}

// Parse builds a store from exported table bytes.
func Parse(raw map[string][]byte) (*Store, error) {
	s := &Store{Raw: raw}

	meets, err := decodeLines(TableMeet, raw[TableMeet])
	if err != nil {
		return nil, err
	}
	if len(meets) == 0 {
		return nil, fmt.Errorf("table %s is empty", TableMeet)
	}
	s.Meet = parseMeet(meets[0])

	if s.Events, err = decodeTable(raw, TableEvent, parseEvent); err != nil {
		return nil, err
	}
	if s.Teams, err = decodeTable(raw, TableTeam, parseTeam); err != nil {
		return nil, err
	}
	if s.Athletes, err = decodeTable(raw, TableAthlete, parseAthlete); err != nil {
		return nil, err
	}
	if s.Entries, err = decodeTable(raw, TableEntry, parseEntry); err != nil {
		return nil, err
	}
	if s.Relays, err = decodeTable(raw, TableRelay, parseRelay); err != nil {
		return nil, err
	}
	if s.RelayNames, err = decodeTable(raw, TableRelayNames, parseRelayName); err != nil {
		return nil, err
	}

	s.events = reconcile.NewIndex(s.Events, func(e EventRow) (int, bool) { return e.Ptr, true })
	s.teams = reconcile.NewIndex(s.Teams, func(t TeamRow) (int, bool) { return t.No, true })
	s.athletes = reconcile.NewIndex(s.Athletes, func(a AthleteRow) (int, bool) { return a.No, true })

	s.rosters = make(map[int][]RelayNameRow)
	for _, leg := range s.RelayNames {
		s.rosters[leg.RelayNo] = append(s.rosters[leg.RelayNo], leg)
	}

	return s, nil
}

func decodeTable[T any](raw map[string][]byte, table string, parse func(record) T) ([]T, error) {
	records, err := decodeLines(table, raw[table])
	if err != nil {
		return nil, err
	}
	rows := make([]T, 0, len(records))
	for _, r := range records {
		rows = append(rows, parse(r))
	}
	return rows, nil
}

// Event returns the event an entry or relay points to.
func (s *Store) Event(ptr int) (EventRow, error) {
	if e, ok := s.events.Get(ptr); ok {
		return e, nil
	}
	return EventRow{}, errors.NewLegacyLookup("event", ptr)
}

// Team returns the team with the given number.
func (s *Store) Team(no int) (TeamRow, error) {
	if t, ok := s.teams.Get(no); ok {
		return t, nil
	}
	return TeamRow{}, errors.NewLegacyLookup("team", no)
}

// Athlete returns the athlete with the given number.
func (s *Store) Athlete(no int) (AthleteRow, error) {
	if a, ok := s.athletes.Get(no); ok {
		return a, nil
	}
	return AthleteRow{}, errors.NewLegacyLookup("athlete", no)
}

// Roster returns the legs of a relay team in source order.
func (s *Store) Roster(relayNo int) []RelayNameRow {
	return s.rosters[relayNo]
}

// Duplicates reports keys that appear more than once in the event, team and athlete tables.
func (s *Store) Duplicates() []error {
	var errs []error
	for _, k := range s.events.Duplicates() {
		errs = append(errs, fmt.Errorf("duplicate legacy event %d", k))
	}
	for _, k := range s.teams.Duplicates() {
		errs = append(errs, fmt.Errorf("duplicate legacy team %d", k))
	}
	for _, k := range s.athletes.Duplicates() {
		errs = append(errs, fmt.Errorf("duplicate legacy athlete %d", k))
	}
	return errs
}
