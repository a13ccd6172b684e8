package meetservice

import (
	"context"
	"fmt"
	"sync"

	"meet-importer/core/errors"
)

// Memory is an in-memory Service. Created records get ids assigned the way
// the real service does, so later reads observe earlier writes.
type Memory struct {
	mu      sync.RWMutex
	nextID  int
	meets   []Meet
	teams   []Team
	entries map[int][]Entry
	relays  map[int][]RelayTeam
	results map[int][]Result

	// Fail, when set, is consulted before every operation; a non-nil return is
	// reported as the operation's error.
	Fail func(operation string) error
}

// NewMemory creates an empty in-memory service.
func NewMemory() *Memory {
	return &Memory{
		nextID:  1,
		entries: make(map[int][]Entry),
		relays:  make(map[int][]RelayTeam),
		results: make(map[int][]Result),
	}
}

// Mirror copies the remote state relevant to meetName into a new Memory.
// Plans computed against the mirror see the effect of earlier phases without
// writing to src.
func Mirror(ctx context.Context, src Service, meetName string) (*Memory, error) {
	m := NewMemory()

	meet, err := src.FindMeet(ctx, meetName)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror meet: %w", err)
	}
	teams, err := src.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror teams: %w", err)
	}
	m.teams = cloneTeams(teams)
	for _, t := range teams {
		m.observe(t.TeamID)
		for _, a := range t.Members {
			m.observe(a.AthleteID)
		}
	}

	if meet == nil {
		return m, nil
	}
	m.meets = append(m.meets, *meet)
	m.observe(meet.MeetID)

	entries, err := src.ListEntries(ctx, meet.MeetID)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror entries: %w", err)
	}
	m.entries[meet.MeetID] = append([]Entry(nil), entries...)
	for _, e := range entries {
		m.observe(e.EntryID)
	}

	relays, err := src.ListRelays(ctx, meet.MeetID)
	switch {
	case err == nil:
		m.relays[meet.MeetID] = append([]RelayTeam(nil), relays...)
		for _, r := range relays {
			m.observe(r.RelayID)
		}
	case errors.Is(err, errors.ErrUnsupported):
	default:
		return nil, fmt.Errorf("failed to mirror relays: %w", err)
	}

	return m, nil
}

// observe keeps generated ids clear of ids seen in mirrored data.
func (m *Memory) observe(id int) {
	if id >= m.nextID {
		m.nextID = id + 1
	}
}

func (m *Memory) id() int {
	id := m.nextID
	m.nextID++
	return id
}

func (m *Memory) fail(operation string) error {
	if m.Fail == nil {
		return nil
	}
	return m.Fail(operation)
}

// FindMeet implements Service.
func (m *Memory) FindMeet(_ context.Context, name string) (*Meet, error) {
	if err := m.fail("find meet"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, meet := range m.meets {
		if meet.Name == name {
			found := meet
			found.Events = append([]Event(nil), meet.Events...)
			return &found, nil
		}
	}
	return nil, nil
}

// CreateMeet implements Service.
func (m *Memory) CreateMeet(_ context.Context, meet Meet) (*Meet, error) {
	if err := m.fail("create meet"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	meet.MeetID = m.id()
	meet.Events = append([]Event(nil), meet.Events...)
	m.meets = append(m.meets, meet)
	return &meet, nil
}

// ListTeams implements Service.
func (m *Memory) ListTeams(_ context.Context) ([]Team, error) {
	if err := m.fail("list teams"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return cloneTeams(m.teams), nil
}

// CreateTeams implements Service.
func (m *Memory) CreateTeams(_ context.Context, teams []Team) error {
	if err := m.fail("create teams"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range teams {
		stored := Team{TeamID: m.id(), TeamName: t.TeamName, Abbreviation: t.Abbreviation}
		for _, a := range t.Members {
			a.AthleteID = m.id()
			a.TeamID = stored.TeamID
			stored.Members = append(stored.Members, a)
		}
		m.teams = append(m.teams, stored)
	}
	return nil
}

// CreateAthletes implements Service.
func (m *Memory) CreateAthletes(_ context.Context, athletes []Athlete) error {
	if err := m.fail("create athletes"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range athletes {
		idx := -1
		for i := range m.teams {
			if m.teams[i].TeamID == a.TeamID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return &errors.RemoteError{
				Operation:  "create athletes",
				Method:     "POST",
				Path:       "/athletes",
				StatusCode: 422,
				Body:       fmt.Sprintf("unknown team %d", a.TeamID),
			}
		}
		a.AthleteID = m.id()
		m.teams[idx].Members = append(m.teams[idx].Members, a)
	}
	return nil
}

// ListEntries implements Service.
func (m *Memory) ListEntries(_ context.Context, meetID int) ([]Entry, error) {
	if err := m.fail("list entries"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]Entry(nil), m.entries[meetID]...), nil
}

// CreateEntries implements Service.
func (m *Memory) CreateEntries(_ context.Context, meetID int, entries []Entry) error {
	if err := m.fail("create entries"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range entries {
		e.EntryID = m.id()
		e.MeetID = meetID
		m.entries[meetID] = append(m.entries[meetID], e)
	}
	return nil
}

// UpsertResults implements Service.
func (m *Memory) UpsertResults(_ context.Context, meetID int, results []Result) error {
	if err := m.fail("upsert results"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range results {
		replaced := false
		for i, existing := range m.results[meetID] {
			if existing.EntryID == r.EntryID {
				m.results[meetID][i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			m.results[meetID] = append(m.results[meetID], r)
		}
	}
	return nil
}

// ListRelays implements Service.
func (m *Memory) ListRelays(_ context.Context, meetID int) ([]RelayTeam, error) {
	if err := m.fail("list relays"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]RelayTeam(nil), m.relays[meetID]...), nil
}

// CreateRelays implements Service.
func (m *Memory) CreateRelays(_ context.Context, meetID int, relays []RelayTeam) error {
	if err := m.fail("create relays"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range relays {
		r.RelayID = m.id()
		r.MeetID = meetID
		r.Members = append([]RelayMember(nil), r.Members...)
		m.relays[meetID] = append(m.relays[meetID], r)
	}
	return nil
}

// Results returns the results stored for a meet.
func (m *Memory) Results(meetID int) []Result {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]Result(nil), m.results[meetID]...)
}

func cloneTeams(teams []Team) []Team {
	out := make([]Team, len(teams))
	for i, t := range teams {
		out[i] = t
		out[i].Members = append([]Athlete(nil), t.Members...)
	}
	return out
}
