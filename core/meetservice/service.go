package meetservice

import "context"

// Service is the capability surface of the remote meet-management service.
type Service interface {
	// FindMeet returns the meet with the given name, or nil when it does not exist.
	FindMeet(ctx context.Context, name string) (*Meet, error)
	// CreateMeet creates the meet with its events and returns the stored meet.
	CreateMeet(ctx context.Context, meet Meet) (*Meet, error)
	// ListTeams returns every team with its members.
	ListTeams(ctx context.Context) ([]Team, error)
	// CreateTeams creates teams together with their members.
	CreateTeams(ctx context.Context, teams []Team) error
	// CreateAthletes adds athletes to existing teams.
	CreateAthletes(ctx context.Context, athletes []Athlete) error
	// ListEntries returns the individual entries of a meet.
	ListEntries(ctx context.Context, meetID int) ([]Entry, error)
	// CreateEntries creates individual entries.
	CreateEntries(ctx context.Context, meetID int, entries []Entry) error
	// UpsertResults stores results for existing entries.
	UpsertResults(ctx context.Context, meetID int, results []Result) error
	// ListRelays returns the relay teams of a meet. Services without the
	// endpoint answer with an error matching errors.ErrUnsupported.
	ListRelays(ctx context.Context, meetID int) ([]RelayTeam, error)
	// CreateRelays creates relay teams with their members.
	CreateRelays(ctx context.Context, meetID int, relays []RelayTeam) error
}
