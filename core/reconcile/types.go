package reconcile

import (
	"meet-importer/core/errors"
)

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionCreateMeet creates the meet with its events.
	ActionCreateMeet ActionType = "create_meet"
	// ActionCreateTeams creates a team together with all of its members.
	ActionCreateTeams ActionType = "create_teams"
	// ActionCreateAthletes adds an athlete to a team that already exists remotely.
	ActionCreateAthletes ActionType = "create_athletes"
	// ActionCreateEntries creates an individual entry.
	ActionCreateEntries ActionType = "create_entries"
	// ActionUpsertResults stores the results of an entry.
	ActionUpsertResults ActionType = "upsert_results"
	// ActionCreateRelays creates a relay team with its members.
	ActionCreateRelays ActionType = "create_relays"
)

// actionOrder is the order in which ApplyPlan submits action groups.
// Teams go before athletes so that athletes can join teams created in the same plan.
var actionOrder = []ActionType{
	ActionCreateMeet,
	ActionCreateTeams,
	ActionCreateAthletes,
	ActionCreateEntries,
	ActionUpsertResults,
	ActionCreateRelays,
}

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type" yaml:"type"`

	// Key is the natural identity of the record, e.g. "entry 3/1042".
	Key string `json:"key" yaml:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason" yaml:"reason"`

	// Payload is the request body for the record.
	Payload any `json:"-" yaml:"-"`
}

// IssueKind classifies a reportable problem found while planning.
type IssueKind string

const (
	// IssueLookup is a reference that could not be resolved.
	IssueLookup IssueKind = "lookup"
	// IssueConflict is a team matched by name with a different abbreviation.
	IssueConflict IssueKind = "conflict"
	// IssueDuplicate is a key that appeared more than once in a source.
	IssueDuplicate IssueKind = "duplicate"
	// IssueFailure is a record the remote service rejected.
	IssueFailure IssueKind = "failure"
	// IssueUnmapped is a legacy code with no canonical counterpart.
	IssueUnmapped IssueKind = "unmapped"
	// IssueInvalid is a record that breaks a structural rule, such as too many relay legs.
	IssueInvalid IssueKind = "invalid"
)

// Issue is a problem reported to the operator. Issues never stop planning.
type Issue struct {
	Phase   string    `json:"phase" yaml:"phase"`
	Kind    IssueKind `json:"kind" yaml:"kind"`
	Message string    `json:"message" yaml:"message"`
	Err     error     `json:"-" yaml:"-"`
}

// NewIssue classifies err and wraps it as an issue of the given phase.
func NewIssue(phase string, err error) Issue {
	kind := IssueFailure
	switch {
	case errors.Is(err, errors.ErrLookup):
		kind = IssueLookup
	case errors.Is(err, errors.ErrConflict):
		kind = IssueConflict
	}
	return Issue{Phase: phase, Kind: kind, Message: err.Error(), Err: err}
}

// Plan is the outcome of comparing legacy records with remote state for one phase.
type Plan struct {
	// Phase names the import phase that produced the plan.
	Phase string `json:"phase" yaml:"phase"`

	// Actions contains planned mutation operations.
	Actions []Action `json:"actions" yaml:"actions"`

	// Issues contains problems found while planning.
	Issues []Issue `json:"issues" yaml:"issues"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary" yaml:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Considered is the number of legacy records examined.
	Considered int `json:"considered" yaml:"considered"`

	// Planned counts planned actions.
	Planned int `json:"planned" yaml:"planned"`

	// Skipped counts records already present remotely.
	Skipped int `json:"skipped" yaml:"skipped"`

	// Lookups counts unresolved references.
	Lookups int `json:"lookups" yaml:"lookups"`

	// Conflicts counts name-only team matches.
	Conflicts int `json:"conflicts" yaml:"conflicts"`
}

// NewPlan creates an empty plan for a phase.
func NewPlan(phase string) *Plan {
	return &Plan{Phase: phase}
}

// Add appends an action and counts it.
func (p *Plan) Add(action Action) {
	p.Actions = append(p.Actions, action)
	p.Summary.Planned++
}

// Skip counts a record that needs no action.
func (p *Plan) Skip() {
	p.Summary.Skipped++
}

// Report records an issue and counts it.
func (p *Plan) Report(err error) {
	issue := NewIssue(p.Phase, err)
	switch issue.Kind {
	case IssueLookup:
		p.Summary.Lookups++
	case IssueConflict:
		p.Summary.Conflicts++
	}
	p.Issues = append(p.Issues, issue)
}

// ReportIssue records an already built issue.
func (p *Plan) ReportIssue(issue Issue) {
	if issue.Phase == "" {
		issue.Phase = p.Phase
	}
	p.Issues = append(p.Issues, issue)
}

// Payloads returns the payloads of all actions of type t, asserted to T.
func Payloads[T any](plan *Plan, t ActionType) []T {
	var out []T
	for _, a := range plan.Actions {
		if a.Type != t {
			continue
		}
		if v, ok := a.Payload.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Options controls whether ApplyPlan writes anything.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Confirmed indicates the operator approved the plan.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool

	// Isolate retries a rejected batch one action at a time so that a single
	// bad record does not fail the whole group.
	Isolate bool
}
