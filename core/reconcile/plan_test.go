package reconcile

import (
	"context"
	"fmt"
	"testing"

	"meet-importer/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockMutator records single applies.
type mockMutator struct {
	applied []string
	reject  map[string]bool
}

func (m *mockMutator) Apply(_ context.Context, action Action) error {
	if m.reject[action.Key] {
		return fmt.Errorf("rejected %s", action.Key)
	}
	m.applied = append(m.applied, action.Key)
	return nil
}

// mockBatchMutator records batch applies and can fail a whole batch type.
type mockBatchMutator struct {
	mockMutator
	batches   map[ActionType][]string
	calls     []ActionType
	failBatch ActionType
}

func (m *mockBatchMutator) ApplyBatch(_ context.Context, t ActionType, actions []Action) error {
	if t == m.failBatch {
		return fmt.Errorf("batch %s rejected", t)
	}
	if m.batches == nil {
		m.batches = make(map[ActionType][]string)
	}
	m.calls = append(m.calls, t)
	for _, a := range actions {
		m.batches[t] = append(m.batches[t], a.Key)
	}
	return nil
}

func samplePlan() *Plan {
	plan := NewPlan("teams")
	plan.Add(Action{Type: ActionCreateAthletes, Key: "athlete M2"})
	plan.Add(Action{Type: ActionCreateTeams, Key: "team ALP"})
	plan.Add(Action{Type: ActionCreateAthletes, Key: "athlete M3"})
	return plan
}

func TestApplyPlan_DryRunAndUnconfirmed(t *testing.T) {
	m := &mockMutator{}

	executed, err := ApplyPlan(context.Background(), samplePlan(), m, Options{DryRun: true, Confirmed: true})
	assert.NoError(t, err)
	assert.Equal(t, 0, executed)

	executed, err = ApplyPlan(context.Background(), samplePlan(), m, Options{})
	assert.NoError(t, err)
	assert.Equal(t, 0, executed)
	assert.Empty(t, m.applied)
}

func TestApplyPlan_UsesBatches(t *testing.T) {
	m := &mockBatchMutator{}

	executed, err := ApplyPlan(context.Background(), samplePlan(), m, Options{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 3, executed)

	// Teams are submitted before athletes regardless of plan order
	assert.Equal(t, []ActionType{ActionCreateTeams, ActionCreateAthletes}, m.calls)
	assert.Equal(t, []string{"athlete M2", "athlete M3"}, m.batches[ActionCreateAthletes])
	assert.Empty(t, m.applied, "Should NOT use individual applies")
}

func TestApplyPlan_FallbackToSequential(t *testing.T) {
	m := &mockMutator{}

	executed, err := ApplyPlan(context.Background(), samplePlan(), m, Options{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 3, executed)
	assert.Equal(t, []string{"team ALP", "athlete M2", "athlete M3"}, m.applied)
}

func TestApplyPlan_StopsOnFirstFailure(t *testing.T) {
	m := &mockMutator{reject: map[string]bool{"athlete M2": true}}

	executed, err := ApplyPlan(context.Background(), samplePlan(), m, Options{Confirmed: true})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "athlete M2")
	assert.Equal(t, 1, executed)
	assert.Equal(t, []string{"team ALP"}, m.applied)
}

func TestApplyPlan_BatchFailureWithoutIsolation(t *testing.T) {
	m := &mockBatchMutator{failBatch: ActionCreateAthletes}

	executed, err := ApplyPlan(context.Background(), samplePlan(), m, Options{Confirmed: true})
	assert.Error(t, err)
	assert.Equal(t, 1, executed)
	assert.Empty(t, m.applied)
}

func TestApplyPlan_IsolatesRejectedBatch(t *testing.T) {
	m := &mockBatchMutator{
		mockMutator: mockMutator{reject: map[string]bool{"athlete M3": true}},
		failBatch:   ActionCreateAthletes,
	}

	executed, err := ApplyPlan(context.Background(), samplePlan(), m, Options{Confirmed: true, Isolate: true})
	require.Error(t, err)
	assert.Equal(t, 2, executed)
	assert.Equal(t, []string{"athlete M2"}, m.applied)

	var applyErr *ApplyError
	require.True(t, errors.As(err, &applyErr))
	require.Len(t, applyErr.Failed, 1)
	assert.Equal(t, "athlete M3", applyErr.Failed[0].Action.Key)
	assert.Contains(t, err.Error(), "rejected athlete M3")
}

// pruningMutator reports some actions of a rejected batch as already stored.
type pruningMutator struct {
	mockBatchMutator
	stored map[string]bool
	err    error
}

func (m *pruningMutator) Pending(_ context.Context, _ ActionType, actions []Action) ([]Action, error) {
	if m.err != nil {
		return nil, m.err
	}
	var pending []Action
	for _, a := range actions {
		if !m.stored[a.Key] {
			pending = append(pending, a)
		}
	}
	return pending, nil
}

func TestApplyPlan_IsolationSkipsStoredActions(t *testing.T) {
	m := &pruningMutator{
		mockBatchMutator: mockBatchMutator{failBatch: ActionCreateAthletes},
		stored:           map[string]bool{"athlete M2": true},
	}

	executed, err := ApplyPlan(context.Background(), samplePlan(), m, Options{Confirmed: true, Isolate: true})
	require.NoError(t, err)
	assert.Equal(t, 3, executed)
	assert.Equal(t, []string{"athlete M3"}, m.applied)
}

func TestApplyPlan_IsolationReReadFailure(t *testing.T) {
	m := &pruningMutator{
		mockBatchMutator: mockBatchMutator{failBatch: ActionCreateAthletes},
		err:              fmt.Errorf("remote unavailable"),
	}

	executed, err := ApplyPlan(context.Background(), samplePlan(), m, Options{Confirmed: true, Isolate: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "re-read create_athletes")
	assert.Equal(t, 1, executed)
	assert.Empty(t, m.applied)
}

func TestApplyPlan_NilPlan(t *testing.T) {
	executed, err := ApplyPlan(context.Background(), nil, &mockMutator{}, Options{Confirmed: true})
	assert.NoError(t, err)
	assert.Equal(t, 0, executed)
}

func TestGroupActions_UnknownTypesLast(t *testing.T) {
	order, groups := groupActions([]Action{
		{Type: "custom", Key: "a"},
		{Type: ActionCreateRelays, Key: "b"},
		{Type: ActionCreateMeet, Key: "c"},
	})

	assert.Equal(t, []ActionType{ActionCreateMeet, ActionCreateRelays, "custom"}, order)
	assert.Len(t, groups["custom"], 1)
}

func TestPlan_Report(t *testing.T) {
	plan := NewPlan("entries")
	plan.Report(errors.NewLegacyLookup("event", 12))
	plan.Report(&errors.ConflictError{TeamName: "Alpha", RemoteAbbr: "AL", LegacyAbbr: "ALP"})
	plan.Report(assert.AnError)

	assert.Equal(t, 1, plan.Summary.Lookups)
	assert.Equal(t, 1, plan.Summary.Conflicts)
	require.Len(t, plan.Issues, 3)
	assert.Equal(t, IssueLookup, plan.Issues[0].Kind)
	assert.Equal(t, IssueConflict, plan.Issues[1].Kind)
	assert.Equal(t, IssueFailure, plan.Issues[2].Kind)
	assert.Equal(t, "entries", plan.Issues[0].Phase)
	assert.Equal(t, "legacy event 12 not found", plan.Issues[0].Message)
}

func TestPayloads(t *testing.T) {
	plan := NewPlan("teams")
	plan.Add(Action{Type: ActionCreateTeams, Key: "a", Payload: "alpha"})
	plan.Add(Action{Type: ActionCreateAthletes, Key: "b", Payload: "bravo"})
	plan.Add(Action{Type: ActionCreateTeams, Key: "c", Payload: 3})

	assert.Equal(t, []string{"alpha"}, Payloads[string](plan, ActionCreateTeams))
	assert.Equal(t, 3, plan.Summary.Planned)
}
