package importer

import (
	"context"
	"fmt"

	"meet-importer/core/errors"
	"meet-importer/core/meetservice"
	"meet-importer/core/reconcile"
)

// remoteMutator applies plan actions to a meet service. Each action group
// becomes a single batch request.
type remoteMutator struct {
	remote meetservice.Service
	meetID int

	// created is set once a create_meet action succeeds.
	created *meetservice.Meet
}

// Apply implements reconcile.Mutator.
func (m *remoteMutator) Apply(ctx context.Context, action reconcile.Action) error {
	return m.ApplyBatch(ctx, action.Type, []reconcile.Action{action})
}

// ApplyBatch implements reconcile.BatchMutator.
func (m *remoteMutator) ApplyBatch(ctx context.Context, actionType reconcile.ActionType, actions []reconcile.Action) error {
	switch actionType {
	case reconcile.ActionCreateMeet:
		for _, meet := range payloads[meetservice.Meet](actions) {
			created, err := m.remote.CreateMeet(ctx, meet)
			if err != nil {
				return err
			}
			m.created = created
			m.meetID = created.MeetID
		}
		return nil
	case reconcile.ActionCreateTeams:
		return m.remote.CreateTeams(ctx, payloads[meetservice.Team](actions))
	case reconcile.ActionCreateAthletes:
		return m.remote.CreateAthletes(ctx, payloads[meetservice.Athlete](actions))
	case reconcile.ActionCreateEntries:
		return m.remote.CreateEntries(ctx, m.meetID, payloads[meetservice.Entry](actions))
	case reconcile.ActionUpsertResults:
		return m.remote.UpsertResults(ctx, m.meetID, payloads[meetservice.Result](actions))
	case reconcile.ActionCreateRelays:
		return m.remote.CreateRelays(ctx, m.meetID, payloads[meetservice.RelayTeam](actions))
	default:
		return fmt.Errorf("unknown action type %s", actionType)
	}
}

// Pending implements reconcile.Pruner. Entries and relays already listed by the
// remote side are dropped; other action types are returned unchanged.
func (m *remoteMutator) Pending(ctx context.Context, actionType reconcile.ActionType, actions []reconcile.Action) ([]reconcile.Action, error) {
	switch actionType {
	case reconcile.ActionCreateEntries:
		listed, err := m.remote.ListEntries(ctx, m.meetID)
		if err != nil {
			return nil, err
		}
		return unlisted(actions, listed, meetservice.Entry.Key), nil
	case reconcile.ActionCreateRelays:
		listed, err := m.remote.ListRelays(ctx, m.meetID)
		if errors.Is(err, errors.ErrUnsupported) {
			return actions, nil
		}
		if err != nil {
			return nil, err
		}
		return unlisted(actions, listed, meetservice.RelayTeam.Key), nil
	default:
		return actions, nil
	}
}

func unlisted[T any, K comparable](actions []reconcile.Action, listed []T, key func(T) K) []reconcile.Action {
	present := reconcile.NewIndex(listed, func(v T) (K, bool) { return key(v), true })
	pending := make([]reconcile.Action, 0, len(actions))
	for _, a := range actions {
		if v, ok := a.Payload.(T); ok {
			if _, stored := present.Get(key(v)); stored {
				continue
			}
		}
		pending = append(pending, a)
	}
	return pending
}

func payloads[T any](actions []reconcile.Action) []T {
	out := make([]T, 0, len(actions))
	for _, a := range actions {
		if v, ok := a.Payload.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
