package reconcile

import (
	"context"
	"fmt"
	"strings"
)

// Failure is an action the remote side rejected.
type Failure struct {
	Action Action
	Err    error
}

// ApplyError reports the actions rejected while applying a plan in isolation mode.
type ApplyError struct {
	Failed []Failure
}

// Error implements the error interface
func (e *ApplyError) Error() string {
	keys := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		keys = append(keys, f.Action.Key)
	}
	return fmt.Sprintf("%d actions rejected (%s): %v", len(e.Failed), strings.Join(keys, ", "), e.Failed[0].Err)
}

// Unwrap returns the underlying errors of every failure.
func (e *ApplyError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, f := range e.Failed {
		errs = append(errs, f.Err)
	}
	return errs
}

// ApplyPlan executes the actions in a plan.
// Returns the number of actions executed and any error encountered.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, plan *Plan, mutator Mutator, opts Options) (executed int, err error) {
	// Safety check: do not execute if not confirmed or dry-run
	if plan == nil || !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	order, groups := groupActions(plan.Actions)
	batcher, canBatch := mutator.(BatchMutator)

	var failures []Failure
	for _, actionType := range order {
		actions := groups[actionType]

		if canBatch {
			err := batcher.ApplyBatch(ctx, actionType, actions)
			if err == nil {
				executed += len(actions)
				continue
			}
			if !opts.Isolate {
				return executed, fmt.Errorf("failed to apply %s batch: %w", actionType, err)
			}
			if pruner, ok := mutator.(Pruner); ok {
				pending, err := pruner.Pending(ctx, actionType, actions)
				if err != nil {
					return executed, fmt.Errorf("failed to re-read %s after rejected batch: %w", actionType, err)
				}
				executed += len(actions) - len(pending)
				actions = pending
			}
		}

		// One at a time, either because batching is unavailable or to isolate a rejected batch
		for _, action := range actions {
			if err := ctx.Err(); err != nil {
				return executed, err
			}
			if err := mutator.Apply(ctx, action); err != nil {
				if !opts.Isolate {
					return executed, fmt.Errorf("failed to apply %s %s: %w", actionType, action.Key, err)
				}
				failures = append(failures, Failure{Action: action, Err: err})
				continue
			}
			executed++
		}
	}

	if len(failures) > 0 {
		return executed, &ApplyError{Failed: failures}
	}
	return executed, nil
}

// groupActions groups actions by type, keeping source order within a group.
// Known types come in submission order; unknown ones follow in first-seen order.
func groupActions(actions []Action) ([]ActionType, map[ActionType][]Action) {
	groups := make(map[ActionType][]Action)
	for _, action := range actions {
		groups[action.Type] = append(groups[action.Type], action)
	}

	order := make([]ActionType, 0, len(groups))
	known := make(map[ActionType]struct{}, len(actionOrder))
	for _, t := range actionOrder {
		known[t] = struct{}{}
		if _, ok := groups[t]; ok {
			order = append(order, t)
		}
	}
	for _, action := range actions {
		if _, ok := known[action.Type]; ok {
			continue
		}
		known[action.Type] = struct{}{}
		order = append(order, action.Type)
	}
	return order, groups
}
