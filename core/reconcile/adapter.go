package reconcile

import "context"

// Mutator applies single actions of a plan to the remote side.
type Mutator interface {
	// Apply executes one action.
	Apply(ctx context.Context, action Action) error
}

// BatchMutator applies a whole group of same-typed actions in one call.
// ApplyPlan prefers it over Mutator when available.
type BatchMutator interface {
	Mutator
	ApplyBatch(ctx context.Context, actionType ActionType, actions []Action) error
}

// Pruner is implemented by mutators that can re-read the remote side. When a
// batch is rejected in isolation mode, ApplyPlan asks it which actions are
// still pending so records the remote side kept are not applied twice.
type Pruner interface {
	Pending(ctx context.Context, actionType ActionType, actions []Action) ([]Action, error)
}

// MutatorFunc adapts a function to the Mutator interface.
type MutatorFunc func(ctx context.Context, action Action) error

// Apply implements Mutator.
func (f MutatorFunc) Apply(ctx context.Context, action Action) error {
	return f(ctx, action)
}
