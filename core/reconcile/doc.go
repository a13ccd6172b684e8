// Package reconcile provides the plan and apply machinery shared by every
// import phase.
//
// A phase compares legacy records with a snapshot of remote state and
// produces a Plan: the actions needed to bring the remote side up to date,
// the issues found on the way, and a summary. Nothing is written while
// planning. ApplyPlan then executes the plan through a Mutator.
//
// # Architecture
//
// 1. Plan: actions, issues and counts of one phase. Actions carry their request
// payload; Payloads extracts them by type.
//
// 2. Mutator: phase-specific writer. Mutators that also implement BatchMutator
// get one call per action type; others are called once per action. With
// Options.Isolate a rejected batch is retried action by action and the rejected
// actions are returned as an *ApplyError.
//
// 3. Index: read-only lookup maps built once per phase from remote or legacy
// snapshots, with duplicate detection.
//
// 4. Cache: TTL-based caching with stampede protection, used to keep loaded
// legacy sources between API requests.
//
// # Usage Example
//
//	plan := reconcile.NewPlan("entries")
//	for _, e := range candidates {
//	    if existing.Has(e.Key()) {
//	        plan.Skip()
//	        continue
//	    }
//	    plan.Add(reconcile.Action{Type: reconcile.ActionCreateEntries, Key: key, Payload: e})
//	}
//	executed, err := reconcile.ApplyPlan(ctx, plan, mutator, reconcile.Options{Confirmed: true})
package reconcile
