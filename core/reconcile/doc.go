// Package reconcile diffs a desired collection against persisted state by identity.
//
// Reconciliation happens in two steps, mirroring a dry run and an apply:
//
//  1. Diff indexes the existing entities by key and walks the desired entries in
//     submitted order. An entry claiming a known key becomes an update; anything
//     else becomes a create. Existing entities nobody claimed become deletes.
//  2. ApplyPlan hands each action to a Mutator, deletes first.
//
// Matching by key rather than position keeps rows (and whatever hangs off them)
// stable across edits. A key claimed twice only updates once; the second entry
// is created fresh so it cannot overwrite the first.
//
// # Usage
//
//	plan := reconcile.Diff(existing, func(c *Color) uuid.UUID { return c.ID },
//	    entries, func(e ColorEntry) (uuid.UUID, bool) { return e.Identity() })
//	n, err := reconcile.ApplyPlan(ctx, plan, mutator)
package reconcile
