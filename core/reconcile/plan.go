package reconcile

import (
	"context"
	"fmt"
)

// Mutator executes planned actions against a store.
type Mutator[K comparable, E any, D any] interface {
	Create(ctx context.Context, slot int, desired D) error
	Update(ctx context.Context, slot int, existing E, desired D) error
	Delete(ctx context.Context, existing E) error
}

// ApplyPlan executes the actions in plan order and stops at the first failure.
// Returns the number of actions executed.
func ApplyPlan[K comparable, E any, D any](ctx context.Context, plan *Plan[K, E, D], m Mutator[K, E, D]) (executed int, err error) {
	for _, a := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return executed, err
		}

		switch a.Type {
		case ActionDelete:
			err = m.Delete(ctx, a.Existing)
		case ActionUpdate:
			err = m.Update(ctx, a.Slot, a.Existing, a.Desired)
		case ActionCreate:
			err = m.Create(ctx, a.Slot, a.Desired)
		default:
			err = fmt.Errorf("unknown action type %q", a.Type)
		}
		if err != nil {
			return executed, fmt.Errorf("failed to %s %v: %w", a.Type, a.Key, err)
		}
		executed++
	}
	return executed, nil
}
