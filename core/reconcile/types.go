package reconcile

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionCreate inserts a desired entry that matches no existing entity.
	ActionCreate ActionType = "create"
	// ActionUpdate rewrites an existing entity from its matching desired entry.
	ActionUpdate ActionType = "update"
	// ActionDelete removes an existing entity no desired entry claims.
	ActionDelete ActionType = "delete"
)

// Action represents a planned mutation operation.
type Action[K comparable, E any, D any] struct {
	// Type specifies the action to perform.
	Type ActionType

	// Key is the entity identifier. It is the zero value for creates.
	Key K

	// Slot is the position of the desired entry in the submitted order,
	// or -1 for deletes.
	Slot int

	// Existing is the persisted entity for updates and deletes.
	Existing E

	// Desired is the submitted entry for creates and updates.
	Desired D
}

// Plan contains the actions that turn the existing set into the desired one.
//
// Deletes come first, in existing order; creates and updates follow in
// submitted order, so Slot increases monotonically across them.
type Plan[K comparable, E any, D any] struct {
	Actions []Action[K, E, D]
	Summary PlanSummary
}

// PlanSummary provides aggregate counts for a plan.
type PlanSummary struct {
	Creates int `json:"creates"`
	Updates int `json:"updates"`
	Deletes int `json:"deletes"`
}

// Of returns the actions of the given type, preserving plan order.
func (p *Plan[K, E, D]) Of(t ActionType) []Action[K, E, D] {
	var out []Action[K, E, D]
	for _, a := range p.Actions {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}
