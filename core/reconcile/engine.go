package reconcile

// Diff matches desired entries against existing entities by key and plans the
// creates, updates and deletes that reconcile them.
//
// desiredKey reports the key a desired entry claims, if any. An entry whose key
// is unknown, or already claimed by an earlier entry, is planned as a create;
// existing entities left unclaimed are planned as deletes.
func Diff[K comparable, E any, D any](
	existing []E,
	existingKey func(E) K,
	desired []D,
	desiredKey func(D) (K, bool),
) *Plan[K, E, D] {
	index := make(map[K]E, len(existing))
	for _, e := range existing {
		index[existingKey(e)] = e
	}

	claimed := make(map[K]struct{}, len(desired))
	upserts := make([]Action[K, E, D], 0, len(desired))
	summary := PlanSummary{}

	for slot, d := range desired {
		key, hasKey := desiredKey(d)
		if hasKey {
			if e, ok := index[key]; ok {
				if _, dup := claimed[key]; !dup {
					claimed[key] = struct{}{}
					upserts = append(upserts, Action[K, E, D]{Type: ActionUpdate, Key: key, Slot: slot, Existing: e, Desired: d})
					summary.Updates++
					continue
				}
			}
		}
		upserts = append(upserts, Action[K, E, D]{Type: ActionCreate, Slot: slot, Desired: d})
		summary.Creates++
	}

	actions := make([]Action[K, E, D], 0, len(existing)+len(upserts))
	for _, e := range existing {
		key := existingKey(e)
		if _, ok := claimed[key]; ok {
			continue
		}
		actions = append(actions, Action[K, E, D]{Type: ActionDelete, Key: key, Slot: -1, Existing: e})
		summary.Deletes++
	}
	actions = append(actions, upserts...)

	return &Plan[K, E, D]{Actions: actions, Summary: summary}
}
