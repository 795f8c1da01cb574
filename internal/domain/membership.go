package domain

import (
	"errors"
)

var (
	ErrEmptySelection    = errors.New("select at least one subscription")
	ErrDuplicatePlanType = errors.New("a client can hold at most one personal and one group subscription")
)

// Catalog is a snapshot of the subscription plans, keyed by plan ID.
type Catalog map[string]SubscriptionPlan

// NewCatalog indexes plans by ID. Plans without an ID are skipped.
func NewCatalog(plans []SubscriptionPlan) Catalog {
	catalog := make(Catalog, len(plans))
	for _, p := range plans {
		if p.ID == "" {
			continue
		}
		catalog[p.ID] = p
	}
	return catalog
}

// Lookup returns the plan with the given ID.
func (c Catalog) Lookup(id string) (SubscriptionPlan, bool) {
	p, ok := c[id]
	return p, ok
}

// Resolve returns the plans behind ids in selection order.
// IDs that are no longer in the catalog are dropped.
func (c Catalog) Resolve(ids []string) []SubscriptionPlan {
	plans := make([]SubscriptionPlan, 0, len(ids))
	for _, id := range ids {
		if p, ok := c[id]; ok {
			plans = append(plans, p)
		}
	}
	return plans
}

// Toggle applies the membership assignment rule and returns the new selection.
//
// A selected plan is removed. An unselected plan replaces whatever plan of the
// same type is currently selected. Unknown plan IDs leave the selection as is.
// The input slice is never modified.
func Toggle(selection []string, catalog Catalog, planID string) []string {
	next := make([]string, 0, len(selection)+1)

	plan, ok := catalog.Lookup(planID)
	if !ok {
		return append(next, selection...)
	}

	if contains(selection, planID) {
		for _, id := range selection {
			if id != planID {
				next = append(next, id)
			}
		}
		return next
	}

	for _, id := range selection {
		if held, known := catalog.Lookup(id); known && held.Type == plan.Type {
			continue
		}
		next = append(next, id)
	}
	return append(next, planID)
}

// ValidateSelection is the save-time check for a client's plans.
// Dangling IDs are tolerated and count toward neither type.
func ValidateSelection(selection []string, catalog Catalog) error {
	if len(selection) == 0 {
		return ErrEmptySelection
	}
	seen := make(map[PlanType]bool, 2)
	for _, id := range selection {
		plan, ok := catalog.Lookup(id)
		if !ok {
			continue
		}
		if seen[plan.Type] {
			return ErrDuplicatePlanType
		}
		seen[plan.Type] = true
	}
	return nil
}

// Dedupe drops repeated IDs, keeping first occurrences in order.
func Dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func contains(ids []string, target string) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
