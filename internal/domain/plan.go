// internal/domain/plan.go
package domain

import (
	"github.com/shopspring/decimal"
)

// PlanType distinguishes one-on-one training from small group training.
type PlanType string

const (
	PlanTypePersonal PlanType = "personal"
	PlanTypeGroup    PlanType = "group"
)

// Valid reports whether t is one of the known plan types.
func (t PlanType) Valid() bool {
	return t == PlanTypePersonal || t == PlanTypeGroup
}

// SubscriptionPlan is a priced, typed offering in the studio catalog.
type SubscriptionPlan struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"` // per month
	Type             PlanType        `json:"type"`
	SessionsPerMonth int             `json:"sessionsPerMonth"`
	Features         []string        `json:"features"`
	Schedule         []string        `json:"schedule,omitempty"` // group plans only
}

// IsGroup reports whether the plan is a group plan.
func (p *SubscriptionPlan) IsGroup() bool {
	return p.Type == PlanTypeGroup
}

// NewPlanDefaults returns the blank plan an edit form starts from.
func NewPlanDefaults() SubscriptionPlan {
	return SubscriptionPlan{
		Price:    decimal.Zero,
		Type:     PlanTypePersonal,
		Features: []string{},
	}
}
