package repository

import (
	"alcyxob/studio-admin/internal/domain"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// documentPlanRepository implements PlanRepository on top of a DocumentStore.
type documentPlanRepository struct {
	store  DocumentStore
	logger logrus.FieldLogger
}

// NewPlanRepository creates a plan repository backed by the given document store.
func NewPlanRepository(store DocumentStore, logger logrus.FieldLogger) PlanRepository {
	return &documentPlanRepository{store: store, logger: logger}
}

// List returns every well-formed plan. Documents that cannot be mapped are
// logged and skipped so one bad record does not hide the whole catalog.
func (r *documentPlanRepository) List(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	docs, err := r.store.List(ctx, PlanCollection)
	if err != nil {
		return nil, err
	}

	plans := make([]domain.SubscriptionPlan, 0, len(docs))
	for _, d := range docs {
		plan, err := PlanFromDocument(d.ID, d.Data)
		if err != nil {
			r.logger.WithError(err).WithField("plan_id", d.ID).Warn("Skipping malformed plan document")
			continue
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// GetByID retrieves a plan by its ID.
func (r *documentPlanRepository) GetByID(ctx context.Context, id string) (*domain.SubscriptionPlan, error) {
	doc, err := r.store.Get(ctx, PlanCollection, id)
	if err != nil {
		return nil, err
	}
	plan, err := PlanFromDocument(id, doc)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Create stores a new plan under a store-generated ID and sets plan.ID.
func (r *documentPlanRepository) Create(ctx context.Context, plan *domain.SubscriptionPlan) (string, error) {
	doc, err := PlanToDocument(plan)
	if err != nil {
		return "", err
	}
	id, err := r.store.Add(ctx, PlanCollection, doc)
	if err != nil {
		return "", err
	}
	plan.ID = id
	return id, nil
}

// Replace overwrites the whole plan document, creating it if absent.
func (r *documentPlanRepository) Replace(ctx context.Context, plan *domain.SubscriptionPlan) error {
	if plan.ID == "" {
		return ErrMissingID
	}
	doc, err := PlanToDocument(plan)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, PlanCollection, plan.ID, doc); err != nil {
		return fmt.Errorf("replace plan %s: %w", plan.ID, err)
	}
	return nil
}

// Delete removes a plan. Clients referencing it are left untouched.
func (r *documentPlanRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	err := r.store.Delete(ctx, PlanCollection, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete plan %s: %w", id, err)
	}
	return err
}
