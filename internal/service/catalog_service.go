package service

import (
	"alcyxob/studio-admin/internal/domain"
	"alcyxob/studio-admin/internal/logging"
	"alcyxob/studio-admin/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// CatalogService manages the subscription plans offered by the studio.
type CatalogService interface {
	ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error)
	// GetPlan returns blank defaults and found=false when the plan does not exist.
	GetPlan(ctx context.Context, id string) (plan domain.SubscriptionPlan, found bool, err error)
	// SavePlan overwrites the plan when it has an ID and creates it otherwise.
	SavePlan(ctx context.Context, plan *domain.SubscriptionPlan) (*domain.SubscriptionPlan, error)
	DeletePlan(ctx context.Context, id string) error
	Catalog(ctx context.Context) (domain.Catalog, error)
	// Seed writes the studio's standard plans under fixed IDs.
	Seed(ctx context.Context) (int, error)
}

type catalogService struct {
	planRepo repository.PlanRepository
	logger   logrus.FieldLogger
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(planRepo repository.PlanRepository) CatalogService {
	return &catalogService{
		planRepo: planRepo,
		logger:   logging.NewModuleLogger("catalog-service"),
	}
}

func (s *catalogService) ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	return s.planRepo.List(ctx)
}

func (s *catalogService) GetPlan(ctx context.Context, id string) (domain.SubscriptionPlan, bool, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewPlanDefaults(), false, nil
		}
		return domain.SubscriptionPlan{}, false, err
	}
	return *plan, true, nil
}

func (s *catalogService) SavePlan(ctx context.Context, plan *domain.SubscriptionPlan) (*domain.SubscriptionPlan, error) {
	if err := normalizePlan(plan); err != nil {
		return nil, err
	}

	if plan.ID == "" {
		if _, err := s.planRepo.Create(ctx, plan); err != nil {
			return nil, err
		}
		return plan, nil
	}
	if err := s.planRepo.Replace(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *catalogService) DeletePlan(ctx context.Context, id string) error {
	// Clients holding this plan keep the ID; it is dropped when resolved.
	err := s.planRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

func (s *catalogService) Catalog(ctx context.Context) (domain.Catalog, error) {
	plans, err := s.planRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewCatalog(plans), nil
}

func (s *catalogService) Seed(ctx context.Context) (int, error) {
	plans := SeedPlans()
	for i := range plans {
		if err := s.planRepo.Replace(ctx, &plans[i]); err != nil {
			return i, fmt.Errorf("seed plan %s: %w", plans[i].ID, err)
		}
		s.logger.WithFields(logrus.Fields{"plan_id": plans[i].ID, "name": plans[i].Name}).Info("Seeded subscription plan")
	}
	return len(plans), nil
}

// normalizePlan trims input and checks the fields an edit form requires.
func normalizePlan(plan *domain.SubscriptionPlan) error {
	plan.ID = strings.TrimSpace(plan.ID)
	plan.Name = strings.TrimSpace(plan.Name)
	if plan.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if !plan.Type.Valid() {
		return fmt.Errorf("%w: type must be personal or group", ErrValidationFailed)
	}
	if plan.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrValidationFailed)
	}
	if err := repository.CheckPrice(plan.Price); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if plan.SessionsPerMonth <= 0 {
		return fmt.Errorf("%w: sessionsPerMonth must be positive", ErrValidationFailed)
	}
	plan.Features = trimmed(plan.Features)
	if plan.IsGroup() {
		plan.Schedule = trimmed(plan.Schedule)
	} else {
		plan.Schedule = nil
	}
	return nil
}

// trimmed drops blank entries and keeps order.
func trimmed(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
