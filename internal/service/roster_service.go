package service

import (
	"alcyxob/studio-admin/internal/domain"
	"alcyxob/studio-admin/internal/logging"
	"alcyxob/studio-admin/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ClientView is a client joined with the plans it holds. Plans that no
// longer exist in the catalog are left out.
type ClientView struct {
	Client domain.Client
	Plans  []domain.SubscriptionPlan
}

// Selection is a plan selection with the plans it resolves to, both taken
// from the same catalog read.
type Selection struct {
	IDs   []string
	Plans []domain.SubscriptionPlan
}

// RosterService manages studio clients and their plan selection.
type RosterService interface {
	ListClients(ctx context.Context) ([]ClientView, error)
	// GetClient returns blank defaults and found=false when the client does not exist.
	GetClient(ctx context.Context, id string) (view ClientView, found bool, err error)
	// SaveClient validates the plan selection against the current catalog
	// before anything is written.
	SaveClient(ctx context.Context, client *domain.Client) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error
	ToggleSelection(ctx context.Context, selection []string, planID string) (Selection, error)
	Resolve(ctx context.Context, client domain.Client) (ClientView, error)
}

type rosterService struct {
	clientRepo repository.ClientRepository
	catalog    CatalogService
	logger     logrus.FieldLogger
}

// NewRosterService creates a new instance of rosterService.
func NewRosterService(clientRepo repository.ClientRepository, catalog CatalogService) RosterService {
	return &rosterService{
		clientRepo: clientRepo,
		catalog:    catalog,
		logger:     logging.NewModuleLogger("roster-service"),
	}
}

func (s *rosterService) ListClients(ctx context.Context) ([]ClientView, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ClientView, len(clients))
	for i, c := range clients {
		views[i] = ClientView{Client: c, Plans: catalog.Resolve(c.SubscriptionIDs)}
	}
	return views, nil
}

func (s *rosterService) GetClient(ctx context.Context, id string) (ClientView, bool, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ClientView{Client: domain.NewClientDefaults(), Plans: []domain.SubscriptionPlan{}}, false, nil
		}
		return ClientView{}, false, err
	}

	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return ClientView{}, false, err
	}
	return ClientView{Client: *client, Plans: catalog.Resolve(client.SubscriptionIDs)}, true, nil
}

func (s *rosterService) SaveClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := normalizeClient(client); err != nil {
		return nil, err
	}

	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateSelection(client.SubscriptionIDs, catalog); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if client.ID == "" {
		if _, err := s.clientRepo.Create(ctx, client); err != nil {
			return nil, err
		}
		s.logger.WithField("client_id", client.ID).Debug("Created client")
		return client, nil
	}
	if err := s.clientRepo.Replace(ctx, client); err != nil {
		return nil, err
	}
	s.logger.WithField("client_id", client.ID).Debug("Replaced client")
	return client, nil
}

func (s *rosterService) DeleteClient(ctx context.Context, id string) error {
	err := s.clientRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}

func (s *rosterService) ToggleSelection(ctx context.Context, selection []string, planID string) (Selection, error) {
	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return Selection{}, err
	}
	ids := domain.Toggle(domain.Dedupe(selection), catalog, strings.TrimSpace(planID))
	return Selection{IDs: ids, Plans: catalog.Resolve(ids)}, nil
}

func (s *rosterService) Resolve(ctx context.Context, client domain.Client) (ClientView, error) {
	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return ClientView{}, err
	}
	return ClientView{Client: client, Plans: catalog.Resolve(client.SubscriptionIDs)}, nil
}

// normalizeClient trims input, applies form defaults and checks required fields.
func normalizeClient(client *domain.Client) error {
	client.ID = strings.TrimSpace(client.ID)
	client.FirstName = strings.TrimSpace(client.FirstName)
	client.LastName = strings.TrimSpace(client.LastName)
	client.Email = strings.TrimSpace(client.Email)
	client.Phone = strings.TrimSpace(client.Phone)
	client.SubscriptionIDs = domain.Dedupe(client.SubscriptionIDs)

	switch {
	case client.FirstName == "":
		return fmt.Errorf("%w: firstName is required", ErrValidationFailed)
	case client.LastName == "":
		return fmt.Errorf("%w: lastName is required", ErrValidationFailed)
	case client.Email == "":
		return fmt.Errorf("%w: email is required", ErrValidationFailed)
	case client.Phone == "":
		return fmt.Errorf("%w: phone is required", ErrValidationFailed)
	}

	if client.Status == "" {
		client.Status = domain.StatusActive
	}
	if !client.Status.Valid() {
		return fmt.Errorf("%w: status must be active or inactive", ErrValidationFailed)
	}

	client.StartDate = strings.TrimSpace(client.StartDate)
	if client.StartDate == "" {
		client.StartDate = domain.Today()
	}
	if _, err := time.Parse(domain.DateLayout, client.StartDate); err != nil {
		return fmt.Errorf("%w: startDate must be YYYY-MM-DD", ErrValidationFailed)
	}
	return nil
}
