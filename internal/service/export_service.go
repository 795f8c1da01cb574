package service

import (
	"alcyxob/studio-admin/internal/domain"
	"alcyxob/studio-admin/internal/logging"
	"alcyxob/studio-admin/internal/repository"
	"alcyxob/studio-admin/internal/storage"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Snapshot is the document written by an export.
type Snapshot struct {
	ExportedAt    time.Time                 `json:"exportedAt"`
	Subscriptions []domain.SubscriptionPlan `json:"subscriptions"`
	Clients       []domain.Client           `json:"clients"`
}

// ExportResult tells the caller where the snapshot went.
type ExportResult struct {
	Key         string    `json:"key"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Plans       int       `json:"plans"`
	Clients     int       `json:"clients"`
}

// ExportService writes catalog and roster snapshots to object storage.
type ExportService interface {
	Export(ctx context.Context) (*ExportResult, error)
}

type exportService struct {
	planRepo   repository.PlanRepository
	clientRepo repository.ClientRepository
	storage    storage.ObjectStorage // nil when exports are disabled
	prefix     string
	urlExpiry  time.Duration
	now        func() time.Time
	logger     logrus.FieldLogger
}

// NewExportService creates an export service. A nil store disables exports.
func NewExportService(
	planRepo repository.PlanRepository,
	clientRepo repository.ClientRepository,
	store storage.ObjectStorage,
	prefix string,
	urlExpiry time.Duration,
) ExportService {
	if urlExpiry <= 0 {
		urlExpiry = storage.DefaultPresignedURLExpiry
	}
	return &exportService{
		planRepo:   planRepo,
		clientRepo: clientRepo,
		storage:    store,
		prefix:     prefix,
		urlExpiry:  urlExpiry,
		now:        time.Now,
		logger:     logging.NewModuleLogger("export-service"),
	}
}

func (s *exportService) Export(ctx context.Context) (*ExportResult, error) {
	if s.storage == nil {
		return nil, ErrExportDisabled
	}

	plans, err := s.planRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	now := s.now().UTC()
	body, err := json.MarshalIndent(Snapshot{ExportedAt: now, Subscriptions: plans, Clients: clients}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	key := path.Join(s.prefix, fmt.Sprintf("%s-%s.json", now.Format("20060102T150405Z"), uuid.NewString()))
	if err := s.storage.PutObject(ctx, key, "application/json", body); err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}

	url, err := s.storage.GeneratePresignedDownloadURL(ctx, key, s.urlExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign snapshot: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"key": key, "plans": len(plans), "clients": len(clients)}).Info("Exported snapshot")
	return &ExportResult{
		Key:         key,
		DownloadURL: url,
		ExpiresAt:   now.Add(s.urlExpiry),
		Plans:       len(plans),
		Clients:     len(clients),
	}, nil
}
