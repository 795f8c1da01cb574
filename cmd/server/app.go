package main

import (
	"alcyxob/studio-admin/internal/config"
	"alcyxob/studio-admin/internal/logging"
	"alcyxob/studio-admin/internal/repository"
	"alcyxob/studio-admin/internal/repository/memory"
	"alcyxob/studio-admin/internal/repository/mongo"
	"alcyxob/studio-admin/internal/service"
	"alcyxob/studio-admin/internal/storage"
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// app holds the wired services shared by all commands.
type app struct {
	cfg     config.Config
	catalog service.CatalogService
	roster  service.RosterService
	export  service.ExportService
	close   func()
}

// loadConfig reads configuration and configures logging.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := logging.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newApp connects the document store and object storage and builds the services.
// Callers must call close when done.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	logger := logging.NewModuleLogger("app")

	store, closeStore, err := openStore(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	// Leave the interface nil when no bucket is set so exports report disabled.
	var objects storage.ObjectStorage
	if cfg.S3.Enabled() {
		objects, err = storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			closeStore()
			return nil, fmt.Errorf("init s3 storage: %w", err)
		}
	} else {
		logger.Info("No S3 bucket configured, snapshot export disabled")
	}

	planRepo := repository.NewPlanRepository(store, logging.NewModuleLogger("plan-repository"))
	clientRepo := repository.NewClientRepository(store, logging.NewModuleLogger("client-repository"))
	catalog := service.NewCatalogService(planRepo)

	return &app{
		cfg:     cfg,
		catalog: catalog,
		roster:  service.NewRosterService(clientRepo, catalog),
		export:  service.NewExportService(planRepo, clientRepo, objects, cfg.Export.Prefix, cfg.Export.URLExpiry),
		close:   closeStore,
	}, nil
}

func openStore(cfg config.DatabaseConfig, logger logrus.FieldLogger) (repository.DocumentStore, func(), error) {
	if cfg.Driver == config.DriverMemory {
		logger.Warn("Using in-memory document store, data is lost on exit")
		return memory.NewStore(), func() {}, nil
	}

	dbClient, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	appDB := dbClient.Database(cfg.Name)
	logger.WithField("database", cfg.Name).Info("Database connection established")

	// Run index creation in the background
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB, logger)
	}()

	closeFn := func() {
		logger.Info("Disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.WithError(err).Error("Failed to disconnect MongoDB")
		}
	}
	return mongo.NewDocumentStore(appDB), closeFn, nil
}
