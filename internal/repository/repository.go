package repository

import (
	"alcyxob/studio-admin/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound          = RepositoryError("not found")
	ErrMalformedDocument = RepositoryError("malformed document")
	ErrMissingID         = RepositoryError("document id is required")
	ErrPriceOutOfRange   = RepositoryError("price out of range")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Collection names, shared with the data written by the original web client.
const (
	PlanCollection   = "subscriptionTypes"
	ClientCollection = "clients"
)

// Document is a schemaless record as the store returns it. The identifier
// is never part of the document body.
type Document map[string]interface{}

// StoredDocument pairs a document with its store-assigned identifier.
type StoredDocument struct {
	ID   string
	Data Document
}

// DocumentStore is the remote document database, addressed by collection name.
// Set is a full replace that creates the document when it is absent.
type DocumentStore interface {
	List(ctx context.Context, collection string) ([]StoredDocument, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Set(ctx context.Context, collection, id string, doc Document) error
	Add(ctx context.Context, collection string, doc Document) (string, error)
	Delete(ctx context.Context, collection, id string) error
}

// PlanRepository defines the interface for interacting with the subscription catalog.
type PlanRepository interface {
	List(ctx context.Context) ([]domain.SubscriptionPlan, error)
	GetByID(ctx context.Context, id string) (*domain.SubscriptionPlan, error)
	Create(ctx context.Context, plan *domain.SubscriptionPlan) (string, error)
	Replace(ctx context.Context, plan *domain.SubscriptionPlan) error
	Delete(ctx context.Context, id string) error
}

// ClientRepository defines the interface for interacting with the client roster.
type ClientRepository interface {
	List(ctx context.Context) ([]domain.Client, error)
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) (string, error)
	Replace(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
}
