package repository

import (
	"alcyxob/studio-admin/internal/domain"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// documentClientRepository implements ClientRepository on top of a DocumentStore.
type documentClientRepository struct {
	store  DocumentStore
	logger logrus.FieldLogger
}

// NewClientRepository creates a client repository backed by the given document store.
func NewClientRepository(store DocumentStore, logger logrus.FieldLogger) ClientRepository {
	return &documentClientRepository{store: store, logger: logger}
}

// List returns every client in store order.
func (r *documentClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	docs, err := r.store.List(ctx, ClientCollection)
	if err != nil {
		return nil, err
	}
	clients := make([]domain.Client, 0, len(docs))
	for _, d := range docs {
		clients = append(clients, r.fromDocument(d.ID, d.Data))
	}
	return clients, nil
}

// GetByID retrieves a client by its ID.
func (r *documentClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	doc, err := r.store.Get(ctx, ClientCollection, id)
	if err != nil {
		return nil, err
	}
	client := r.fromDocument(id, doc)
	return &client, nil
}

// Create stores a new client under a store-generated ID and sets client.ID.
func (r *documentClientRepository) Create(ctx context.Context, client *domain.Client) (string, error) {
	id, err := r.store.Add(ctx, ClientCollection, ClientToDocument(client))
	if err != nil {
		return "", err
	}
	client.ID = id
	return id, nil
}

// Replace overwrites the whole client document, creating it if absent.
func (r *documentClientRepository) Replace(ctx context.Context, client *domain.Client) error {
	if client.ID == "" {
		return ErrMissingID
	}
	if err := r.store.Set(ctx, ClientCollection, client.ID, ClientToDocument(client)); err != nil {
		return fmt.Errorf("replace client %s: %w", client.ID, err)
	}
	return nil
}

// Delete removes a client by ID.
func (r *documentClientRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	err := r.store.Delete(ctx, ClientCollection, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete client %s: %w", id, err)
	}
	return err
}

func (r *documentClientRepository) fromDocument(id string, doc Document) domain.Client {
	if _, legacy := doc[fieldSubscriptionID]; legacy {
		r.logger.WithField("client_id", id).Debug("Client document uses legacy subscriptionId field")
	}
	return ClientFromDocument(id, doc)
}
