// Package memory is an in-process DocumentStore used for local runs and tests.
package memory

import (
	"alcyxob/studio-admin/internal/repository"
	"context"
	"sync"

	"github.com/google/uuid"
)

type collection struct {
	order []string
	docs  map[string]repository.Document
}

// Store keeps documents in memory, per collection in insertion order.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{collections: make(map[string]*collection)}
}

var _ repository.DocumentStore = (*Store)(nil)

func (s *Store) List(ctx context.Context, name string) ([]repository.StoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[name]
	if !ok {
		return []repository.StoredDocument{}, nil
	}
	out := make([]repository.StoredDocument, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, repository.StoredDocument{ID: id, Data: copyDocument(c.docs[id])})
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, name, id string) (repository.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyDocument(doc), nil
}

func (s *Store) Set(ctx context.Context, name, id string, doc repository.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return repository.ErrMissingID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(name)
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = copyDocument(doc)
	return nil
}

func (s *Store) Add(ctx context.Context, name string, doc repository.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	c := s.collection(name)
	c.order = append(c.order, id)
	c.docs[id] = copyDocument(doc)
	return id, nil
}

func (s *Store) Delete(ctx context.Context, name, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		return repository.ErrNotFound
	}
	if _, ok := c.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// collection must be called with the write lock held.
func (s *Store) collection(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{docs: make(map[string]repository.Document)}
		s.collections[name] = c
	}
	return c
}

func copyDocument(doc repository.Document) repository.Document {
	if doc == nil {
		return repository.Document{}
	}
	out := make(repository.Document, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = copyValue(item)
		}
		return out
	case map[string]interface{}:
		return map[string]interface{}(copyDocument(repository.Document(t)))
	case repository.Document:
		return copyDocument(t)
	}
	return v
}
