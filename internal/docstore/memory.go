package docstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used by tests and local development.
// It implements the same contract as MySQLStore, including change events.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
	notifier    *notifier
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]json.RawMessage),
		notifier:    newNotifier(),
	}
}

func (s *MemoryStore) CreateDocument(_ context.Context, collection string, data any) (string, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %v", err)
	}

	id := uuid.NewString()
	s.mu.Lock()
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]json.RawMessage)
	}
	s.collections[collection][id] = body
	s.mu.Unlock()

	s.notifier.publish(Event{Collection: collection, Type: EventCreated, ID: id, Data: body})
	return id, nil
}

func (s *MemoryStore) GetDocument(_ context.Context, collection, id string) (*Document, error) {
	s.mu.RLock()
	body, ok := s.collections[collection][id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &Document{ID: id, Data: body}, nil
}

func (s *MemoryStore) GetDocuments(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]Document, 0, len(s.collections[collection]))
	for id, body := range s.collections[collection] {
		docs = append(docs, Document{ID: id, Data: body})
	}
	return docs, nil
}

func (s *MemoryStore) UpdateDocument(_ context.Context, collection, id string, patch map[string]any) error {
	s.mu.Lock()
	body, ok := s.collections[collection][id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	merged, err := mergePatch(body, patch)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to patch document %s/%s: %v", collection, id, err)
	}
	s.collections[collection][id] = merged
	s.mu.Unlock()

	s.notifier.publish(Event{Collection: collection, Type: EventUpdated, ID: id, Data: merged})
	return nil
}

func (s *MemoryStore) DeleteDocument(_ context.Context, collection, id string) error {
	s.mu.Lock()
	if _, ok := s.collections[collection][id]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.collections[collection], id)
	s.mu.Unlock()

	s.notifier.publish(Event{Collection: collection, Type: EventDeleted, ID: id})
	return nil
}

func (s *MemoryStore) Subscribe(collection string, fn func(Event)) func() {
	return s.notifier.subscribe(collection, fn)
}
