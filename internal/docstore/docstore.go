// Package docstore wraps the backing database behind collection-scoped
// create/read/update/delete and change-subscription operations. All entities
// are stored as schema-less JSON documents in named collections; filtering and
// sorting happen in the repositories above this layer.
package docstore

import (
	"context"
	"errors"
	"sync"

	"github.com/goccy/go-json"
)

// Collection names used across the application.
const (
	CollectionUsers       = "users"
	CollectionProjects    = "projects"
	CollectionTasks       = "tasks"
	CollectionMembers     = "project_members"
	CollectionInvitations = "invitations"
	CollectionComments    = "comments"
)

var ErrNotFound = errors.New("document not found")

// Document is a raw stored entity. Data is the JSON body without the id.
type Document struct {
	ID   string
	Data json.RawMessage
}

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Event describes a single document change within a collection.
type Event struct {
	Collection string          `json:"collection"`
	Type       EventType       `json:"type"`
	ID         string          `json:"id"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// Store is the document store contract. Subscribe returns an unsubscribe
// function that the caller must invoke exactly once on teardown.
type Store interface {
	CreateDocument(ctx context.Context, collection string, data any) (string, error)
	GetDocument(ctx context.Context, collection, id string) (*Document, error)
	GetDocuments(ctx context.Context, collection string) ([]Document, error)
	UpdateDocument(ctx context.Context, collection, id string, patch map[string]any) error
	DeleteDocument(ctx context.Context, collection, id string) error
	Subscribe(collection string, fn func(Event)) (unsubscribe func())
}

// notifier fans document change events out to in-process subscribers.
// Notifications only cover writes made through the same store instance.
type notifier struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]func(Event)
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]map[int]func(Event))}
}

func (n *notifier) subscribe(collection string, fn func(Event)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[collection] == nil {
		n.subs[collection] = make(map[int]func(Event))
	}
	id := n.nextID
	n.nextID++
	n.subs[collection][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs[collection], id)
			n.mu.Unlock()
		})
	}
}

func (n *notifier) publish(ev Event) {
	n.mu.RLock()
	fns := make([]func(Event), 0, len(n.subs[ev.Collection]))
	for _, fn := range n.subs[ev.Collection] {
		fns = append(fns, fn)
	}
	n.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
