package docstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// MySQLStore keeps every collection in a single documents table with the JSON
// body in a doc column. GetDocuments always returns the whole collection; the
// repositories filter and sort client-side.
type MySQLStore struct {
	db       *sql.DB
	notifier *notifier
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{
		db:       db,
		notifier: newNotifier(),
	}
}

func (s *MySQLStore) CreateDocument(ctx context.Context, collection string, data any) (string, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %v", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO documents (collection, id, doc)
        VALUES (?, ?, ?)`, collection, id, body)
	if err != nil {
		return "", fmt.Errorf("failed to create document in %s: %v", collection, err)
	}

	s.notifier.publish(Event{Collection: collection, Type: EventCreated, ID: id, Data: body})
	return id, nil
}

func (s *MySQLStore) GetDocument(ctx context.Context, collection, id string) (*Document, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `
        SELECT doc FROM documents
        WHERE collection = ? AND id = ?`, collection, id).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to read document %s/%s: %v", collection, id, err)
	}

	return &Document{ID: id, Data: body}, nil
}

func (s *MySQLStore) GetDocuments(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, doc FROM documents
        WHERE collection = ?`, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %v", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, (*[]byte)(&doc.Data)); err != nil {
			return nil, fmt.Errorf("failed to scan document in %s: %v", collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %v", collection, err)
	}

	return docs, nil
}

func (s *MySQLStore) UpdateDocument(ctx context.Context, collection, id string, patch map[string]any) error {
	doc, err := s.GetDocument(ctx, collection, id)
	if err != nil {
		return err
	}

	merged, err := mergePatch(doc.Data, patch)
	if err != nil {
		return fmt.Errorf("failed to patch document %s/%s: %v", collection, id, err)
	}

	_, err = s.db.ExecContext(ctx, `
        UPDATE documents SET doc = ?
        WHERE collection = ? AND id = ?`, merged, collection, id)
	if err != nil {
		return fmt.Errorf("failed to update document %s/%s: %v", collection, id, err)
	}

	s.notifier.publish(Event{Collection: collection, Type: EventUpdated, ID: id, Data: merged})
	return nil
}

func (s *MySQLStore) DeleteDocument(ctx context.Context, collection, id string) error {
	result, err := s.db.ExecContext(ctx, `
        DELETE FROM documents
        WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %v", collection, id, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}

	s.notifier.publish(Event{Collection: collection, Type: EventDeleted, ID: id})
	return nil
}

func (s *MySQLStore) Subscribe(collection string, fn func(Event)) func() {
	return s.notifier.subscribe(collection, fn)
}

// mergePatch overlays patch keys onto the stored JSON body.
func mergePatch(body json.RawMessage, patch map[string]any) (json.RawMessage, error) {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	for key, value := range patch {
		doc[key] = value
	}
	return json.Marshal(doc)
}
