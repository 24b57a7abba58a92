package docstore

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLStoreCreateDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO documents").
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewMySQLStore(db)
	id, err := store.CreateDocument(context.Background(), "projects", map[string]any{"name": "demo"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStoreGetDocumentNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT doc FROM documents").
		WithArgs("projects", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	store := NewMySQLStore(db)
	_, err = store.GetDocument(context.Background(), "projects", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStoreUpdateDocumentMergesPatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT doc FROM documents").
		WithArgs("projects", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow([]byte(`{"name":"old","status":"active"}`)))
	mock.ExpectExec("UPDATE documents SET doc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewMySQLStore(db)
	err = store.UpdateDocument(context.Background(), "projects", "p1", map[string]any{"name": "new"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStoreUpdateDocumentMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT doc FROM documents").
		WithArgs("projects", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	store := NewMySQLStore(db)
	err = store.UpdateDocument(context.Background(), "projects", "missing", map[string]any{"name": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStoreDeleteDocumentMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("projects", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewMySQLStore(db)
	err = store.DeleteDocument(context.Background(), "projects", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStoreGetDocuments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, doc FROM documents").
		WithArgs("tasks").
		WillReturnRows(sqlmock.NewRows([]string{"id", "doc"}).
			AddRow("t1", []byte(`{"title":"one"}`)).
			AddRow("t2", []byte(`{"title":"two"}`)))

	store := NewMySQLStore(db)
	docs, err := store.GetDocuments(context.Background(), "tasks")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "t1", docs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
