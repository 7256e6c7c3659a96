package storage_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vendortrack/internal/storage"
)

func newPostgres(t *testing.T) (*storage.Postgres, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return storage.NewPostgres(db), mock
}

func TestPostgres_Get(t *testing.T) {
	p, mock := newPostgres(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_store WHERE key = $1`)).
		WithArgs(storage.KeyUser).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"name":"Sam"}`)))

	got, err := p.Get(context.Background(), storage.KeyUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Sam"}`, string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetMissing(t *testing.T) {
	p, mock := newPostgres(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_store WHERE key = $1`)).
		WithArgs(storage.KeyEvents).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := p.Get(context.Background(), storage.KeyEvents)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Put(t *testing.T) {
	p, mock := newPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_store (key, value, updated_at)`)).
		WithArgs(storage.KeyProducts, `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, p.Put(context.Background(), storage.KeyProducts, []byte(`[]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_PutError(t *testing.T) {
	p, mock := newPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_store`)).
		WillReturnError(errors.New("connection reset"))

	err := p.Put(context.Background(), storage.KeyProducts, []byte(`[]`))
	assert.ErrorContains(t, err, "connection reset")
}

func TestPostgres_EnsureSchema(t *testing.T) {
	p, mock := newPostgres(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS kv_store \(\s+key\s+TEXT PRIMARY KEY,\s+value\s+JSON NOT NULL,`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, p.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
