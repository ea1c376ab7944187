package db

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func columnRows(names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"column_name"})
	for _, name := range names {
		rows.AddRow(name)
	}
	return rows
}

func TestEnsureSchemaCompleteDatabase(t *testing.T) {
	database, mock := setupMockDB(t)

	introspect := regexp.QuoteMeta(`SELECT column_name FROM information_schema.columns WHERE table_name = $1`)

	mock.ExpectQuery(introspect).
		WithArgs("subscriptions").
		WillReturnRows(columnRows("email", "confirmed", "confirmation_token", "token_created_at", "created_at", "updated_at"))
	mock.ExpectQuery(introspect).
		WithArgs("profiles").
		WillReturnRows(columnRows("id", "email", "name", "bio", "password_hash", "created_at", "updated_at"))

	err := EnsureSchema(database, "pgx")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaAddsMissingColumns(t *testing.T) {
	database, mock := setupMockDB(t)

	introspect := regexp.QuoteMeta(`SELECT column_name FROM information_schema.columns WHERE table_name = $1`)

	// Legacy subscriptions table without the token bookkeeping columns.
	mock.ExpectQuery(introspect).
		WithArgs("subscriptions").
		WillReturnRows(columnRows("email", "confirmed", "created_at", "updated_at"))
	mock.ExpectExec(`ALTER TABLE subscriptions ADD COLUMN confirmation_token TEXT`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`ALTER TABLE subscriptions ADD COLUMN token_created_at TIMESTAMP`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Legacy profiles table without the password digest column.
	mock.ExpectQuery(introspect).
		WithArgs("profiles").
		WillReturnRows(columnRows("id", "email", "name", "bio", "created_at", "updated_at"))
	mock.ExpectExec(`ALTER TABLE profiles ADD COLUMN password_hash TEXT`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := EnsureSchema(database, "pgx")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	database, mock := setupMockDB(t)

	introspect := regexp.QuoteMeta(`SELECT column_name FROM information_schema.columns WHERE table_name = $1`)

	for range 2 {
		mock.ExpectQuery(introspect).
			WithArgs("subscriptions").
			WillReturnRows(columnRows("email", "confirmed", "confirmation_token", "token_created_at", "created_at", "updated_at"))
		mock.ExpectQuery(introspect).
			WithArgs("profiles").
			WillReturnRows(columnRows("id", "email", "name", "bio", "password_hash", "created_at", "updated_at"))
	}

	require.NoError(t, EnsureSchema(database, "pgx"))
	require.NoError(t, EnsureSchema(database, "pgx"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
