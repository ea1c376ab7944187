package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gridshare/landing/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func subscriptionColumns() []string {
	return []string{"email", "confirmed", "confirmation_token", "token_created_at", "created_at", "updated_at"}
}

func TestSubscriptionByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubscriptionRepository(db)

	now := time.Now()
	token := "tok-1"
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM subscriptions WHERE email = $1`)).
		WithArgs("rider@example.com").
		WillReturnRows(sqlmock.NewRows(subscriptionColumns()).
			AddRow("rider@example.com", false, token, now, now, now))

	sub, err := repo.ByEmail("rider@example.com")
	require.NoError(t, err)
	assert.Equal(t, "rider@example.com", sub.Email)
	assert.False(t, sub.Confirmed)
	require.NotNil(t, sub.ConfirmationToken)
	assert.Equal(t, token, *sub.ConfirmationToken)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionByEmailNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubscriptionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM subscriptions WHERE email = $1`)).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows(subscriptionColumns()))

	_, err := repo.ByEmail("ghost@example.com")
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestSubscriptionCreate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubscriptionRepository(db)

	now := time.Now()
	token := "tok-1"
	sub := &model.Subscription{
		Email:             "rider@example.com",
		ConfirmationToken: &token,
		TokenCreatedAt:    &now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO subscriptions`)).
		WithArgs("rider@example.com", false, token, now, now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(sub)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionSetToken(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubscriptionRepository(db)

	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE subscriptions`)).
		WithArgs("tok-1", now, "legacy@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetToken("legacy@example.com", "tok-1", now)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionConfirmClearsToken(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubscriptionRepository(db)

	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE subscriptions`)).
		WithArgs(now, "rider@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Confirm("rider@example.com", now)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionConfirmNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubscriptionRepository(db)

	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE subscriptions`)).
		WithArgs(now, "ghost@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Confirm("ghost@example.com", now)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestSubscriptionTouchNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubscriptionRepository(db)

	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE subscriptions`)).
		WithArgs(now, "ghost@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Touch("ghost@example.com", now)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}
