package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gridshare/landing/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type SubscriptionRepository interface {
	ByEmail(email string) (*model.Subscription, error)
	Create(sub *model.Subscription) error
	Touch(email string, at time.Time) error
	SetToken(email, token string, at time.Time) error
	Confirm(email string, at time.Time) error
}

type subscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) ByEmail(email string) (*model.Subscription, error) {
	sub := &model.Subscription{}
	query := `SELECT * FROM subscriptions WHERE email = $1`

	err := r.db.Get(sub, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (r *subscriptionRepository) Create(sub *model.Subscription) error {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	if sub.UpdatedAt.IsZero() {
		sub.UpdatedAt = sub.CreatedAt
	}

	query := `
		INSERT INTO subscriptions (
			email, confirmed, confirmation_token, token_created_at,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(
		query,
		sub.Email,
		sub.Confirmed,
		sub.ConfirmationToken,
		sub.TokenCreatedAt,
		sub.CreatedAt,
		sub.UpdatedAt,
	)

	return err
}

// Touch refreshes updated_at on a repeat subscribe without rotating the token.
func (r *subscriptionRepository) Touch(email string, at time.Time) error {
	result, err := r.db.Exec(`
		UPDATE subscriptions
		SET updated_at = $1
		WHERE email = $2
	`, at, email)
	if err != nil {
		return err
	}

	return requireRow(result, ErrSubscriptionNotFound)
}

// SetToken stores a confirmation token on an unconfirmed subscription. Rows
// carried over from databases that predate the token columns have none.
func (r *subscriptionRepository) SetToken(email, token string, at time.Time) error {
	result, err := r.db.Exec(`
		UPDATE subscriptions
		SET confirmation_token = $1,
		    token_created_at = $2,
		    updated_at = $2
		WHERE email = $3
	`, token, at, email)
	if err != nil {
		return err
	}

	return requireRow(result, ErrSubscriptionNotFound)
}

// Confirm marks the subscription confirmed and clears its token. The token is
// non-null only while confirmed is false.
func (r *subscriptionRepository) Confirm(email string, at time.Time) error {
	result, err := r.db.Exec(`
		UPDATE subscriptions
		SET confirmed = TRUE,
		    confirmation_token = NULL,
		    token_created_at = NULL,
		    updated_at = $1
		WHERE email = $2
	`, at, email)
	if err != nil {
		return err
	}

	return requireRow(result, ErrSubscriptionNotFound)
}

func requireRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
