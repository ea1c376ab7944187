package model

import "time"

// Subscription tracks one email's opt-in and confirmation state. The email is
// the primary key and is always stored normalized (trimmed, lowercased).
type Subscription struct {
	Email             string     `db:"email"`
	Confirmed         bool       `db:"confirmed"`
	ConfirmationToken *string    `db:"confirmation_token"`
	TokenCreatedAt    *time.Time `db:"token_created_at"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

// HasToken reports whether an unconfirmed subscription still holds its
// confirmation token. Confirmed rows never hold one.
func (s *Subscription) HasToken() bool {
	return s.ConfirmationToken != nil && *s.ConfirmationToken != ""
}

// TokenMatches compares a submitted token against the stored one.
func (s *Subscription) TokenMatches(token string) bool {
	return s.HasToken() && *s.ConfirmationToken == token
}
