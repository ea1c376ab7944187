package model

import "time"

// Profile is the optional richer identity layered atop a subscription.
// The email references the subscriptions table and is unique.
type Profile struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	Bio          string    `db:"bio"`
	PasswordHash *string   `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (p *Profile) HasPassword() bool {
	return p.PasswordHash != nil && *p.PasswordHash != ""
}
