package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gridshare/landing/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

type ProfileRepository interface {
	ByEmail(email string) (*model.Profile, error)
	Create(profile *model.Profile) error
	Update(profile *model.Profile) error
	UpdateDetails(email, name, bio string, at time.Time) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByEmail(email string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Get(&profile, `SELECT * FROM profiles WHERE email = $1`, email)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) Create(profile *model.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = profile.CreatedAt
	}

	_, err := r.db.Exec(`
		INSERT INTO profiles (id, email, name, bio, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, profile.ID, profile.Email, profile.Name, profile.Bio, profile.PasswordHash, profile.CreatedAt, profile.UpdatedAt)

	return err
}

// Update overwrites name, bio and the password digest.
func (r *profileRepository) Update(profile *model.Profile) error {
	result, err := r.db.Exec(`
		UPDATE profiles
		SET name = $1, bio = $2, password_hash = $3, updated_at = $4
		WHERE email = $5
	`, profile.Name, profile.Bio, profile.PasswordHash, profile.UpdatedAt, profile.Email)
	if err != nil {
		return err
	}

	return requireRow(result, ErrProfileNotFound)
}

// UpdateDetails overwrites name and bio only, leaving the stored password
// digest untouched.
func (r *profileRepository) UpdateDetails(email, name, bio string, at time.Time) error {
	result, err := r.db.Exec(`
		UPDATE profiles
		SET name = $1, bio = $2, updated_at = $3
		WHERE email = $4
	`, name, bio, at, email)
	if err != nil {
		return err
	}

	return requireRow(result, ErrProfileNotFound)
}
