package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gridshare/landing/internal/model"
	"github.com/gridshare/landing/internal/repository"
	"github.com/gridshare/landing/internal/validation"
)

var (
	ErrPasswordRequired = errors.New("password is required to create a profile")
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidBio       = errors.New("invalid bio")
)

type ProfileService struct {
	profileRepo      repository.ProfileRepository
	subscriptionRepo repository.SubscriptionRepository
	auth             *AuthService
}

func NewProfileService(profileRepo repository.ProfileRepository, subscriptionRepo repository.SubscriptionRepository, auth *AuthService) *ProfileService {
	return &ProfileService{
		profileRepo:      profileRepo,
		subscriptionRepo: subscriptionRepo,
		auth:             auth,
	}
}

type UpsertResult struct {
	Created bool
}

// Upsert creates or updates the profile for a subscribed email. A password is
// mandatory on create and optional on update; when omitted on update the
// stored digest is preserved. The subscription's confirmation state is not
// checked here, only that the row exists.
func (s *ProfileService) Upsert(email, name, bio, password string) (*UpsertResult, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)
	bio = strings.TrimSpace(bio)

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, err)
	}
	err = validation.ValidateName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, err)
	}
	err = validation.ValidateBio(bio)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBio, err)
	}

	// A profile can only exist for a known subscription email.
	_, err = s.subscriptionRepo.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up subscription: %w", err)
	}

	now := time.Now()

	existing, err := s.profileRepo.ByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	if existing == nil {
		if password == "" {
			return nil, ErrPasswordRequired
		}

		err = validation.ValidatePassword(password)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err)
		}

		hash, err := s.auth.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}

		profile := &model.Profile{
			Email:        email,
			Name:         name,
			Bio:          bio,
			PasswordHash: &hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		err = s.profileRepo.Create(profile)
		if err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}

		return &UpsertResult{Created: true}, nil
	}

	if password != "" {
		err = validation.ValidatePassword(password)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err)
		}

		hash, err := s.auth.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}

		existing.Name = name
		existing.Bio = bio
		existing.PasswordHash = &hash
		existing.UpdatedAt = now

		err = s.profileRepo.Update(existing)
		if err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}

		return &UpsertResult{}, nil
	}

	err = s.profileRepo.UpdateDetails(email, name, bio, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &UpsertResult{}, nil
}

// ByEmail returns the profile for a normalized email.
func (s *ProfileService) ByEmail(email string) (*model.Profile, error) {
	return s.profileRepo.ByEmail(NormalizeEmail(email))
}
