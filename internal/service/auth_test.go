package service

import (
	"testing"
	"time"

	"github.com/gridshare/landing/internal/model"
	"github.com/gridshare/landing/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminLoginNotConfigured(t *testing.T) {
	svc := NewAuthService(newFakeProfileRepo(), "", "", "")

	err := svc.AdminLogin("admin@example.com", "whatever")
	assert.ErrorIs(t, err, ErrAdminNotConfigured)

	svc = NewAuthService(newFakeProfileRepo(), "admin@example.com", "", "")
	err = svc.AdminLogin("admin@example.com", "whatever")
	assert.ErrorIs(t, err, ErrAdminNotConfigured)
}

func TestAdminLoginPlaintext(t *testing.T) {
	svc := NewAuthService(newFakeProfileRepo(), "Admin@Example.com", "top-secret", "")

	assert.NoError(t, svc.AdminLogin(" admin@example.com ", "top-secret"))
	assert.ErrorIs(t, svc.AdminLogin("admin@example.com", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.AdminLogin("other@example.com", "top-secret"), ErrInvalidCredentials)
}

func TestAdminLoginHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("top-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthService(newFakeProfileRepo(), "admin@example.com", "", string(hash))

	assert.NoError(t, svc.AdminLogin("admin@example.com", "top-secret"))
	assert.ErrorIs(t, svc.AdminLogin("admin@example.com", "wrong"), ErrInvalidCredentials)
}

func TestAdminLoginPlaintextTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthService(newFakeProfileRepo(), "admin@example.com", "plain-secret", string(hash))

	assert.NoError(t, svc.AdminLogin("admin@example.com", "plain-secret"))
	assert.ErrorIs(t, svc.AdminLogin("admin@example.com", "hashed-secret"), ErrInvalidCredentials)
}

func TestMemberLogin(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	svc := NewAuthService(profileRepo, "", "", "")

	hash, err := svc.HashPassword("sunny-passphrase")
	require.NoError(t, err)

	now := time.Now()
	profileRepo.profiles["rider@example.com"] = &model.Profile{
		ID:           "p1",
		Email:        "rider@example.com",
		Name:         "Sam",
		Bio:          "bio",
		PasswordHash: &hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	assert.NoError(t, svc.MemberLogin("Rider@Example.com", "sunny-passphrase"))
	assert.ErrorIs(t, svc.MemberLogin("rider@example.com", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.MemberLogin("ghost@example.com", "sunny-passphrase"), repository.ErrProfileNotFound)
}

func TestMemberLoginWithoutDigest(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	svc := NewAuthService(profileRepo, "", "", "")

	now := time.Now()
	profileRepo.profiles["rider@example.com"] = &model.Profile{
		ID:        "p1",
		Email:     "rider@example.com",
		Name:      "Sam",
		Bio:       "bio",
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := svc.MemberLogin("rider@example.com", "anything")
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
}
