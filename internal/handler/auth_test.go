package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gridshare/landing/internal/model"
	"github.com/gridshare/landing/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminLoginEndpoint(t *testing.T) {
	auth := service.NewAuthService(newMemProfileRepo(), "admin@example.com", "top-secret", "")
	h := NewAuthHandler(auth)

	rec := postJSON(t, h.AdminLogin, map[string]string{"email": "admin@example.com", "password": "top-secret"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeResponse(t, rec)["success"])

	rec = postJSON(t, h.AdminLogin, map[string]string{"email": "admin@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, decodeResponse(t, rec)["success"])
}

func TestAdminLoginEndpointHashConfigured(t *testing.T) {
	base := service.NewAuthService(newMemProfileRepo(), "", "", "")
	hash, err := base.HashPassword("top-secret")
	require.NoError(t, err)

	auth := service.NewAuthService(newMemProfileRepo(), "admin@example.com", "", hash)
	h := NewAuthHandler(auth)

	rec := postJSON(t, h.AdminLogin, map[string]string{"email": "admin@example.com", "password": "top-secret"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, h.AdminLogin, map[string]string{"email": "admin@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLoginEndpointNotConfigured(t *testing.T) {
	auth := service.NewAuthService(newMemProfileRepo(), "", "", "")
	h := NewAuthHandler(auth)

	rec := postJSON(t, h.AdminLogin, map[string]string{"email": "admin@example.com", "password": "x"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMemberLoginEndpoint(t *testing.T) {
	profileRepo := newMemProfileRepo()
	auth := service.NewAuthService(profileRepo, "", "", "")
	h := NewAuthHandler(auth)

	hash, err := auth.HashPassword("sunny-passphrase")
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

	rec := postJSON(t, h.MemberLogin, map[string]string{"email": "Rider@Example.com", "password": "sunny-passphrase"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, h.MemberLogin, map[string]string{"email": "rider@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(t, h.MemberLogin, map[string]string{"email": "ghost@example.com", "password": "sunny-passphrase"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
