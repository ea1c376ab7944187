package handler

import (
	"errors"
	"net/http"

	"github.com/gridshare/landing/internal/repository"
	"github.com/gridshare/landing/internal/service"
)

type authHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *authHandler {
	return &authHandler{auth: auth}
}

// MemberLogin handles POST /api/login against the profile's password digest.
func (h *authHandler) MemberLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	err := decodeBody(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.auth.MemberLogin(req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		respondError(w, http.StatusBadRequest, "please provide a valid email address")
	case errors.Is(err, repository.ErrProfileNotFound):
		respondError(w, http.StatusNotFound, "no profile found for this email address")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid email or password")
	case err != nil:
		respondInternal(w, err)
	default:
		respondSuccess(w, http.StatusOK, "login successful")
	}
}

// AdminLogin handles POST /api/admin/login against the configured credential.
func (h *authHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	err := decodeBody(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.auth.AdminLogin(req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrAdminNotConfigured):
		respondError(w, http.StatusServiceUnavailable, "admin login is not configured")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid email or password")
	case err != nil:
		respondInternal(w, err)
	default:
		respondSuccess(w, http.StatusOK, "login successful")
	}
}
