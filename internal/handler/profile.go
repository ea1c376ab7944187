package handler

import (
	"errors"
	"net/http"

	"github.com/gridshare/landing/internal/repository"
	"github.com/gridshare/landing/internal/service"
)

type profileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *profileHandler {
	return &profileHandler{profiles: profiles}
}

// Upsert handles POST /api/profile. Creating requires a password; updating
// without one keeps the stored digest.
func (h *profileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Bio      string `json:"bio"`
		Password string `json:"password"`
	}

	err := decodeBody(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.profiles.Upsert(req.Email, req.Name, req.Bio, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		respondError(w, http.StatusBadRequest, "please provide a valid email address")
	case errors.Is(err, service.ErrInvalidName):
		respondError(w, http.StatusBadRequest, "please provide a name")
	case errors.Is(err, service.ErrInvalidBio):
		respondError(w, http.StatusBadRequest, "please provide a bio")
	case errors.Is(err, service.ErrPasswordRequired):
		respondError(w, http.StatusBadRequest, "a password is required to create a profile")
	case errors.Is(err, service.ErrWeakPassword):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrSubscriptionNotFound):
		respondError(w, http.StatusNotFound, "no subscription found for this email address")
	case err != nil:
		respondInternal(w, err)
	case result.Created:
		respondSuccess(w, http.StatusOK, "profile created")
	default:
		respondSuccess(w, http.StatusOK, "profile updated")
	}
}
