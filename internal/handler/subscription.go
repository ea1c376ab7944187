package handler

import (
	"errors"
	"net/http"

	"github.com/gridshare/landing/internal/service"
)

type subscriptionHandler struct {
	subscriptions *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptions *service.SubscriptionService) *subscriptionHandler {
	return &subscriptionHandler{subscriptions: subscriptions}
}

// Subscribe handles POST /api/subscribe. It answers 202 as soon as the
// subscription is recorded; the confirmation email is dispatched in the
// background and its outcome never reaches the caller.
func (h *subscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}

	err := decodeBody(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.subscriptions.Subscribe(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			respondError(w, http.StatusBadRequest, "please provide a valid email address")
			return
		}
		respondInternal(w, err)
		return
	}

	if result.AlreadyConfirmed {
		respondSuccess(w, http.StatusOK, "this email is already confirmed")
		return
	}

	respondSuccess(w, http.StatusAccepted, "confirmation email sent, please check your inbox")
}

// Check handles POST /api/check, a read-only probe of subscription state.
func (h *subscriptionHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}

	err := decodeBody(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.subscriptions.Check(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			respondError(w, http.StatusBadRequest, "please provide a valid email address")
			return
		}
		respondInternal(w, err)
		return
	}

	message := "this email is not subscribed"
	if result.Exists && result.Confirmed {
		message = "this email is subscribed and confirmed"
	} else if result.Exists {
		message = "this email is subscribed but not yet confirmed"
	}

	exists := result.Exists
	respondJSON(w, http.StatusOK, response{Success: true, Exists: &exists, Message: message})
}
