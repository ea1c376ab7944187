package handler

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gridshare/landing/internal/repository"
	"github.com/gridshare/landing/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

var confirmTemplate = template.Must(template.ParseFS(templatesFS, "templates/confirm.html"))

type confirmHandler struct {
	subscriptions *service.SubscriptionService
	appName       string
}

func NewConfirmHandler(subscriptions *service.SubscriptionService, appName string) *confirmHandler {
	return &confirmHandler{subscriptions: subscriptions, appName: appName}
}

type confirmPageData struct {
	AppName string
	Title   string
	Message string
	Failed  bool
}

// ConfirmPage handles GET /confirm?token=&email= and renders a small HTML
// verdict page. Bad tokens and unknown emails get a 400 error page; a repeat
// confirmation is an idempotent success.
func (h *confirmHandler) ConfirmPage(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	email := r.URL.Query().Get("email")

	if token == "" || email == "" {
		h.render(w, http.StatusBadRequest, confirmPageData{
			Title:   "Invalid confirmation link",
			Message: "The confirmation link is missing its token or email. Please use the link from your email.",
			Failed:  true,
		})
		return
	}

	outcome, err := h.subscriptions.Confirm(token, email)
	switch {
	case errors.Is(err, repository.ErrSubscriptionNotFound):
		h.render(w, http.StatusBadRequest, confirmPageData{
			Title:   "Subscription not found",
			Message: "We couldn't find a subscription for this email address.",
			Failed:  true,
		})
	case errors.Is(err, service.ErrTokenMismatch):
		h.render(w, http.StatusBadRequest, confirmPageData{
			Title:   "Invalid or expired link",
			Message: "This confirmation link is not valid. Please subscribe again to receive a fresh one.",
			Failed:  true,
		})
	case err != nil:
		slog.Error("confirmation failed", "error", err)
		h.render(w, http.StatusInternalServerError, confirmPageData{
			Title:   "Something went wrong",
			Message: "We couldn't confirm your subscription right now. Please try again later.",
			Failed:  true,
		})
	case outcome == service.AlreadyConfirmed:
		h.render(w, http.StatusOK, confirmPageData{
			Title:   "Already confirmed",
			Message: "Your subscription was already confirmed. You're all set.",
		})
	default:
		h.render(w, http.StatusOK, confirmPageData{
			Title:   "Subscription confirmed",
			Message: "Thanks for confirming your email. Welcome to the cooperative!",
		})
	}
}

func (h *confirmHandler) render(w http.ResponseWriter, status int, data confirmPageData) {
	data.AppName = h.appName

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	err := confirmTemplate.Execute(w, data)
	if err != nil {
		slog.Error("failed to render confirmation page", "error", err)
	}
}
