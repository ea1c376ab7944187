package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gridshare/landing/internal/app"
	"github.com/gridshare/landing/internal/handler"
	"github.com/gridshare/landing/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	subscription := handler.NewSubscriptionHandler(app.SubscriptionService)
	confirm := handler.NewConfirmHandler(app.SubscriptionService, app.Cfg.AppName)
	profile := handler.NewProfileHandler(app.ProfileService)
	auth := handler.NewAuthHandler(app.AuthService)
	health := handler.NewHealthHandler(app.DB)
	static := handler.NewStaticHandler(app.Cfg.StaticDir)

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogging)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.Cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Bare OPTIONS requests (CORS preflights are intercepted by the cors
	// middleware before reaching this).
	r.Options("/*", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/health", health.Health)
	r.Get("/confirm", confirm.ConfirmPage)

	// Login endpoints are rate limited per IP.
	loginLimit := middleware.RateLimit(5, 15*time.Minute)
	subscribeLimit := middleware.RateLimit(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.With(subscribeLimit).Post("/subscribe", subscription.Subscribe)
		r.Post("/check", subscription.Check)
		r.Post("/profile", profile.Upsert)
		r.With(loginLimit).Post("/login", auth.MemberLogin)
		r.With(loginLimit).Post("/admin/login", auth.AdminLogin)
	})

	// Unmatched paths fall through to the static-asset collaborator.
	r.NotFound(static.ServeHTTP)

	return r
}
