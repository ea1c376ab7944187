package app

import (
	"fmt"

	"github.com/gridshare/landing/internal/config"
	"github.com/gridshare/landing/internal/db"
	"github.com/gridshare/landing/internal/mailer"
	"github.com/gridshare/landing/internal/repository"
	"github.com/gridshare/landing/internal/service"
	"github.com/gridshare/landing/internal/task"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	Tasks               *task.Runner
	SubscriptionService *service.SubscriptionService
	ProfileService      *service.ProfileService
	AuthService         *service.AuthService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations, then repair legacy databases that predate
	// the token and password columns.
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}
	err = db.EnsureSchema(database, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %v", err)
	}

	// Repositories
	subscriptionRepository := repository.NewSubscriptionRepository(database)
	profileRepository := repository.NewProfileRepository(database)

	// Email provider, chosen once from configuration
	mail := mailer.New(cfg)

	// Background executor for fire-and-forget email sends
	tasks := task.NewRunner(64)

	// Services
	authService := service.NewAuthService(
		profileRepository,
		cfg.AdminEmail,
		cfg.AdminPassword,
		cfg.AdminPasswordHash,
	)
	subscriptionService := service.NewSubscriptionService(subscriptionRepository, mail, tasks)
	profileService := service.NewProfileService(profileRepository, subscriptionRepository, authService)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		Tasks:               tasks,
		SubscriptionService: subscriptionService,
		ProfileService:      profileService,
		AuthService:         authService,
	}, nil
}

func (a *App) Close() error {
	if a.Tasks != nil {
		a.Tasks.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
