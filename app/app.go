// Package app wires configuration, storage, the event bus and the modules into one process.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/DanielWijono/minton3t-ranking/app/eventbus"
	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest"
	"github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard"
	"github.com/DanielWijono/minton3t-ranking/app/modules/mvp"
	"github.com/DanielWijono/minton3t-ranking/app/observability"
	"github.com/DanielWijono/minton3t-ranking/config"
	"github.com/DanielWijono/minton3t-ranking/db/bundb"
	"github.com/go-chi/chi/v5"
)

// Modules holds the running modules.
type Modules struct {
	Leaderboard *leaderboard.Module
	MVP         *mvp.Module
	Ingest      *ingest.Module
}

// App is the assembled application.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bundb.DBService
	EventBus      eventbus.EventBus
	Router        chi.Router
	Modules       Modules
	wg            sync.WaitGroup
}

// NewApp connects to the database, applies migrations when configured and builds the modules.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	logger := obs.Logger

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Postgres.AutoMigrate {
		if err := bundb.Migrate(ctx, dbService.GetDB(), logger); err != nil {
			dbService.Close()
			return nil, fmt.Errorf("auto migration failed: %w", err)
		}
	}

	app := &App{
		Config:        cfg,
		Observability: obs,
		DB:            dbService,
		EventBus:      eventbus.NewEventBus(logger),
		Router:        NewRouter(obs),
	}

	if err := app.initializeModules(ctx); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// NewOfflineApp builds the modules without HTTP routes or event consumers, for the CLI.
func NewOfflineApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres, obs.Logger)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:        cfg,
		Observability: obs,
		DB:            dbService,
	}
	if err := app.initializeModules(ctx); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) initializeModules(ctx context.Context) error {
	db := app.DB.GetDB()

	lb, err := leaderboard.NewModule(ctx, app.Config, app.Observability, app.DB.Players, app.DB.Leaderboard, app.Router, db)
	if err != nil {
		return fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}
	app.Modules.Leaderboard = lb

	mvpModule, err := mvp.NewModule(ctx, app.Config, app.Observability, app.DB.Players, app.DB.MVP, app.EventBus, app.Router, db)
	if err != nil {
		return fmt.Errorf("failed to initialize MVP module: %w", err)
	}
	app.Modules.MVP = mvpModule

	ingestModule, err := ingest.NewModule(ctx, app.Config, app.Observability,
		lb.GetService(), mvpModule.GetService(), app.EventBus, app.Router)
	if err != nil {
		return fmt.Errorf("failed to initialize ingest module: %w", err)
	}
	app.Modules.Ingest = ingestModule

	return nil
}
