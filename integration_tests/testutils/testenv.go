//go:build integration

package testutils

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/DanielWijono/minton3t-ranking/app"
	"github.com/DanielWijono/minton3t-ranking/app/observability"
	"github.com/DanielWijono/minton3t-ranking/config"
	"github.com/DanielWijono/minton3t-ranking/db/bundb"
	"github.com/DanielWijono/minton3t-ranking/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
)

// TestEnvironment holds one Postgres container shared by every test of a package.
type TestEnvironment struct {
	Ctx           context.Context
	PgContainer   *postgres.PostgresContainer
	DB            *bun.DB
	DBService     *bundb.DBService
	Config        *config.Config
	Observability observability.Observability
}

// NewTestEnvironment starts Postgres, applies every module migration and returns the environment.
func NewTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	pgContainer, connStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Postgres: config.PostgresConfig{DSN: connStr},
		HTTP: config.HTTPConfig{
			Address:        "127.0.0.1:0",
			AllowedOrigins: []string{"*"},
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
		},
		Upload: config.UploadConfig{
			MaxBytes:  1 << 20,
			RateLimit: 1000,
			RateBurst: 1000,
		},
		Observability: config.ObservabilityConfig{
			ServiceName:    "minton3t-ranking-test",
			Environment:    "test",
			LogLevel:       "error",
			MetricsEnabled: true,
		},
	}
	obs := observability.NewWithWriter(config.ToObsConfig(cfg), io.Discard)

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres, obs.Logger)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := bundb.Migrate(ctx, dbService.GetDB(), obs.Logger); err != nil {
		dbService.Close()
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestEnvironment{
		Ctx:           ctx,
		PgContainer:   pgContainer,
		DB:            dbService.GetDB(),
		DBService:     dbService,
		Config:        cfg,
		Observability: obs,
	}, nil
}

// Reset empties the player and MVP tables. Stats and entries go with them through ON DELETE
// CASCADE; the seeded divisions stay.
func (env *TestEnvironment) Reset(t *testing.T) {
	t.Helper()
	if err := CleanupDatabase(env.Ctx, env.DB); err != nil {
		t.Fatalf("failed to reset database: %v", err)
	}
}

// NewApp builds the full application against the test database and starts its modules. The
// app is closed when the test ends.
func (env *TestEnvironment) NewApp(t *testing.T) *app.App {
	t.Helper()

	a, err := app.NewApp(env.Ctx, env.Config, env.Observability)
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}

	ctx, cancel := context.WithCancel(env.Ctx)
	var wg sync.WaitGroup
	wg.Add(3)
	go a.Modules.Leaderboard.Run(ctx, &wg)
	go a.Modules.MVP.Run(ctx, &wg)
	go a.Modules.Ingest.Run(ctx, &wg)

	select {
	case <-a.Modules.MVP.Running():
	case <-time.After(10 * time.Second):
		t.Fatal("MVP event router did not start")
	}

	t.Cleanup(func() {
		cancel()
		wg.Wait()
		a.Close()
	})
	return a
}

// Cleanup closes the database and terminates the container.
func (env *TestEnvironment) Cleanup() {
	if env.DBService != nil {
		if err := env.DBService.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
	if env.PgContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating PostgreSQL container: %v", err)
		}
	}
}
