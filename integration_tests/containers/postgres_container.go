//go:build integration

// integration_tests/containers/postgres_container.go
package containers

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	dbName    = "testdb"
	user      = "testuser"
	password  = "testpass"
	imageName = "postgres:16-alpine"
)

// SetupPostgresContainer starts a Postgres testcontainer and returns the container and connection string.
func SetupPostgresContainer(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	pgContainer, err := postgres.Run(ctx,
		imageName,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		// The server restarts once after initdb, so the ready line shows up twice.
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(45*time.Second),
		),
	)
	if err != nil {
		if pgContainer != nil {
			if termErr := pgContainer.Terminate(ctx); termErr != nil {
				log.Printf("failed to terminate postgres container: %v", termErr)
			}
		}
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, "", fmt.Errorf("failed to get connection string: %w", err)
	}

	if err := waitForPing(ctx, connStr, 10, 500*time.Millisecond); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, "", err
	}

	log.Printf("Postgres container ready at %s", connStr)
	return pgContainer, connStr, nil
}

// waitForPing opens a pgx connection and pings until the server answers.
func waitForPing(ctx context.Context, connStr string, attempts int, delay time.Duration) error {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open pgx connection: %w", err)
	}
	defer db.Close()

	var lastErr error
	for i := 0; i < attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		lastErr = db.PingContext(pingCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("postgres not reachable after %d attempts: %w", attempts, lastErr)
}
