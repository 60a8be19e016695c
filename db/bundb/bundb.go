// Package bundb opens the Postgres connection and bundles the module repositories.
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	leaderboarddb "github.com/DanielWijono/minton3t-ranking/app/modules/leaderboard/infrastructure/repositories"
	mvpdb "github.com/DanielWijono/minton3t-ranking/app/modules/mvp/infrastructure/repositories"
	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/DanielWijono/minton3t-ranking/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// DBService holds the repositories sharing one connection pool.
type DBService struct {
	Players     playerdb.Repository
	Leaderboard leaderboarddb.Repository
	MVP         mvpdb.Repository
	db          *bun.DB
}

// GetDB returns the underlying database connection pool.
func (s *DBService) GetDB() *bun.DB {
	return s.db
}

// Close closes the connection pool.
func (s *DBService) Close() error {
	return s.db.Close()
}

// NewBunDBService connects to Postgres and builds the repositories.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig, logger *slog.Logger) (*DBService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.InfoContext(ctx, "Connected to Postgres")

	return NewTestDBService(BunDB(sqldb)), nil
}

// NewTestDBService builds the repositories on an existing connection.
func NewTestDBService(db *bun.DB) *DBService {
	return &DBService{
		Players:     playerdb.NewRepository(db),
		Leaderboard: leaderboarddb.NewRepository(db),
		MVP:         mvpdb.NewRepository(db),
		db:          db,
	}
}

// BunDB wraps a sql.DB connection pool in a bun.DB using the Postgres dialect.
func BunDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, pgdialect.New())
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}
