package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcpvanhooren/pricesync/internal/config"
)

// Connect creates a connection pool for the configured catalog database.
func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	return ConnectTo(ctx, cfg, cfg.Name)
}

// ConnectTo creates a connection pool against a specific database on the
// configured server. Used when post-processing targets a database other
// than the catalog.
func ConnectTo(ctx context.Context, cfg config.DBConfig, dbName string) (*pgxpool.Pool, error) {
	connStr := BuildConnString(cfg, dbName)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
