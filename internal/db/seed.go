package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"payhub/internal/auth"
	"payhub/internal/platform/config"
)

// Seed creates the administrator account when no row exists for the
// configured username. Existing credentials are never overwritten.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM admins WHERE username = $1", cfg.SeedAdminUsername).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, "INSERT INTO admins (username, password_hash) VALUES ($1, $2)", cfg.SeedAdminUsername, hash)
	return err
}
