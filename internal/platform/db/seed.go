package db

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"rti/internal/domain/auth"
	"rti/internal/platform/config"
)

// Seed creates the development admin user and a demo company. Idempotent;
// production deployments run with RUN_SEED disabled.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		log.Println("seed skipped: SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD not set")
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	if _, err := pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1, $2, 'admin')
    ON CONFLICT (email) DO NOTHING
  `, cfg.SeedAdminEmail, hash); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM companies").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if _, err := pool.Exec(ctx, `
      INSERT INTO companies (name) VALUES ('Demo Company Ltd')
    `); err != nil {
			return fmt.Errorf("seed demo company: %w", err)
		}
	}

	return nil
}
