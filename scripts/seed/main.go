// Seeds a demo account with a few categories for local development.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tracklet/tracklet/internal/app"
	"github.com/tracklet/tracklet/internal/auth"
	"github.com/tracklet/tracklet/internal/platform/db"
)

func main() {
	ctx := context.Background()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := ensureSchema(ctx, pool); err != nil {
		logger.Error("ensure schema", slog.Any("error", err))
		os.Exit(1)
	}

	hash, err := auth.HashPassword("demo-password")
	if err != nil {
		logger.Error("hash password", slog.Any("error", err))
		os.Exit(1)
	}

	var userID int64
	err = db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO users (email, name, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
			RETURNING id
		`, "demo@tracklet.local", "Demo User", hash).Scan(&userID); err != nil {
			return err
		}

		seedCategories := []struct {
			label string
			color string
		}{
			{"Work", "#ff0000"},
			{"Health", "#10b981"},
			{"Reading", "#6366f1"},
		}
		for _, c := range seedCategories {
			if _, err := tx.Exec(ctx, `
				INSERT INTO categories (label, color, owner_id, created_at, updated_at)
				VALUES ($1, $2, $3, NOW(), NOW())
				ON CONFLICT (owner_id, label) DO NOTHING
			`, c.label, c.color, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("seed data", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("seed complete", slog.Int64("user_id", userID))
}

func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			ip         TEXT,
			ua         TEXT
		);
		CREATE INDEX IF NOT EXISTS sessions_expires_at_idx ON sessions (expires_at);

		CREATE TABLE IF NOT EXISTS categories (
			id         BIGSERIAL PRIMARY KEY,
			label      TEXT NOT NULL,
			color      TEXT NOT NULL,
			owner_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (owner_id, label)
		);
		CREATE INDEX IF NOT EXISTS categories_owner_id_idx ON categories (owner_id);
	`)
	return err
}
