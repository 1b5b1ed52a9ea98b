package postgres

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables the repositories expect if they do not
// exist yet. Runs once at startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS applications (
			id UUID PRIMARY KEY,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			national_id TEXT NOT NULL,
			address TEXT NOT NULL,
			selected_job TEXT NOT NULL,
			education_level TEXT NOT NULL,
			transportation TEXT NOT NULL,
			documents JSONB NOT NULL DEFAULT '{}',
			experiences JSONB NOT NULL DEFAULT '[]',
			status TEXT NOT NULL DEFAULT 'under_review',
			status_history JSONB NOT NULL DEFAULT '[]',
			auto_score INTEGER NOT NULL DEFAULT 0,
			manual_score INTEGER NOT NULL DEFAULT 0,
			total_score INTEGER NOT NULL DEFAULT 0,
			admin_notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_applications_status ON applications (status)`,
		`CREATE INDEX IF NOT EXISTS idx_applications_selected_job ON applications (selected_job)`,
		`CREATE INDEX IF NOT EXISTS idx_applications_created_at ON applications (created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS admins (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	log.Println("Database schema ensured")
	return nil
}
