package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed migrations/001_initial.up.sql
var initialMigrationSQL string

//go:embed migrations/002_contact_status.up.sql
var contactStatusSQL string

var requiredTables = []string{
	"users",
	"refresh_tokens",
	"products",
	"cart_items",
	"wishlist_items",
	"contact_submissions",
}

func (db *DB) EnsureSchema(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	exists, err := db.hasAllRequiredTables(ctx)
	if err != nil {
		return fmt.Errorf("check existing tables: %w", err)
	}

	if !exists {
		slog.Info("database schema missing tables; applying initial migration")
		if _, err := db.Pool.Exec(ctx, initialMigrationSQL); err != nil {
			return fmt.Errorf("apply initial migration: %w", err)
		}

		exists, err = db.hasAllRequiredTables(ctx)
		if err != nil {
			return fmt.Errorf("re-check tables after migration: %w", err)
		}

		if !exists {
			return fmt.Errorf("schema initialization incomplete: required tables are still missing")
		}
	}

	// 002: contact triage status (idempotent, IF NOT EXISTS guards).
	if err := db.applyContactStatus(ctx); err != nil {
		return fmt.Errorf("apply contact status migration: %w", err)
	}

	slog.Info("database schema ensured")
	return nil
}

// applyContactStatus runs migration 002 idempotently for databases created
// before contact submissions carried a triage state.
func (db *DB) applyContactStatus(ctx context.Context) error {
	var hasColumn bool
	err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_schema = 'public'
			  AND table_name = 'contact_submissions'
			  AND column_name = 'status'
		)
	`).Scan(&hasColumn)
	if err != nil {
		return fmt.Errorf("check contact status column: %w", err)
	}

	if !hasColumn {
		slog.Info("applying contact status migration (002)")
		if _, err := db.Pool.Exec(ctx, contactStatusSQL); err != nil {
			return fmt.Errorf("exec contact status SQL: %w", err)
		}
		slog.Info("contact status migration applied")
	}

	return nil
}

func (db *DB) hasAllRequiredTables(ctx context.Context) (bool, error) {
	var count int
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_name = ANY($1)
	`, requiredTables).Scan(&count)
	if err != nil {
		return false, err
	}

	return count == len(requiredTables), nil
}
