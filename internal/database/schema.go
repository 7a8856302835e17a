package database

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"
)

// CreateTables creates all necessary database tables
func (db *DB) CreateTables(ctx context.Context) error {
	logx.Info("Creating database tables...")

	// Journal entries, one row per (date, mode)
	entriesTable := `
	CREATE TABLE IF NOT EXISTS journal_entries (
		id UUID PRIMARY KEY,
		entry_date DATE NOT NULL,
		mode VARCHAR(20) NOT NULL,
		text TEXT NOT NULL DEFAULT '',
		conversation JSONB NOT NULL DEFAULT '[]',
		sentiment VARCHAR(20) NOT NULL DEFAULT '',
		themes TEXT[] NOT NULL DEFAULT '{}',
		goal TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (entry_date, mode)
	);
	CREATE INDEX IF NOT EXISTS idx_journal_entries_date ON journal_entries(entry_date);
	`

	// Streak settings, a single row
	settingsTable := `
	CREATE TABLE IF NOT EXISTS streak_settings (
		id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		milestone INTEGER CHECK (milestone IS NULL OR milestone > 0),
		updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	);
	`

	// Saved writing prompts per date
	promptsTable := `
	CREATE TABLE IF NOT EXISTS journal_prompts (
		prompt_date DATE PRIMARY KEY,
		prompts TEXT[] NOT NULL DEFAULT '{}',
		updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	);
	`

	tables := []string{entriesTable, settingsTable, promptsTable}

	for _, table := range tables {
		if _, err := db.Pool.Exec(ctx, table); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}

	logx.Info("✅ All tables created successfully")
	return nil
}
