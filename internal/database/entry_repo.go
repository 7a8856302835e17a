package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shubh-37/journal-companion/internal/models"
)

type EntryRepository struct {
	db *DB
}

func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Health pings the pool backing the repository
func (r *EntryRepository) Health(ctx context.Context) error {
	return r.db.Health(ctx)
}

// LoadEntries returns the whole collection in stored order
func (r *EntryRepository) LoadEntries(ctx context.Context) ([]models.JournalEntry, error) {
	query := `
		SELECT id, to_char(entry_date, 'YYYY-MM-DD'), mode, text, conversation, sentiment, themes, goal, created_at, updated_at
		FROM journal_entries
		ORDER BY position, entry_date, mode
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var e models.JournalEntry
		err := rows.Scan(
			&e.ID,
			&e.Date,
			&e.Mode,
			&e.Text,
			&e.Conversation,
			&e.Sentiment,
			&e.Themes,
			&e.Goal,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if e.Mode == models.ModeVenting {
			e.Conversation = nil
		}
		if e.Themes == nil {
			e.Themes = []string{}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// SaveEntries replaces the whole collection in one transaction
func (r *EntryRepository) SaveEntries(ctx context.Context, entries []models.JournalEntry) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries`); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}

	query := `
		INSERT INTO journal_entries (id, entry_date, mode, text, conversation, sentiment, themes, goal, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	batch := &pgx.Batch{}
	for i, e := range entries {
		conversation := e.Conversation
		if conversation == nil {
			conversation = []models.Turn{}
		}
		themes := e.Themes
		if themes == nil {
			themes = []string{}
		}
		batch.Queue(query,
			e.ID,
			e.Date,
			string(e.Mode),
			e.Text,
			conversation,
			string(e.Sentiment),
			themes,
			e.Goal,
			i,
			e.CreatedAt,
			e.UpdatedAt,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert entries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit entries: %w", err)
	}

	return nil
}
