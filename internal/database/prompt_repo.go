package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shubh-37/journal-companion/internal/models"
)

type PromptRepository struct {
	db *DB
}

func NewPromptRepository(db *DB) *PromptRepository {
	return &PromptRepository{db: db}
}

// LoadPrompts returns every saved prompt set keyed by date
func (r *PromptRepository) LoadPrompts(ctx context.Context) (models.PromptSets, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT to_char(prompt_date, 'YYYY-MM-DD'), prompts FROM journal_prompts`)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts: %w", err)
	}
	defer rows.Close()

	sets := models.PromptSets{}
	for rows.Next() {
		var (
			date    string
			prompts []string
		)
		if err := rows.Scan(&date, &prompts); err != nil {
			return nil, fmt.Errorf("failed to scan prompts: %w", err)
		}
		if prompts == nil {
			prompts = []string{}
		}
		sets[date] = prompts
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prompts: %w", err)
	}

	return sets, nil
}

// SavePrompts replaces every saved prompt set in one transaction
func (r *PromptRepository) SavePrompts(ctx context.Context, sets models.PromptSets) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_prompts`); err != nil {
		return fmt.Errorf("failed to clear prompts: %w", err)
	}

	batch := &pgx.Batch{}
	for date, prompts := range sets {
		if prompts == nil {
			prompts = []string{}
		}
		batch.Queue(`INSERT INTO journal_prompts (prompt_date, prompts, updated_at) VALUES ($1, $2, NOW())`, date, prompts)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert prompts: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit prompts: %w", err)
	}

	return nil
}
