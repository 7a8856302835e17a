package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shubh-37/journal-companion/internal/models"
)

type SettingsRepository struct {
	db *DB
}

func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// LoadSettings returns the stored milestone, or empty settings before the
// first save
func (r *SettingsRepository) LoadSettings(ctx context.Context) (models.StreakSettings, error) {
	var milestone *int
	err := r.db.Pool.QueryRow(ctx, `SELECT milestone FROM streak_settings WHERE id = 1`).Scan(&milestone)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.StreakSettings{}, nil
	}
	if err != nil {
		return models.StreakSettings{}, fmt.Errorf("failed to load streak settings: %w", err)
	}
	return models.StreakSettings{Milestone: milestone}, nil
}

// SaveSettings upserts the single settings row
func (r *SettingsRepository) SaveSettings(ctx context.Context, settings models.StreakSettings) error {
	query := `
		INSERT INTO streak_settings (id, milestone, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET milestone = EXCLUDED.milestone, updated_at = NOW()
	`

	if _, err := r.db.Pool.Exec(ctx, query, settings.Milestone); err != nil {
		return fmt.Errorf("failed to save streak settings: %w", err)
	}

	return nil
}
