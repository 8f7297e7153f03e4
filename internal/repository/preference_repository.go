package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tawsila/internal/models"
)

var ErrPreferenceNotFound = errors.New("preference not found")

type PreferenceRepository struct {
	pool *pgxpool.Pool
}

func NewPreferenceRepository(pool *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{pool: pool}
}

func (r *PreferenceRepository) Get(ctx context.Context, userID string) (models.Preference, error) {
	const query = `
		SELECT user_id, language, theme, updated_at
		FROM user_preferences WHERE user_id = $1
	`

	row := r.pool.QueryRow(ctx, query, userID)
	var pref models.Preference
	if err := row.Scan(&pref.UserID, &pref.Language, &pref.Theme, &pref.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Preference{}, ErrPreferenceNotFound
		}
		return models.Preference{}, err
	}
	return pref, nil
}

func (r *PreferenceRepository) Save(ctx context.Context, pref models.Preference) error {
	const query = `
		INSERT INTO user_preferences (user_id, language, theme, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET language = EXCLUDED.language, theme = EXCLUDED.theme, updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query, pref.UserID, pref.Language, pref.Theme)
	return err
}
