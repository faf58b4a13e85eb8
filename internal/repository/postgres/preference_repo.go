package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"flyerwatch/internal/domain"
	"flyerwatch/internal/port"
)

type preferenceRepo struct {
	db *sqlx.DB
}

// NewPreferenceRepo creates a new PostgreSQL-backed PreferenceRepository.
func NewPreferenceRepo(db *sqlx.DB) port.PreferenceRepository {
	return &preferenceRepo{db: db}
}

func (r *preferenceRepo) Upsert(ctx context.Context, pref *domain.UserPreference) error {
	now := time.Now().UTC()
	pref.UpdatedAt = now
	if pref.CreatedAt.IsZero() {
		pref.CreatedAt = now
	}

	query := `INSERT INTO user_preferences
		(user_id, included_shops, excluded_shops, tracked_items, wants_pdf_updates, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
		 included_shops = EXCLUDED.included_shops,
		 excluded_shops = EXCLUDED.excluded_shops,
		 tracked_items = EXCLUDED.tracked_items,
		 wants_pdf_updates = EXCLUDED.wants_pdf_updates,
		 updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		pref.UserID, pref.IncludedShops, pref.ExcludedShops, pref.TrackedItems,
		pref.WantsPDFUpdate, pref.CreatedAt, pref.UpdatedAt)
	if err != nil {
		return fmt.Errorf("preferenceRepo.Upsert: %w", err)
	}
	return nil
}

func (r *preferenceRepo) GetByUserID(ctx context.Context, userID int64) (*domain.UserPreference, error) {
	var pref domain.UserPreference
	err := r.db.GetContext(ctx, &pref,
		"SELECT * FROM user_preferences WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("preferenceRepo.GetByUserID: %w", err)
	}
	return &pref, nil
}

func (r *preferenceRepo) ListAll(ctx context.Context) ([]domain.UserPreference, error) {
	var prefs []domain.UserPreference
	err := r.db.SelectContext(ctx, &prefs,
		"SELECT * FROM user_preferences ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("preferenceRepo.ListAll: %w", err)
	}
	return prefs, nil
}

func (r *preferenceRepo) Delete(ctx context.Context, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM user_preferences WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("preferenceRepo.Delete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("preferenceRepo.Delete rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
