package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"flyerwatch/internal/domain"
	"flyerwatch/internal/port"
)

type flyerRepo struct {
	db *sqlx.DB
}

// NewFlyerRepo creates a new PostgreSQL-backed FlyerRepository.
func NewFlyerRepo(db *sqlx.DB) port.FlyerRepository {
	return &flyerRepo{db: db}
}

func (r *flyerRepo) Create(ctx context.Context, flyer *domain.Flyer) error {
	now := time.Now().UTC()
	flyer.CreatedAt = now
	flyer.UpdatedAt = now

	query := `INSERT INTO flyers
		(id, file_id, shop_name, page_keys, valid_from, valid_to, valid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		flyer.ID, flyer.FileID, flyer.ShopName, flyer.PageKeys,
		flyer.ValidFrom, flyer.ValidTo, flyer.Valid, flyer.CreatedAt, flyer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("flyerRepo.Create: %w", err)
	}
	return nil
}

func (r *flyerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flyer, error) {
	var flyer domain.Flyer
	err := r.db.GetContext(ctx, &flyer, "SELECT * FROM flyers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("flyerRepo.GetByID: %w", err)
	}
	return &flyer, nil
}

func (r *flyerRepo) List(ctx context.Context, offset, limit int) ([]domain.Flyer, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM flyers")
	if err != nil {
		return nil, 0, fmt.Errorf("flyerRepo.List count: %w", err)
	}

	var flyers []domain.Flyer
	err = r.db.SelectContext(ctx, &flyers,
		"SELECT * FROM flyers ORDER BY created_at DESC OFFSET $1 LIMIT $2", offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("flyerRepo.List: %w", err)
	}
	return flyers, total, nil
}

func (r *flyerRepo) ListAll(ctx context.Context) ([]domain.Flyer, error) {
	var flyers []domain.Flyer
	err := r.db.SelectContext(ctx, &flyers, "SELECT * FROM flyers ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("flyerRepo.ListAll: %w", err)
	}
	return flyers, nil
}

func (r *flyerRepo) UpdateValid(ctx context.Context, id uuid.UUID, valid bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE flyers SET valid = $1, updated_at = $2 WHERE id = $3",
		valid, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("flyerRepo.UpdateValid: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("flyerRepo.UpdateValid rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
