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

type detectionRecordRepo struct {
	db *sqlx.DB
}

// NewDetectionRecordRepo creates a new PostgreSQL-backed
// DetectionRecordRepository.
func NewDetectionRecordRepo(db *sqlx.DB) port.DetectionRecordRepository {
	return &detectionRecordRepo{db: db}
}

func (r *detectionRecordRepo) Upsert(ctx context.Context, rec *domain.DetectionRecord) error {
	now := time.Now().UTC()
	rec.UpdatedAt = now
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}

	query := `INSERT INTO detection_records
		(image_id, flyer_id, shop_name, item_name, processed_item_name,
		 item_price, processed_item_price,
		 item_member_price, processed_item_member_price,
		 item_initial_price, processed_item_initial_price,
		 whole_image_ocr_text, valid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (image_id) DO UPDATE SET
		 flyer_id = EXCLUDED.flyer_id,
		 shop_name = EXCLUDED.shop_name,
		 item_name = EXCLUDED.item_name,
		 processed_item_name = EXCLUDED.processed_item_name,
		 item_price = EXCLUDED.item_price,
		 processed_item_price = EXCLUDED.processed_item_price,
		 item_member_price = EXCLUDED.item_member_price,
		 processed_item_member_price = EXCLUDED.processed_item_member_price,
		 item_initial_price = EXCLUDED.item_initial_price,
		 processed_item_initial_price = EXCLUDED.processed_item_initial_price,
		 whole_image_ocr_text = EXCLUDED.whole_image_ocr_text,
		 valid = EXCLUDED.valid,
		 updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		rec.ImageID, rec.FlyerID, rec.ShopName, rec.ItemName, rec.ProcessedItemName,
		rec.ItemPrice, rec.ProcessedItemPrice,
		rec.ItemMemberPrice, rec.ProcessedItemMemberPrice,
		rec.ItemInitialPrice, rec.ProcessedItemInitialPrice,
		rec.WholeImageOCRText, rec.Valid, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("detectionRecordRepo.Upsert: %w", err)
	}
	return nil
}

func (r *detectionRecordRepo) GetByImageID(ctx context.Context, imageID string) (*domain.DetectionRecord, error) {
	var rec domain.DetectionRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM detection_records WHERE image_id = $1", imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("detectionRecordRepo.GetByImageID: %w", err)
	}
	return &rec, nil
}

func (r *detectionRecordRepo) ListByFlyer(ctx context.Context, flyerID uuid.UUID) ([]domain.DetectionRecord, error) {
	var recs []domain.DetectionRecord
	err := r.db.SelectContext(ctx, &recs,
		"SELECT * FROM detection_records WHERE flyer_id = $1 ORDER BY image_id", flyerID)
	if err != nil {
		return nil, fmt.Errorf("detectionRecordRepo.ListByFlyer: %w", err)
	}
	return recs, nil
}

func (r *detectionRecordRepo) ListByFlyers(ctx context.Context, flyerIDs []uuid.UUID) ([]domain.DetectionRecord, error) {
	if len(flyerIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		"SELECT * FROM detection_records WHERE flyer_id IN (?) ORDER BY image_id", flyerIDs)
	if err != nil {
		return nil, fmt.Errorf("detectionRecordRepo.ListByFlyers in: %w", err)
	}
	var recs []domain.DetectionRecord
	err = r.db.SelectContext(ctx, &recs, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("detectionRecordRepo.ListByFlyers: %w", err)
	}
	return recs, nil
}

func (r *detectionRecordRepo) List(ctx context.Context, offset, limit int) ([]domain.DetectionRecord, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM detection_records")
	if err != nil {
		return nil, 0, fmt.Errorf("detectionRecordRepo.List count: %w", err)
	}

	var recs []domain.DetectionRecord
	err = r.db.SelectContext(ctx, &recs,
		"SELECT * FROM detection_records ORDER BY created_at DESC, image_id OFFSET $1 LIMIT $2",
		offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("detectionRecordRepo.List: %w", err)
	}
	return recs, total, nil
}

func (r *detectionRecordRepo) SetValidByFlyer(ctx context.Context, flyerID uuid.UUID, valid bool) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE detection_records SET valid = $1, updated_at = $2 WHERE flyer_id = $3",
		valid, time.Now().UTC(), flyerID)
	if err != nil {
		return fmt.Errorf("detectionRecordRepo.SetValidByFlyer: %w", err)
	}
	return nil
}
