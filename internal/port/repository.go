package port

import (
	"context"

	"github.com/google/uuid"

	"flyerwatch/internal/domain"
)

// FlyerRepository defines the contract for flyer metadata persistence.
type FlyerRepository interface {
	Create(ctx context.Context, flyer *domain.Flyer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flyer, error)
	List(ctx context.Context, offset, limit int) ([]domain.Flyer, int, error)
	ListAll(ctx context.Context) ([]domain.Flyer, error)
	UpdateValid(ctx context.Context, id uuid.UUID, valid bool) error
}

// DetectionRecordRepository defines the contract for detection record
// persistence. Upsert overwrites on image_id so reprocessing a page never
// duplicates records.
type DetectionRecordRepository interface {
	Upsert(ctx context.Context, rec *domain.DetectionRecord) error
	GetByImageID(ctx context.Context, imageID string) (*domain.DetectionRecord, error)
	ListByFlyer(ctx context.Context, flyerID uuid.UUID) ([]domain.DetectionRecord, error)
	ListByFlyers(ctx context.Context, flyerIDs []uuid.UUID) ([]domain.DetectionRecord, error)
	List(ctx context.Context, offset, limit int) ([]domain.DetectionRecord, int, error)
	SetValidByFlyer(ctx context.Context, flyerID uuid.UUID, valid bool) error
}

// PreferenceRepository defines the contract for subscriber preference
// persistence. ListAll returns a full snapshot for one regrouping run.
type PreferenceRepository interface {
	Upsert(ctx context.Context, pref *domain.UserPreference) error
	GetByUserID(ctx context.Context, userID int64) (*domain.UserPreference, error)
	ListAll(ctx context.Context) ([]domain.UserPreference, error)
	Delete(ctx context.Context, userID int64) error
}
