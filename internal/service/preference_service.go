package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flyerwatch/internal/domain"
	"flyerwatch/internal/port"
	"flyerwatch/internal/price"
)

// PreferenceService manages per-user notification preferences.
type PreferenceService interface {
	Set(ctx context.Context, pref *domain.UserPreference) error
	GetByUserID(ctx context.Context, userID int64) (*domain.UserPreference, error)
	List(ctx context.Context) ([]domain.UserPreference, error)
	Delete(ctx context.Context, userID int64) error
}

type preferenceService struct {
	prefs  port.PreferenceRepository
	prices *price.Table
}

// NewPreferenceService creates a new PreferenceService implementation.
func NewPreferenceService(prefs port.PreferenceRepository, prices *price.Table) PreferenceService {
	return &preferenceService{prefs: prefs, prices: prices}
}

// Set validates shop names against the known shop table and normalizes
// tracked terms to lowercase before storing.
func (s *preferenceService) Set(ctx context.Context, pref *domain.UserPreference) error {
	for _, shop := range append(append(domain.StringList{}, pref.IncludedShops...), pref.ExcludedShops...) {
		if _, err := s.prices.Rule(shop); err != nil {
			return fmt.Errorf("preference: shop %q: %w", shop, domain.ErrUnknownShop)
		}
	}
	terms := make(domain.StringList, 0, len(pref.TrackedItems))
	for _, term := range pref.TrackedItems {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			terms = append(terms, term)
		}
	}
	pref.TrackedItems = terms
	pref.UpdatedAt = time.Now().UTC()
	return s.prefs.Upsert(ctx, pref)
}

func (s *preferenceService) GetByUserID(ctx context.Context, userID int64) (*domain.UserPreference, error) {
	return s.prefs.GetByUserID(ctx, userID)
}

func (s *preferenceService) List(ctx context.Context) ([]domain.UserPreference, error) {
	return s.prefs.ListAll(ctx)
}

func (s *preferenceService) Delete(ctx context.Context, userID int64) error {
	return s.prefs.Delete(ctx, userID)
}
