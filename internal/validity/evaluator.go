package validity

import (
	"time"

	"flyerwatch/internal/domain"
)

// StateOf derives a flyer's lifecycle state from its validity window. Dates
// compare at day granularity. Expired is terminal: a flyer past its window
// stays expired until new metadata replaces it.
func StateOf(f domain.Flyer, today time.Time) domain.ValidityState {
	day := truncate(today)
	switch {
	case day.After(truncate(f.ValidTo)):
		return domain.ValidityExpired
	case !day.Before(truncate(f.ValidFrom)):
		return domain.ValidityValid
	default:
		return domain.ValidityPending
	}
}

// Scan recomputes the valid flag for every flyer and returns a change only
// for entries whose flag actually flips, so downstream work stays
// proportional to change volume, not catalog size.
func Scan(flyers []domain.Flyer, today time.Time) []domain.ValidityChange {
	var changes []domain.ValidityChange
	for _, f := range flyers {
		state := StateOf(f, today)
		newValid := state == domain.ValidityValid
		if newValid == f.Valid {
			continue
		}
		changes = append(changes, domain.ValidityChange{
			FlyerID:  f.ID,
			FileID:   f.FileID,
			ShopName: f.ShopName,
			OldValid: f.Valid,
			NewValid: newValid,
			State:    state,
		})
	}
	return changes
}

func truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
