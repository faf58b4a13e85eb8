package validity_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"flyerwatch/internal/domain"
	"flyerwatch/internal/validity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func flyer(valid bool, from, to time.Time) domain.Flyer {
	return domain.Flyer{
		ID:        uuid.New(),
		FileID:    "file-1",
		ShopName:  "Lidl",
		ValidFrom: from,
		ValidTo:   to,
		Valid:     valid,
	}
}

func TestStateOf(t *testing.T) {
	from, to := day(2026, 6, 1), day(2026, 6, 14)

	tests := []struct {
		name  string
		today time.Time
		want  domain.ValidityState
	}{
		{"before window", day(2026, 5, 31), domain.ValidityPending},
		{"first day", day(2026, 6, 1), domain.ValidityValid},
		{"mid window", day(2026, 6, 7), domain.ValidityValid},
		{"last day", day(2026, 6, 14), domain.ValidityValid},
		{"day after", day(2026, 6, 15), domain.ValidityExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := flyer(false, from, to)
			assert.Equal(t, tt.want, validity.StateOf(f, tt.today))
		})
	}
}

func TestStateOf_DayGranularity(t *testing.T) {
	from, to := day(2026, 6, 1), day(2026, 6, 14)
	f := flyer(false, from, to)

	// late evening of the last day is still valid
	lastEvening := time.Date(2026, 6, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, domain.ValidityValid, validity.StateOf(f, lastEvening))

	// early morning of the first day already counts
	firstMorning := time.Date(2026, 6, 1, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, domain.ValidityValid, validity.StateOf(f, firstMorning))
}

func TestStateOf_SingleDayWindow(t *testing.T) {
	d := day(2026, 6, 5)
	f := flyer(false, d, d)

	assert.Equal(t, domain.ValidityPending, validity.StateOf(f, day(2026, 6, 4)))
	assert.Equal(t, domain.ValidityValid, validity.StateOf(f, d))
	assert.Equal(t, domain.ValidityExpired, validity.StateOf(f, day(2026, 6, 6)))
}

func TestScan_EmitsOnlyFlips(t *testing.T) {
	today := day(2026, 6, 7)

	opensToday := flyer(false, day(2026, 6, 7), day(2026, 6, 14))
	alreadyValid := flyer(true, day(2026, 6, 1), day(2026, 6, 14))
	expiresToday := flyer(true, day(2026, 6, 1), day(2026, 6, 6))
	stillPending := flyer(false, day(2026, 6, 10), day(2026, 6, 20))
	longExpired := flyer(false, day(2026, 5, 1), day(2026, 5, 14))

	changes := validity.Scan([]domain.Flyer{
		opensToday, alreadyValid, expiresToday, stillPending, longExpired,
	}, today)

	assert.Len(t, changes, 2)

	byID := make(map[uuid.UUID]domain.ValidityChange)
	for _, ch := range changes {
		byID[ch.FlyerID] = ch
	}

	opened := byID[opensToday.ID]
	assert.False(t, opened.OldValid)
	assert.True(t, opened.NewValid)
	assert.Equal(t, domain.ValidityValid, opened.State)

	expired := byID[expiresToday.ID]
	assert.True(t, expired.OldValid)
	assert.False(t, expired.NewValid)
	assert.Equal(t, domain.ValidityExpired, expired.State)
}

func TestScan_Idempotent(t *testing.T) {
	today := day(2026, 6, 7)
	f := flyer(false, day(2026, 6, 7), day(2026, 6, 14))

	changes := validity.Scan([]domain.Flyer{f}, today)
	assert.Len(t, changes, 1)

	// after the flag is applied, a rescan on the same day is a no-op
	f.Valid = changes[0].NewValid
	assert.Empty(t, validity.Scan([]domain.Flyer{f}, today))
}

func TestScan_EmptyInput(t *testing.T) {
	assert.Empty(t, validity.Scan(nil, day(2026, 6, 7)))
}
