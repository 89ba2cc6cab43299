package confidence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "minar/pkg/domain"
)

func TestCalculateDecayDate(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		level    Level
		wantDays int
		wantNil  bool
	}{
		{name: "unconfirmed never decays", level: LevelNone, wantNil: true},
		{name: "community lasts a year", level: LevelCommunity, wantDays: 365},
		{name: "admin-confirmed lasts half a year", level: LevelAdmin, wantDays: 180},
		{name: "verified lasts a quarter", level: LevelVerified, wantDays: 90},
		{name: "unknown level never decays", level: Level(7), wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDecayDate(tt.level, now)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, now.AddDate(0, 0, tt.wantDays), *got)
		})
	}
}

func TestNewRecordStartsUnconfirmed(t *testing.T) {
	now := time.Now()
	record := NewRecord(id.NewMasjidID(), now)

	assert.Equal(t, LevelNone, record.Level)
	assert.Nil(t, record.DecayDate)
	assert.Equal(t, now, record.LastConfirmationDate)
}

func TestSetLevelMaintainsDecayInvariant(t *testing.T) {
	now := time.Now()
	record := NewRecord(id.NewMasjidID(), now)

	// Decay date is set exactly when the level is above the floor.
	for _, level := range []Level{LevelCommunity, LevelAdmin, LevelVerified} {
		record.SetLevel(level, now)
		require.NotNil(t, record.DecayDate, "level %d must carry a decay date", level)
	}

	record.SetLevel(LevelNone, now)
	assert.Nil(t, record.DecayDate)
}
