package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlane/trainer-scheduler/internal/domain/bookingerr"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"identical", 540, 600, 540, 600, true},
		{"partial overlap", 540, 600, 570, 630, true},
		{"containment", 540, 720, 600, 660, true},
		{"back to back", 540, 600, 600, 660, false},
		{"back to back reversed", 600, 660, 540, 600, false},
		{"disjoint", 540, 600, 720, 780, false},
		{"one minute overlap", 540, 601, 600, 660, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd), "predicate must be symmetric")
		})
	}
}

func TestParseMinutes(t *testing.T) {
	min, err := ParseMinutes("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, min)

	min, err = ParseMinutes("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, min)

	_, err = ParseMinutes("25:00")
	assert.Error(t, err)

	_, err = ParseMinutes("9h30")
	assert.Error(t, err)
}

func TestSlotsOverlap_DifferentWeekdays(t *testing.T) {
	a := models.WeeklySlot{Weekday: 1, StartTime: "09:00", EndTime: "10:00"}
	b := models.WeeklySlot{Weekday: 2, StartTime: "09:00", EndTime: "10:00"}

	assert.False(t, SlotsOverlap(a, b))

	b.Weekday = 1
	assert.True(t, SlotsOverlap(a, b))
}

func TestValidateSlot(t *testing.T) {
	tests := []struct {
		name     string
		weekday  int
		start    string
		end      string
		wantCode string
	}{
		{"valid", 1, "09:00", "10:00", ""},
		{"weekday too low", -1, "09:00", "10:00", "invalid_weekday"},
		{"weekday too high", 7, "09:00", "10:00", "invalid_weekday"},
		{"bad start", 1, "late", "10:00", "invalid_start_time"},
		{"bad end", 1, "09:00", "soon", "invalid_end_time"},
		{"start equals end", 1, "09:00", "09:00", "start_after_end"},
		{"start after end", 1, "10:00", "09:00", "start_after_end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			startMin, endMin, err := ValidateSlot(tt.weekday, tt.start, tt.end)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Less(t, startMin, endMin)
				return
			}
			require.Error(t, err)
			assert.True(t, bookingerr.HasCode(err, tt.wantCode))
			assert.True(t, bookingerr.IsKind(err, bookingerr.KindValidation))
		})
	}
}

func TestFindConflict(t *testing.T) {
	existing := []models.WeeklySlot{
		{ID: 1, Weekday: 1, StartTime: "09:00", EndTime: "10:00"},
		{ID: 2, Weekday: 1, StartTime: "14:00", EndTime: "16:00"},
		{ID: 3, Weekday: 3, StartTime: "09:00", EndTime: "10:00"},
	}

	hit := FindConflict(existing, models.WeeklySlot{Weekday: 1, StartTime: "15:00", EndTime: "17:00"})
	require.NotNil(t, hit)
	assert.Equal(t, uint(2), hit.ID)

	// Back to back with slot 1 and slot 2 on the same day fits.
	assert.Nil(t, FindConflict(existing, models.WeeklySlot{Weekday: 1, StartTime: "10:00", EndTime: "14:00"}))

	// A stored slot never conflicts with itself.
	assert.Nil(t, FindConflict(existing, existing[0]))
}
