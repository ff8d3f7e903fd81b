package schedule

import (
	"fmt"
	"time"

	"github.com/fitlane/trainer-scheduler/internal/domain/bookingerr"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

const timeLayout = "15:04"

// Overlaps tests two half-open minute intervals [aStart, aEnd) and
// [bStart, bEnd). Back-to-back intervals (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// ParseMinutes converts a "15:04" clock string to minutes since midnight.
func ParseMinutes(hm string) (int, error) {
	t, err := time.Parse(timeLayout, hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// SlotsOverlap reports whether two slots of the same trainer collide.
// Slots on different weekdays never collide.
func SlotsOverlap(a, b models.WeeklySlot) bool {
	if a.Weekday != b.Weekday {
		return false
	}

	aStart, err := ParseMinutes(a.StartTime)
	if err != nil {
		return false
	}
	aEnd, err := ParseMinutes(a.EndTime)
	if err != nil {
		return false
	}
	bStart, err := ParseMinutes(b.StartTime)
	if err != nil {
		return false
	}
	bEnd, err := ParseMinutes(b.EndTime)
	if err != nil {
		return false
	}

	return Overlaps(aStart, aEnd, bStart, bEnd)
}

// ValidateSlot checks weekday range and that start < end on the same day.
// Returns the parsed minute offsets for reuse by the caller.
func ValidateSlot(weekday int, start, end string) (int, int, error) {
	if weekday < 0 || weekday > 6 {
		return 0, 0, bookingerr.Validation("invalid_weekday", "weekday must be between 0 (Sunday) and 6 (Saturday)")
	}

	startMin, err := ParseMinutes(start)
	if err != nil {
		return 0, 0, bookingerr.Validation("invalid_start_time", fmt.Sprintf("start time %q is not a valid HH:MM value", start))
	}

	endMin, err := ParseMinutes(end)
	if err != nil {
		return 0, 0, bookingerr.Validation("invalid_end_time", fmt.Sprintf("end time %q is not a valid HH:MM value", end))
	}

	if startMin >= endMin {
		return 0, 0, bookingerr.Validation("start_after_end", "slot start time must be before its end time")
	}

	return startMin, endMin, nil
}

// FindConflict returns the first stored slot that collides with the candidate,
// or nil when the candidate fits.
func FindConflict(existing []models.WeeklySlot, candidate models.WeeklySlot) *models.WeeklySlot {
	for i := range existing {
		if existing[i].ID == candidate.ID && candidate.ID != 0 {
			continue
		}
		if SlotsOverlap(existing[i], candidate) {
			return &existing[i]
		}
	}
	return nil
}
