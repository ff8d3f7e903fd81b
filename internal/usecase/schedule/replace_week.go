package schedule

import (
	"context"
	"fmt"

	"github.com/fitlane/trainer-scheduler/internal/audit"
	"github.com/fitlane/trainer-scheduler/internal/domain/bookingerr"
	domain "github.com/fitlane/trainer-scheduler/internal/domain/schedule"
	"github.com/fitlane/trainer-scheduler/internal/locks"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type WeekSlotConfig struct {
	Weekday   int
	StartTime string
	EndTime   string
	Note      string
}

type ReplaceWeekInput struct {
	TrainerID uint
	Slots     []WeekSlotConfig
}

// ======================================================
// USE CASE
// ======================================================

// ReplaceWeek applies a trainer's full availability update. Slots are never
// edited in place: slots missing from the submitted set are removed, new
// ones are created, and slots matching an existing (weekday, start, end)
// keep their row and id. The whole update is refused if a removed slot still
// has active registrations.
type ReplaceWeek struct {
	repo  domain.Repository
	locks *locks.TrainerLocks
	audit Auditor
}

func NewReplaceWeek(
	repo domain.Repository,
	locks *locks.TrainerLocks,
	audit Auditor,
) *ReplaceWeek {
	return &ReplaceWeek{
		repo:  repo,
		locks: locks,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func slotKey(weekday int, start, end string) string {
	return fmt.Sprintf("%d/%s-%s", weekday, start, end)
}

func (uc *ReplaceWeek) Execute(
	ctx context.Context,
	in ReplaceWeekInput,
) ([]models.WeeklySlot, error) {

	incoming := make([]models.WeeklySlot, 0, len(in.Slots))
	for _, s := range in.Slots {
		if _, _, err := domain.ValidateSlot(s.Weekday, s.StartTime, s.EndTime); err != nil {
			return nil, err
		}
		incoming = append(incoming, models.WeeklySlot{
			TrainerID: in.TrainerID,
			Weekday:   s.Weekday,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Note:      s.Note,
		})
	}

	// Pairwise conflict check within the submitted week itself.
	for i := range incoming {
		for j := i + 1; j < len(incoming); j++ {
			if domain.SlotsOverlap(incoming[i], incoming[j]) {
				return nil, bookingerr.Conflict(
					"slot_overlap",
					fmt.Sprintf("submitted slots %s-%s and %s-%s overlap on weekday %d",
						incoming[i].StartTime, incoming[i].EndTime,
						incoming[j].StartTime, incoming[j].EndTime,
						incoming[i].Weekday),
				)
			}
		}
	}

	uc.locks.Lock(in.TrainerID)
	defer uc.locks.Unlock(in.TrainerID)

	existing, err := uc.repo.ListSlotsByTrainer(ctx, in.TrainerID)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(incoming))
	for _, s := range incoming {
		wanted[slotKey(s.Weekday, s.StartTime, s.EndTime)] = true
	}

	kept := make(map[string]bool, len(existing))
	var removeIDs []uint
	for _, s := range existing {
		key := slotKey(s.Weekday, s.StartTime, s.EndTime)
		if wanted[key] && !kept[key] {
			kept[key] = true
			continue
		}
		removeIDs = append(removeIDs, s.ID)
	}

	for _, id := range removeIDs {
		active, err := uc.repo.CountActiveRegistrationsBySlot(ctx, id)
		if err != nil {
			return nil, err
		}
		if active > 0 {
			return nil, bookingerr.InUse(
				"slot_in_use",
				fmt.Sprintf("slot #%d still has pending or approved registrations", id),
			)
		}
	}

	var create []models.WeeklySlot
	for _, s := range incoming {
		if kept[slotKey(s.Weekday, s.StartTime, s.EndTime)] {
			continue
		}
		create = append(create, s)
	}

	if err := uc.repo.ApplyWeekChange(ctx, in.TrainerID, removeIDs, create); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TrainerID: in.TrainerID,
		UserID:    &in.TrainerID,
		Action:    "availability_replaced",
		Entity:    "weekly_slot",
		Metadata: map[string]any{
			"removed": len(removeIDs),
			"created": len(create),
		},
	})

	return uc.repo.ListSlotsByTrainer(ctx, in.TrainerID)
}
