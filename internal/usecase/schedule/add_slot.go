package schedule

import (
	"context"
	"fmt"

	"github.com/fitlane/trainer-scheduler/internal/audit"
	"github.com/fitlane/trainer-scheduler/internal/domain/bookingerr"
	domain "github.com/fitlane/trainer-scheduler/internal/domain/schedule"
	"github.com/fitlane/trainer-scheduler/internal/locks"
	"github.com/fitlane/trainer-scheduler/internal/metrics"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

// Auditor receives audit events emitted by the schedule use cases. The
// production wiring passes the async audit dispatcher.
type Auditor interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// INPUT
// ======================================================

type AddSlotInput struct {
	TrainerID uint
	Weekday   int
	StartTime string
	EndTime   string
	Note      string
}

// ======================================================
// USE CASE
// ======================================================

type AddSlot struct {
	repo  domain.Repository
	locks *locks.TrainerLocks
	audit Auditor
}

func NewAddSlot(
	repo domain.Repository,
	locks *locks.TrainerLocks,
	audit Auditor,
) *AddSlot {
	return &AddSlot{
		repo:  repo,
		locks: locks,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *AddSlot) Execute(
	ctx context.Context,
	in AddSlotInput,
) (*models.WeeklySlot, error) {

	if _, _, err := domain.ValidateSlot(in.Weekday, in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	candidate := models.WeeklySlot{
		TrainerID: in.TrainerID,
		Weekday:   in.Weekday,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Note:      in.Note,
	}

	// Overlap check and insert must not interleave with another writer
	// for the same trainer.
	uc.locks.Lock(in.TrainerID)
	defer uc.locks.Unlock(in.TrainerID)

	existing, err := uc.repo.ListSlotsByTrainerDay(ctx, in.TrainerID, in.Weekday)
	if err != nil {
		return nil, err
	}

	if hit := domain.FindConflict(existing, candidate); hit != nil {
		metrics.IncSlotConflict()
		return nil, bookingerr.Conflict(
			"slot_overlap",
			fmt.Sprintf("slot collides with existing slot #%d (%s-%s)", hit.ID, hit.StartTime, hit.EndTime),
		)
	}

	if err := uc.repo.CreateSlot(ctx, &candidate); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TrainerID: in.TrainerID,
		UserID:    &in.TrainerID,
		Action:    "slot_added",
		Entity:    "weekly_slot",
		EntityID:  &candidate.ID,
	})

	return &candidate, nil
}
