package schedule

import (
	"context"

	"github.com/fitlane/trainer-scheduler/internal/audit"
	"github.com/fitlane/trainer-scheduler/internal/domain/bookingerr"
	domain "github.com/fitlane/trainer-scheduler/internal/domain/schedule"
	"github.com/fitlane/trainer-scheduler/internal/locks"
)

type RemoveSlot struct {
	repo  domain.Repository
	locks *locks.TrainerLocks
	audit Auditor
}

func NewRemoveSlot(
	repo domain.Repository,
	locks *locks.TrainerLocks,
	audit Auditor,
) *RemoveSlot {
	return &RemoveSlot{
		repo:  repo,
		locks: locks,
		audit: audit,
	}
}

func (uc *RemoveSlot) Execute(
	ctx context.Context,
	trainerID uint,
	slotID uint,
) error {

	slot, err := uc.repo.GetSlot(ctx, slotID)
	if err != nil {
		return bookingerr.NotFound("slot_not_found", "slot not found")
	}
	if slot.TrainerID != trainerID {
		return bookingerr.NotFound("slot_not_found", "slot not found")
	}

	uc.locks.Lock(trainerID)
	defer uc.locks.Unlock(trainerID)

	active, err := uc.repo.CountActiveRegistrationsBySlot(ctx, slotID)
	if err != nil {
		return err
	}
	if active > 0 {
		return bookingerr.InUse(
			"slot_in_use",
			"slot still has pending or approved registrations",
		)
	}

	if err := uc.repo.DeleteSlot(ctx, slotID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		TrainerID: trainerID,
		UserID:    &trainerID,
		Action:    "slot_removed",
		Entity:    "weekly_slot",
		EntityID:  &slotID,
	})

	return nil
}
