package schedule

import (
	"context"

	"github.com/fitlane/trainer-scheduler/internal/models"
)

type Repository interface {
	// -------- Slots --------
	GetSlot(
		ctx context.Context,
		slotID uint,
	) (*models.WeeklySlot, error)

	ListSlotsByTrainer(
		ctx context.Context,
		trainerID uint,
	) ([]models.WeeklySlot, error)

	ListSlotsByTrainerDay(
		ctx context.Context,
		trainerID uint,
		weekday int,
	) ([]models.WeeklySlot, error)

	CreateSlot(
		ctx context.Context,
		slot *models.WeeklySlot,
	) error

	DeleteSlot(
		ctx context.Context,
		slotID uint,
	) error

	// ApplyWeekChange removes and creates slots in one transaction. Kept
	// slots are untouched so registrations keep their slot references.
	ApplyWeekChange(
		ctx context.Context,
		trainerID uint,
		removeIDs []uint,
		create []models.WeeklySlot,
	) error

	// -------- Registrations referencing slots --------
	CountActiveRegistrationsBySlot(
		ctx context.Context,
		slotID uint,
	) (int64, error)
}
