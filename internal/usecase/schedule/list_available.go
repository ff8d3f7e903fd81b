package schedule

import (
	"context"

	domain "github.com/fitlane/trainer-scheduler/internal/domain/schedule"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

type ListAvailable struct {
	repo domain.Repository
}

func NewListAvailable(repo domain.Repository) *ListAvailable {
	return &ListAvailable{repo: repo}
}

// Execute returns every slot of the trainer ordered by weekday then start
// time. The ordering is part of the contract: callers group by day and rely
// on a deterministic sequence.
func (uc *ListAvailable) Execute(
	ctx context.Context,
	trainerID uint,
) ([]models.WeeklySlot, error) {

	slots, err := uc.repo.ListSlotsByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	if slots == nil {
		slots = []models.WeeklySlot{}
	}
	return slots, nil
}
