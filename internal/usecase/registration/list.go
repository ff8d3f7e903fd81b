package registration

import (
	"context"

	domain "github.com/fitlane/trainer-scheduler/internal/domain/registration"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

type List struct {
	repo domain.Repository
}

func NewList(repo domain.Repository) *List {
	return &List{repo: repo}
}

// ForCustomer returns every registration the customer owns, newest first.
func (uc *List) ForCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.ServiceRegistration, error) {

	regs, err := uc.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if regs == nil {
		regs = []models.ServiceRegistration{}
	}
	return regs, nil
}

// ForTrainer returns every registration addressed to the trainer, newest
// first. This is the feed the notification poller diffs against.
func (uc *List) ForTrainer(
	ctx context.Context,
	trainerID uint,
) ([]models.ServiceRegistration, error) {

	regs, err := uc.repo.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if regs == nil {
		regs = []models.ServiceRegistration{}
	}
	return regs, nil
}
