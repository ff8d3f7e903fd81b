package registration

import (
	"context"

	"github.com/fitlane/trainer-scheduler/internal/audit"
	"github.com/fitlane/trainer-scheduler/internal/domain/bookingerr"
	domain "github.com/fitlane/trainer-scheduler/internal/domain/registration"
	"github.com/fitlane/trainer-scheduler/internal/metrics"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

type Complete struct {
	repo  domain.Repository
	audit Auditor
}

func NewComplete(
	repo domain.Repository,
	audit Auditor,
) *Complete {
	return &Complete{
		repo:  repo,
		audit: audit,
	}
}

func (uc *Complete) Execute(
	ctx context.Context,
	trainerID uint,
	registrationID uint,
) (*models.ServiceRegistration, error) {

	reg, err := uc.repo.WithRegistration(ctx, registrationID, func(r *models.ServiceRegistration) error {
		if r.TrainerID != trainerID {
			return bookingerr.NotFound("registration_not_found", "registration not found")
		}
		return domain.Complete(r)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncTransition(string(domain.StatusCompleted))
	uc.audit.Dispatch(audit.Event{
		TrainerID: trainerID,
		UserID:    &trainerID,
		Action:    "registration_completed",
		Entity:    "service_registration",
		EntityID:  &reg.ID,
	})

	return reg, nil
}
