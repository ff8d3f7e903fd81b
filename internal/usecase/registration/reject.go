package registration

import (
	"context"

	"github.com/fitlane/trainer-scheduler/internal/audit"
	"github.com/fitlane/trainer-scheduler/internal/domain/bookingerr"
	domain "github.com/fitlane/trainer-scheduler/internal/domain/registration"
	"github.com/fitlane/trainer-scheduler/internal/metrics"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

type Reject struct {
	repo  domain.Repository
	audit Auditor
}

func NewReject(
	repo domain.Repository,
	audit Auditor,
) *Reject {
	return &Reject{
		repo:  repo,
		audit: audit,
	}
}

func (uc *Reject) Execute(
	ctx context.Context,
	trainerID uint,
	registrationID uint,
	reason string,
) (*models.ServiceRegistration, error) {

	reg, err := uc.repo.WithRegistration(ctx, registrationID, func(r *models.ServiceRegistration) error {
		if r.TrainerID != trainerID {
			return bookingerr.NotFound("registration_not_found", "registration not found")
		}
		return domain.Reject(r, reason)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncTransition(string(domain.StatusRejected))
	uc.audit.Dispatch(audit.Event{
		TrainerID: trainerID,
		UserID:    &trainerID,
		Action:    "registration_rejected",
		Entity:    "service_registration",
		EntityID:  &reg.ID,
		Metadata:  map[string]any{"reason": reason},
	})

	return reg, nil
}
