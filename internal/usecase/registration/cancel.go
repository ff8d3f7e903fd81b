package registration

import (
	"context"

	"github.com/fitlane/trainer-scheduler/internal/audit"
	"github.com/fitlane/trainer-scheduler/internal/domain/bookingerr"
	domain "github.com/fitlane/trainer-scheduler/internal/domain/registration"
	"github.com/fitlane/trainer-scheduler/internal/metrics"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

type Cancel struct {
	repo  domain.Repository
	audit Auditor
}

func NewCancel(
	repo domain.Repository,
	audit Auditor,
) *Cancel {
	return &Cancel{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancels a registration on behalf of its owning customer. Admins
// may cancel any registration; the state machine still decides legality.
func (uc *Cancel) Execute(
	ctx context.Context,
	actorID uint,
	isAdmin bool,
	registrationID uint,
) (*models.ServiceRegistration, error) {

	reg, err := uc.repo.WithRegistration(ctx, registrationID, func(r *models.ServiceRegistration) error {
		if !isAdmin && r.CustomerID != actorID {
			return bookingerr.NotFound("registration_not_found", "registration not found")
		}
		return domain.Cancel(r)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncTransition(string(domain.StatusCanceled))
	uc.audit.Dispatch(audit.Event{
		TrainerID: reg.TrainerID,
		UserID:    &actorID,
		Action:    "registration_canceled",
		Entity:    "service_registration",
		EntityID:  &reg.ID,
	})

	return reg, nil
}
