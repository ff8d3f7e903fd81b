package registration

import (
	"context"

	"github.com/fitlane/trainer-scheduler/internal/audit"
	"github.com/fitlane/trainer-scheduler/internal/domain/bookingerr"
	domain "github.com/fitlane/trainer-scheduler/internal/domain/registration"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

type RecordProgress struct {
	repo  domain.Repository
	audit Auditor
}

func NewRecordProgress(
	repo domain.Repository,
	audit Auditor,
) *RecordProgress {
	return &RecordProgress{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RecordProgress) Execute(
	ctx context.Context,
	trainerID uint,
	registrationID uint,
	completedSessions int,
) (*models.ServiceRegistration, error) {

	reg, err := uc.repo.WithRegistration(ctx, registrationID, func(r *models.ServiceRegistration) error {
		if r.TrainerID != trainerID {
			return bookingerr.NotFound("registration_not_found", "registration not found")
		}
		return domain.RecordProgress(r, completedSessions)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TrainerID: trainerID,
		UserID:    &trainerID,
		Action:    "registration_progress_recorded",
		Entity:    "service_registration",
		EntityID:  &reg.ID,
		Metadata:  map[string]any{"completed_sessions": completedSessions},
	})

	return reg, nil
}
