package registration

import (
	"context"
	"time"

	"github.com/fitlane/trainer-scheduler/internal/audit"
	"github.com/fitlane/trainer-scheduler/internal/domain/bookingerr"
	domain "github.com/fitlane/trainer-scheduler/internal/domain/registration"
	"github.com/fitlane/trainer-scheduler/internal/metrics"
	"github.com/fitlane/trainer-scheduler/internal/models"
	"github.com/fitlane/trainer-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateSingleInput struct {
	CustomerID uint
	TrainerID  uint
	ServiceID  uint

	StartDate        string
	NumberOfSessions int
	Notes            string
}

// ======================================================
// USE CASE
// ======================================================

// CreateSingle is the direct-registration path: no slot binding, an explicit
// session count, and total price = unit price x sessions.
type CreateSingle struct {
	repo  domain.Repository
	audit Auditor
	tz    string
	now   func() time.Time
}

func NewCreateSingle(
	repo domain.Repository,
	audit Auditor,
	tz string,
) *CreateSingle {
	return &CreateSingle{
		repo:  repo,
		audit: audit,
		tz:    tz,
		now:   func() time.Time { return timezone.NowIn(tz) },
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateSingle) Execute(
	ctx context.Context,
	in CreateSingleInput,
) (*models.ServiceRegistration, error) {

	if in.NumberOfSessions < 1 {
		return nil, bookingerr.Validation("invalid_session_count", "number of sessions must be at least 1")
	}

	startDate, err := validateStartDate(uc.tz, in.StartDate, uc.now())
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, bookingerr.NotFound("service_not_found", "service not found")
	}
	if !service.Active {
		return nil, bookingerr.Validation("service_inactive", "service is no longer offered")
	}

	reg := &models.ServiceRegistration{
		CustomerID:       in.CustomerID,
		TrainerID:        in.TrainerID,
		ServiceID:        in.ServiceID,
		StartDate:        startDate,
		NumberOfSessions: in.NumberOfSessions,
		TotalPrice:       service.Price * float64(in.NumberOfSessions),
		Status:           string(domain.InitialStatus()),
		Notes:            in.Notes,
	}

	if err := uc.repo.CreateRegistration(ctx, reg); err != nil {
		return nil, err
	}

	metrics.IncRegistrationsCreated("single", 1)
	uc.audit.Dispatch(audit.Event{
		TrainerID: in.TrainerID,
		UserID:    &in.CustomerID,
		Action:    "registration_created",
		Entity:    "service_registration",
		EntityID:  &reg.ID,
	})

	return reg, nil
}
