package registration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fitlane/trainer-scheduler/internal/audit"
	"github.com/fitlane/trainer-scheduler/internal/domain/bookingerr"
	domain "github.com/fitlane/trainer-scheduler/internal/domain/registration"
	"github.com/fitlane/trainer-scheduler/internal/locks"
	"github.com/fitlane/trainer-scheduler/internal/metrics"
	"github.com/fitlane/trainer-scheduler/internal/models"
	"github.com/fitlane/trainer-scheduler/internal/timezone"
)

// MaxSlotsPerRequest caps how many slots one booking request may select.
const MaxSlotsPerRequest = 4

// TokenStore reserves batch request tokens so a retried call with the same
// token cannot commit a second batch. Reserve returns false when the token
// was already taken; Release frees a token whose batch never committed.
type TokenStore interface {
	Reserve(ctx context.Context, token string) (bool, error)
	Release(ctx context.Context, token string) error
}

// Auditor receives audit events emitted by the registration use cases. The
// production wiring passes the async audit dispatcher.
type Auditor interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// INPUT
// ======================================================

type CreateBatchInput struct {
	CustomerID uint
	TrainerID  uint
	ServiceID  uint

	StartDate string // "2006-01-02", club timezone
	Notes     string

	SlotIDs []uint

	// RequestToken is an optional caller-supplied idempotency key.
	RequestToken string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBatch struct {
	repo   domain.Repository
	tokens TokenStore
	locks  *locks.TrainerLocks
	audit  Auditor
	tz     string
	now    func() time.Time
}

func NewCreateBatch(
	repo domain.Repository,
	tokens TokenStore,
	locks *locks.TrainerLocks,
	audit Auditor,
	tz string,
) *CreateBatch {
	return &CreateBatch{
		repo:   repo,
		tokens: tokens,
		locks:  locks,
		audit:  audit,
		tz:     tz,
		now:    func() time.Time { return timezone.NowIn(tz) },
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBatch) Execute(
	ctx context.Context,
	in CreateBatchInput,
) ([]models.ServiceRegistration, error) {

	if len(in.SlotIDs) == 0 {
		return nil, bookingerr.Validation("missing_slots", "at least one slot must be selected")
	}
	if len(in.SlotIDs) > MaxSlotsPerRequest {
		return nil, bookingerr.Capacity(
			"too_many_slots",
			fmt.Sprintf("a booking request may select at most %d slots", MaxSlotsPerRequest),
		)
	}

	seen := make(map[uint]bool, len(in.SlotIDs))
	for _, id := range in.SlotIDs {
		if seen[id] {
			return nil, bookingerr.Capacity(
				"duplicate_slot",
				fmt.Sprintf("slot #%d is selected more than once", id),
			)
		}
		seen[id] = true
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

	// Reserve the idempotency token before committing anything: a replayed
	// request fails here instead of creating a second batch.
	reserved := false
	if in.RequestToken != "" {
		ok, err := uc.tokens.Reserve(ctx, in.RequestToken)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, bookingerr.Conflict(
				"duplicate_request",
				"a batch with this request token was already created",
			)
		}
		reserved = true
	}

	batchID := uuid.New().String()
	regs := make([]models.ServiceRegistration, 0, len(in.SlotIDs))
	for _, slotID := range in.SlotIDs {
		id := slotID
		regs = append(regs, models.ServiceRegistration{
			BatchID:          batchID,
			CustomerID:       in.CustomerID,
			TrainerID:        in.TrainerID,
			ServiceID:        in.ServiceID,
			SlotID:           &id,
			StartDate:        startDate,
			NumberOfSessions: 1,
			TotalPrice:       service.Price,
			Status:           string(domain.InitialStatus()),
			Notes:            in.Notes,
		})
	}

	// Serialize slot validation and insert against other bookings and slot
	// writes for this trainer.
	uc.locks.Lock(in.TrainerID)
	defer uc.locks.Unlock(in.TrainerID)

	created, err := uc.repo.CreateBatchAtomic(ctx, in.TrainerID, in.SlotIDs, regs)
	if err != nil {
		// Nothing was committed; free the token so an honest retry with the
		// same one is not refused as a duplicate.
		if reserved {
			_ = uc.tokens.Release(ctx, in.RequestToken)
		}
		return nil, err
	}

	metrics.IncRegistrationsCreated("batch", len(created))
	uc.audit.Dispatch(audit.Event{
		TrainerID: in.TrainerID,
		UserID:    &in.CustomerID,
		Action:    "registration_batch_created",
		Entity:    "service_registration",
		Metadata: map[string]any{
			"batch_id": batchID,
			"slots":    in.SlotIDs,
		},
	})

	return created, nil
}

// validateStartDate parses the date and enforces the "minimum tomorrow" rule
// at day granularity in the club timezone.
func validateStartDate(tz, dateStr string, now time.Time) (time.Time, error) {
	startDate, err := timezone.ParseDate(tz, dateStr)
	if err != nil {
		return time.Time{}, bookingerr.Validation("invalid_start_date", "start date must be a YYYY-MM-DD value")
	}

	today := timezone.StartOfDay(now)
	if !startDate.After(today) {
		return time.Time{}, bookingerr.Validation("start_date_not_future", "start date must be later than today")
	}

	return startDate, nil
}
