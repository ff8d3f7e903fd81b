package registration

import (
	"context"
	"time"

	"github.com/fitlane/trainer-scheduler/internal/models"
)

type Repository interface {
	// -------- Service catalog (read model) --------
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.TrainerService, error)

	// -------- Registration (create) --------
	CreateRegistration(
		ctx context.Context,
		reg *models.ServiceRegistration,
	) error

	// CreateBatchAtomic creates every registration or none. Implementations
	// must lock the referenced slots, verify each one still exists and
	// belongs to the trainer, then insert all rows in one transaction.
	CreateBatchAtomic(
		ctx context.Context,
		trainerID uint,
		slotIDs []uint,
		regs []models.ServiceRegistration,
	) ([]models.ServiceRegistration, error)

	// -------- Registration (state change) --------
	// WithRegistration loads the row under a write lock, applies fn, and
	// persists the result only when fn succeeds. Serializes concurrent
	// transitions against the same registration.
	WithRegistration(
		ctx context.Context,
		id uint,
		fn func(*models.ServiceRegistration) error,
	) (*models.ServiceRegistration, error)

	// -------- Listings --------
	ListByCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.ServiceRegistration, error)

	ListByTrainer(
		ctx context.Context,
		trainerID uint,
	) ([]models.ServiceRegistration, error)

	// ListPendingInWindow returns pending registrations with
	// after < createdAt <= until, oldest first. The closed upper bound lets
	// the notification poll advance its checkpoint without double-reporting.
	ListPendingInWindow(
		ctx context.Context,
		trainerID uint,
		after time.Time,
		until time.Time,
	) ([]models.ServiceRegistration, error)

	// ListAllPendingInWindow is the trainer-agnostic variant used by the
	// server-side notification sweep.
	ListAllPendingInWindow(
		ctx context.Context,
		after time.Time,
		until time.Time,
	) ([]models.ServiceRegistration, error)
}
