package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fitlane/trainer-scheduler/internal/domain/bookingerr"
	domain "github.com/fitlane/trainer-scheduler/internal/domain/registration"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

type RegistrationGormRepository struct {
	db *gorm.DB
}

func NewRegistrationGormRepository(db *gorm.DB) *RegistrationGormRepository {
	return &RegistrationGormRepository{db: db}
}

// --------------------------------------------------
// Service catalog
// --------------------------------------------------

func (r *RegistrationGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.TrainerService, error) {

	var service models.TrainerService
	if err := r.db.WithContext(ctx).First(&service, serviceID).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Registration (create)
// --------------------------------------------------

func (r *RegistrationGormRepository) CreateRegistration(
	ctx context.Context,
	reg *models.ServiceRegistration,
) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *RegistrationGormRepository) CreateBatchAtomic(
	ctx context.Context,
	trainerID uint,
	slotIDs []uint,
	regs []models.ServiceRegistration,
) ([]models.ServiceRegistration, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Lock the selected slots so a concurrent removal or booking for
		// the same trainer waits until this batch commits or rolls back.
		var slots []models.WeeklySlot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ? AND trainer_id = ?", slotIDs, trainerID).
			Find(&slots).Error; err != nil {
			return err
		}

		if len(slots) != len(slotIDs) {
			return bookingerr.Conflict(
				"slot_unavailable",
				"one of the selected slots no longer exists for this trainer",
			)
		}

		return tx.Create(&regs).Error
	})
	if err != nil {
		return nil, err
	}

	return regs, nil
}

// --------------------------------------------------
// Registration (state change)
// --------------------------------------------------

func (r *RegistrationGormRepository) WithRegistration(
	ctx context.Context,
	id uint,
	fn func(*models.ServiceRegistration) error,
) (*models.ServiceRegistration, error) {

	var reg models.ServiceRegistration

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Row lock serializes concurrent transitions on the same
		// registration (e.g. customer cancel vs trainer approve).
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reg, id).Error; err != nil {
			return bookingerr.NotFound("registration_not_found", "registration not found")
		}

		if err := fn(&reg); err != nil {
			return err
		}

		return tx.Save(&reg).Error
	})
	if err != nil {
		return nil, err
	}

	return &reg, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *RegistrationGormRepository) ListByCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.ServiceRegistration, error) {

	var regs []models.ServiceRegistration
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&regs).Error; err != nil {
		return nil, err
	}

	return regs, nil
}

func (r *RegistrationGormRepository) ListByTrainer(
	ctx context.Context,
	trainerID uint,
) ([]models.ServiceRegistration, error) {

	var regs []models.ServiceRegistration
	if err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("created_at DESC").
		Find(&regs).Error; err != nil {
		return nil, err
	}

	return regs, nil
}

func (r *RegistrationGormRepository) ListPendingInWindow(
	ctx context.Context,
	trainerID uint,
	after time.Time,
	until time.Time,
) ([]models.ServiceRegistration, error) {

	var regs []models.ServiceRegistration
	if err := r.db.WithContext(ctx).
		Where(
			"trainer_id = ? AND status = ? AND created_at > ? AND created_at <= ?",
			trainerID, "pending", after, until,
		).
		Order("created_at ASC").
		Find(&regs).Error; err != nil {
		return nil, err
	}

	return regs, nil
}

func (r *RegistrationGormRepository) ListAllPendingInWindow(
	ctx context.Context,
	after time.Time,
	until time.Time,
) ([]models.ServiceRegistration, error) {

	var regs []models.ServiceRegistration
	if err := r.db.WithContext(ctx).
		Where(
			"status = ? AND created_at > ? AND created_at <= ?",
			"pending", after, until,
		).
		Order("created_at ASC").
		Find(&regs).Error; err != nil {
		return nil, err
	}

	return regs, nil
}

// Compile-time check
var _ domain.Repository = (*RegistrationGormRepository)(nil)
