package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/fitlane/trainer-scheduler/internal/domain/schedule"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *ScheduleGormRepository) GetSlot(
	ctx context.Context,
	slotID uint,
) (*models.WeeklySlot, error) {

	var slot models.WeeklySlot
	if err := r.db.WithContext(ctx).First(&slot, slotID).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *ScheduleGormRepository) ListSlotsByTrainer(
	ctx context.Context,
	trainerID uint,
) ([]models.WeeklySlot, error) {

	var slots []models.WeeklySlot
	if err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("weekday ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *ScheduleGormRepository) ListSlotsByTrainerDay(
	ctx context.Context,
	trainerID uint,
	weekday int,
) ([]models.WeeklySlot, error) {

	var slots []models.WeeklySlot
	if err := r.db.WithContext(ctx).
		Where("trainer_id = ? AND weekday = ?", trainerID, weekday).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *ScheduleGormRepository) CreateSlot(
	ctx context.Context,
	slot *models.WeeklySlot,
) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *ScheduleGormRepository) DeleteSlot(
	ctx context.Context,
	slotID uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.WeeklySlot{}, slotID).Error
}

func (r *ScheduleGormRepository) ApplyWeekChange(
	ctx context.Context,
	trainerID uint,
	removeIDs []uint,
	create []models.WeeklySlot,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if len(removeIDs) > 0 {
			if err := tx.
				Where("trainer_id = ? AND id IN ?", trainerID, removeIDs).
				Delete(&models.WeeklySlot{}).Error; err != nil {
				return err
			}
		}

		if len(create) > 0 {
			if err := tx.Create(&create).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// --------------------------------------------------
// Registrations referencing slots
// --------------------------------------------------

func (r *ScheduleGormRepository) CountActiveRegistrationsBySlot(
	ctx context.Context,
	slotID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ServiceRegistration{}).
		Where("slot_id = ? AND status IN ?", slotID, []string{"pending", "approved"}).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
