package models

import "time"

// WeeklySlot is a recurring availability window published by a trainer.
// Times are stored as "15:04" strings in the club timezone; the slot never
// crosses midnight. Slots are immutable: to change one, remove and re-add.
type WeeklySlot struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	TrainerID uint `gorm:"index:idx_slots_trainer_weekday" json:"trainer_id"`

	Weekday int `gorm:"index:idx_slots_trainer_weekday" json:"weekday"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	Note string `gorm:"size:255" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
