package models

import "time"

type ServiceRegistration struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// BatchID groups registrations created by one multi-slot booking call.
	BatchID string `gorm:"size:36;index" json:"batch_id"`

	CustomerID uint `gorm:"index" json:"customer_id"`
	TrainerID  uint `gorm:"index" json:"trainer_id"`
	ServiceID  uint `json:"service_id"`

	// SlotID is nil on the direct-registration path (no slot binding).
	SlotID *uint `gorm:"index" json:"slot_id"`

	StartDate time.Time `json:"start_date"`

	NumberOfSessions  int `gorm:"not null" json:"number_of_sessions"`
	CompletedSessions int `gorm:"default:0" json:"completed_sessions"`

	TotalPrice float64 `json:"total_price"`

	Status          string `gorm:"size:20;default:'pending';index" json:"status"`
	RejectionReason string `gorm:"size:255" json:"rejection_reason"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
