package dto

import "github.com/fitlane/trainer-scheduler/internal/models"

type BatchCreatedDTO struct {
	BatchID       string                       `json:"batch_id"`
	Registrations []models.ServiceRegistration `json:"registrations"`
	Total         int                          `json:"total"`
}
