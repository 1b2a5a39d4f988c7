package repository

import (
	"fmt"

	"gorm.io/gorm"

	"intelimed/internal/app"
	"intelimed/internal/model"
)

// AutoMigrate creates or updates every table the stores use.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.ChatMessage{},
		&model.HealthAssessment{},
		&model.HealthGoal{},
		&model.Medication{},
		&model.EmergencyContact{},
	); err != nil {
		return fmt.Errorf("auto migrate tables failed: %w", err)
	}
	return nil
}

// NewStores returns gorm-backed stores sharing db.
func NewStores(db *gorm.DB) app.Stores {
	return app.Stores{
		Chat:        NewChatMessageRepository(db),
		Assessments: NewAssessmentRepository(db),
		Goals:       NewHealthGoalRepository(db),
		Medications: NewMedicationRepository(db),
		Contacts:    NewEmergencyContactRepository(db),
		Users:       NewUserRepository(db),
	}
}
