// Package memory keeps every entity in process memory. Data is lost on
// restart.
package memory

import "intelimed/internal/app"

func NewStores() app.Stores {
	return app.Stores{
		Chat:        NewChatMessageStore(),
		Assessments: NewAssessmentStore(),
		Goals:       NewHealthGoalStore(),
		Medications: NewMedicationStore(),
		Contacts:    NewEmergencyContactStore(),
		Users:       NewUserStore(),
	}
}
