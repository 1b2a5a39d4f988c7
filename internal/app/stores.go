package app

import (
	"context"
	"errors"

	"intelimed/internal/model"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("record not found")
	ErrUsernameExists = errors.New("username already exists")
)

// ChatMessageStore is append-only; ListChatMessagesByUser returns turns in
// non-decreasing timestamp order.
type ChatMessageStore interface {
	AppendChatMessage(ctx context.Context, msg *model.ChatMessage) error
	ListChatMessagesByUser(ctx context.Context, userID string) ([]model.ChatMessage, error)
}

// AssessmentStore lists a user's assessments newest first.
type AssessmentStore interface {
	AppendAssessment(ctx context.Context, assessment *model.HealthAssessment) error
	ListAssessmentsByUser(ctx context.Context, userID string) ([]model.HealthAssessment, error)
}

// The Get methods below return (nil, nil) when nothing matches.

type HealthGoalStore interface {
	CreateHealthGoal(ctx context.Context, goal *model.HealthGoal) error
	ListHealthGoalsByUser(ctx context.Context, userID string) ([]model.HealthGoal, error)
	GetHealthGoal(ctx context.Context, id string) (*model.HealthGoal, error)
	SaveHealthGoal(ctx context.Context, goal *model.HealthGoal) error
	DeleteHealthGoal(ctx context.Context, id string) (bool, error)
}

type MedicationStore interface {
	CreateMedication(ctx context.Context, medication *model.Medication) error
	ListActiveMedicationsByUser(ctx context.Context, userID string) ([]model.Medication, error)
	GetMedication(ctx context.Context, id string) (*model.Medication, error)
	SaveMedication(ctx context.Context, medication *model.Medication) error
	DeleteMedication(ctx context.Context, id string) (bool, error)
}

type EmergencyContactStore interface {
	CreateEmergencyContact(ctx context.Context, contact *model.EmergencyContact) error
	ListEmergencyContactsByUser(ctx context.Context, userID string) ([]model.EmergencyContact, error)
	GetEmergencyContact(ctx context.Context, id string) (*model.EmergencyContact, error)
	SaveEmergencyContact(ctx context.Context, contact *model.EmergencyContact) error
	DeleteEmergencyContact(ctx context.Context, id string) (bool, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// Stores bundles one adapter per entity.
type Stores struct {
	Chat        ChatMessageStore
	Assessments AssessmentStore
	Goals       HealthGoalStore
	Medications MedicationStore
	Contacts    EmergencyContactStore
	Users       UserStore
}
