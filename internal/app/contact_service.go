package app

import (
	"context"
	"sort"
	"strings"
	"time"

	"intelimed/internal/model"
)

type EmergencyContactService struct {
	store EmergencyContactStore
	now   func() time.Time
}

type CreateContactInput struct {
	UserID       string
	Name         string
	Relationship string
	Phone        string
	IsPrimary    bool
}

func NewEmergencyContactService(store EmergencyContactStore) *EmergencyContactService {
	return &EmergencyContactService{store: store, now: time.Now}
}

func (s *EmergencyContactService) Create(ctx context.Context, input CreateContactInput) (*model.EmergencyContact, error) {
	contact := &model.EmergencyContact{
		ID:           model.NewID(),
		UserID:       strings.TrimSpace(input.UserID),
		Name:         strings.TrimSpace(input.Name),
		Relationship: strings.TrimSpace(input.Relationship),
		Phone:        strings.TrimSpace(input.Phone),
		IsPrimary:    input.IsPrimary,
		CreatedAt:    s.now(),
	}
	if contact.UserID == "" || contact.Name == "" || contact.Relationship == "" || contact.Phone == "" {
		return nil, ErrInvalidInput
	}
	if err := s.store.CreateEmergencyContact(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// ListByUser returns the primary contacts first, then the rest in creation order.
func (s *EmergencyContactService) ListByUser(ctx context.Context, userID string) ([]model.EmergencyContact, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	contacts, err := s.store.ListEmergencyContactsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		return []model.EmergencyContact{}, nil
	}
	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].IsPrimary && !contacts[j].IsPrimary
	})
	return contacts, nil
}

func (s *EmergencyContactService) Update(ctx context.Context, id string, patch model.EmergencyContactPatch) (*model.EmergencyContact, error) {
	contact, err := s.store.GetEmergencyContact(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrNotFound
	}
	patch.Apply(contact)
	if contact.Name == "" || contact.Phone == "" {
		return nil, ErrInvalidInput
	}
	if err := s.store.SaveEmergencyContact(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *EmergencyContactService) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteEmergencyContact(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
