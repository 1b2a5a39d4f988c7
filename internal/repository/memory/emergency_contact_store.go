package memory

import (
	"context"
	"sync"

	"intelimed/internal/model"
)

type EmergencyContactStore struct {
	mu       sync.RWMutex
	order    []string
	contacts map[string]model.EmergencyContact
}

func NewEmergencyContactStore() *EmergencyContactStore {
	return &EmergencyContactStore{
		contacts: make(map[string]model.EmergencyContact),
	}
}

func (s *EmergencyContactStore) CreateEmergencyContact(_ context.Context, contact *model.EmergencyContact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contacts[contact.ID] = *contact
	s.order = append(s.order, contact.ID)
	return nil
}

func (s *EmergencyContactStore) ListEmergencyContactsByUser(_ context.Context, userID string) ([]model.EmergencyContact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.EmergencyContact
	for _, id := range s.order {
		if contact, ok := s.contacts[id]; ok && contact.UserID == userID {
			out = append(out, contact)
		}
	}
	return out, nil
}

func (s *EmergencyContactStore) GetEmergencyContact(_ context.Context, id string) (*model.EmergencyContact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contact, ok := s.contacts[id]
	if !ok {
		return nil, nil
	}
	return &contact, nil
}

func (s *EmergencyContactStore) SaveEmergencyContact(_ context.Context, contact *model.EmergencyContact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[contact.ID]; !ok {
		s.order = append(s.order, contact.ID)
	}
	s.contacts[contact.ID] = *contact
	return nil
}

func (s *EmergencyContactStore) DeleteEmergencyContact(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[id]; !ok {
		return false, nil
	}
	delete(s.contacts, id)
	s.order = removeID(s.order, id)
	return true, nil
}
