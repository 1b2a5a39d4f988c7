package memory

import (
	"context"
	"sync"

	"intelimed/internal/model"
)

type MedicationStore struct {
	mu          sync.RWMutex
	order       []string
	medications map[string]model.Medication
}

func NewMedicationStore() *MedicationStore {
	return &MedicationStore{
		medications: make(map[string]model.Medication),
	}
}

func (s *MedicationStore) CreateMedication(_ context.Context, medication *model.Medication) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.medications[medication.ID] = *medication
	s.order = append(s.order, medication.ID)
	return nil
}

func (s *MedicationStore) ListActiveMedicationsByUser(_ context.Context, userID string) ([]model.Medication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Medication
	for _, id := range s.order {
		if med, ok := s.medications[id]; ok && med.UserID == userID && med.Active {
			out = append(out, med)
		}
	}
	return out, nil
}

func (s *MedicationStore) GetMedication(_ context.Context, id string) (*model.Medication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	med, ok := s.medications[id]
	if !ok {
		return nil, nil
	}
	return &med, nil
}

func (s *MedicationStore) SaveMedication(_ context.Context, medication *model.Medication) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.medications[medication.ID]; !ok {
		s.order = append(s.order, medication.ID)
	}
	s.medications[medication.ID] = *medication
	return nil
}

func (s *MedicationStore) DeleteMedication(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.medications[id]; !ok {
		return false, nil
	}
	delete(s.medications, id)
	s.order = removeID(s.order, id)
	return true, nil
}
