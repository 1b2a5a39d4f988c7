package memory

import (
	"context"
	"sync"

	"intelimed/internal/model"
)

type HealthGoalStore struct {
	mu    sync.RWMutex
	order []string
	goals map[string]model.HealthGoal
}

func NewHealthGoalStore() *HealthGoalStore {
	return &HealthGoalStore{
		goals: make(map[string]model.HealthGoal),
	}
}

func (s *HealthGoalStore) CreateHealthGoal(_ context.Context, goal *model.HealthGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goals[goal.ID] = *goal
	s.order = append(s.order, goal.ID)
	return nil
}

func (s *HealthGoalStore) ListHealthGoalsByUser(_ context.Context, userID string) ([]model.HealthGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.HealthGoal
	for _, id := range s.order {
		if goal, ok := s.goals[id]; ok && goal.UserID == userID {
			out = append(out, goal)
		}
	}
	return out, nil
}

func (s *HealthGoalStore) GetHealthGoal(_ context.Context, id string) (*model.HealthGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goal, ok := s.goals[id]
	if !ok {
		return nil, nil
	}
	return &goal, nil
}

func (s *HealthGoalStore) SaveHealthGoal(_ context.Context, goal *model.HealthGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.goals[goal.ID]; !ok {
		s.order = append(s.order, goal.ID)
	}
	s.goals[goal.ID] = *goal
	return nil
}

func (s *HealthGoalStore) DeleteHealthGoal(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.goals[id]; !ok {
		return false, nil
	}
	delete(s.goals, id)
	s.order = removeID(s.order, id)
	return true, nil
}

func removeID(ids []string, id string) []string {
	for i, item := range ids {
		if item == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
