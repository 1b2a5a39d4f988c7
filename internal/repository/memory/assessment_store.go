package memory

import (
	"context"
	"sort"
	"sync"

	"intelimed/internal/model"
)

type AssessmentStore struct {
	mu          sync.RWMutex
	assessments map[string][]model.HealthAssessment
}

func NewAssessmentStore() *AssessmentStore {
	return &AssessmentStore{
		assessments: make(map[string][]model.HealthAssessment),
	}
}

func (s *AssessmentStore) AppendAssessment(_ context.Context, assessment *model.HealthAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assessments[assessment.UserID] = append(s.assessments[assessment.UserID], *assessment)
	return nil
}

func (s *AssessmentStore) ListAssessmentsByUser(_ context.Context, userID string) ([]model.HealthAssessment, error) {
	s.mu.RLock()
	out := append([]model.HealthAssessment(nil), s.assessments[userID]...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	return out, nil
}
