package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"intelimed/internal/ai"
	"intelimed/internal/model"
)

type scriptedLLM struct {
	mu       sync.Mutex
	text     string
	err      error
	jsonText string
	jsonErr  error
	delay    time.Duration
	calls    []ai.ChatConfig
	prompts  []string
}

func (s *scriptedLLM) Complete(ctx context.Context, cfg ai.ChatConfig, messages []ai.ChatMessage) (string, error) {
	s.record(cfg, messages)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.text, s.err
}

func (s *scriptedLLM) CompleteJSON(_ context.Context, cfg ai.ChatConfig, messages []ai.ChatMessage, _ ai.JSONSchema) (string, error) {
	s.record(cfg, messages)
	return s.jsonText, s.jsonErr
}

func (s *scriptedLLM) record(cfg ai.ChatConfig, messages []ai.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, cfg)
	s.prompts = append(s.prompts, messages[len(messages)-1].Content)
}

func (s *scriptedLLM) lastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}

var errStorage = errors.New("storage offline")

type chatStore struct {
	messages  []model.ChatMessage
	appendErr error
	listErr   error
}

func (s *chatStore) AppendChatMessage(_ context.Context, msg *model.ChatMessage) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *chatStore) ListChatMessagesByUser(_ context.Context, userID string) ([]model.ChatMessage, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []model.ChatMessage
	for _, m := range s.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

type userStore struct {
	users map[string]*model.User
}

func newUserStore() *userStore {
	return &userStore{users: map[string]*model.User{}}
}

func (s *userStore) CreateUser(_ context.Context, user *model.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *userStore) GetUser(_ context.Context, id string) (*model.User, error) {
	return s.users[id], nil
}

func (s *userStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

type assessmentStore struct {
	items []model.HealthAssessment
}

func (s *assessmentStore) AppendAssessment(_ context.Context, a *model.HealthAssessment) error {
	s.items = append(s.items, *a)
	return nil
}

func (s *assessmentStore) ListAssessmentsByUser(context.Context, string) ([]model.HealthAssessment, error) {
	return s.items, nil
}

type publisher struct {
	alerts []model.RiskAlert
	err    error
}

func (p *publisher) PublishRiskAlert(_ context.Context, alert model.RiskAlert) error {
	p.alerts = append(p.alerts, alert)
	return p.err
}

type goalStore struct {
	goals map[string]*model.HealthGoal
}

func (s *goalStore) CreateHealthGoal(_ context.Context, g *model.HealthGoal) error {
	cp := *g
	s.goals[g.ID] = &cp
	return nil
}

func (s *goalStore) ListHealthGoalsByUser(context.Context, string) ([]model.HealthGoal, error) {
	return nil, nil
}

func (s *goalStore) GetHealthGoal(_ context.Context, id string) (*model.HealthGoal, error) {
	g, ok := s.goals[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (s *goalStore) SaveHealthGoal(_ context.Context, g *model.HealthGoal) error {
	cp := *g
	s.goals[g.ID] = &cp
	return nil
}

func (s *goalStore) DeleteHealthGoal(_ context.Context, id string) (bool, error) {
	_, ok := s.goals[id]
	delete(s.goals, id)
	return ok, nil
}

type medicationStore struct {
	meds []model.Medication
}

func (s *medicationStore) CreateMedication(_ context.Context, m *model.Medication) error {
	s.meds = append(s.meds, *m)
	return nil
}

func (s *medicationStore) ListActiveMedicationsByUser(_ context.Context, userID string) ([]model.Medication, error) {
	var out []model.Medication
	for _, m := range s.meds {
		if m.UserID == userID && m.Active {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *medicationStore) GetMedication(context.Context, string) (*model.Medication, error) {
	return nil, nil
}

func (s *medicationStore) SaveMedication(context.Context, *model.Medication) error { return nil }

func (s *medicationStore) DeleteMedication(context.Context, string) (bool, error) { return false, nil }

type contactStore struct {
	contacts []*model.EmergencyContact
}

func (s *contactStore) CreateEmergencyContact(_ context.Context, c *model.EmergencyContact) error {
	clone := *c
	s.contacts = append(s.contacts, &clone)
	return nil
}

func (s *contactStore) ListEmergencyContactsByUser(_ context.Context, userID string) ([]model.EmergencyContact, error) {
	var out []model.EmergencyContact
	for _, c := range s.contacts {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *contactStore) GetEmergencyContact(_ context.Context, id string) (*model.EmergencyContact, error) {
	for _, c := range s.contacts {
		if c.ID == id {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *contactStore) SaveEmergencyContact(_ context.Context, c *model.EmergencyContact) error {
	for i, existing := range s.contacts {
		if existing.ID == c.ID {
			clone := *c
			s.contacts[i] = &clone
		}
	}
	return nil
}

func (s *contactStore) DeleteEmergencyContact(_ context.Context, id string) (bool, error) {
	for i, c := range s.contacts {
		if c.ID == id {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
