package app

import (
	"context"
	"strings"
	"time"

	"intelimed/internal/model"
)

type HealthGoalService struct {
	store HealthGoalStore
	now   func() time.Time
}

type CreateGoalInput struct {
	UserID       string
	Title        string
	Description  *string
	TargetValue  *int
	CurrentValue int
	Unit         *string
	Completed    bool
}

func NewHealthGoalService(store HealthGoalStore) *HealthGoalService {
	return &HealthGoalService{store: store, now: time.Now}
}

func (s *HealthGoalService) Create(ctx context.Context, input CreateGoalInput) (*model.HealthGoal, error) {
	userID := strings.TrimSpace(input.UserID)
	title := strings.TrimSpace(input.Title)
	if userID == "" || title == "" {
		return nil, ErrInvalidInput
	}

	goal := &model.HealthGoal{
		ID:           model.NewID(),
		UserID:       userID,
		Title:        title,
		Description:  input.Description,
		TargetValue:  input.TargetValue,
		CurrentValue: input.CurrentValue,
		Unit:         input.Unit,
		Completed:    input.Completed,
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateHealthGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *HealthGoalService) ListByUser(ctx context.Context, userID string) ([]model.HealthGoal, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	goals, err := s.store.ListHealthGoalsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []model.HealthGoal{}
	}
	return goals, nil
}

// Update applies patch. Reaching the target marks the goal completed unless
// the patch says otherwise.
func (s *HealthGoalService) Update(ctx context.Context, id string, patch model.HealthGoalPatch) (*model.HealthGoal, error) {
	goal, err := s.store.GetHealthGoal(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, ErrNotFound
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, ErrInvalidInput
	}

	patch.Apply(goal)
	if patch.Completed == nil && goal.TargetValue != nil && goal.CurrentValue >= *goal.TargetValue {
		goal.Completed = true
	}

	if err := s.store.SaveHealthGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *HealthGoalService) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteHealthGoal(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
