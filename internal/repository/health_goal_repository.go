package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"intelimed/internal/model"
)

type HealthGoalRepository struct {
	db *gorm.DB
}

func NewHealthGoalRepository(db *gorm.DB) *HealthGoalRepository {
	return &HealthGoalRepository{db: db}
}

func (r *HealthGoalRepository) CreateHealthGoal(ctx context.Context, goal *model.HealthGoal) error {
	if err := r.db.WithContext(ctx).Create(goal).Error; err != nil {
		return fmt.Errorf("create health goal failed: %w", err)
	}
	return nil
}

func (r *HealthGoalRepository) ListHealthGoalsByUser(ctx context.Context, userID string) ([]model.HealthGoal, error) {
	var goals []model.HealthGoal
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list health goals failed: %w", err)
	}
	return goals, nil
}

func (r *HealthGoalRepository) GetHealthGoal(ctx context.Context, id string) (*model.HealthGoal, error) {
	var goal model.HealthGoal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get health goal failed: %w", err)
	}
	return &goal, nil
}

func (r *HealthGoalRepository) SaveHealthGoal(ctx context.Context, goal *model.HealthGoal) error {
	if err := r.db.WithContext(ctx).Save(goal).Error; err != nil {
		return fmt.Errorf("save health goal failed: %w", err)
	}
	return nil
}

func (r *HealthGoalRepository) DeleteHealthGoal(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.HealthGoal{})
	if result.Error != nil {
		return false, fmt.Errorf("delete health goal failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
