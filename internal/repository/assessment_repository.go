package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"intelimed/internal/model"
)

type AssessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) AppendAssessment(ctx context.Context, assessment *model.HealthAssessment) error {
	if err := r.db.WithContext(ctx).Create(assessment).Error; err != nil {
		return fmt.Errorf("create health assessment failed: %w", err)
	}
	return nil
}

func (r *AssessmentRepository) ListAssessmentsByUser(ctx context.Context, userID string) ([]model.HealthAssessment, error) {
	var assessments []model.HealthAssessment
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&assessments).Error; err != nil {
		return nil, fmt.Errorf("list health assessments failed: %w", err)
	}
	return assessments, nil
}
