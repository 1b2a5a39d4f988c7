package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"intelimed/internal/model"
)

type MedicationRepository struct {
	db *gorm.DB
}

func NewMedicationRepository(db *gorm.DB) *MedicationRepository {
	return &MedicationRepository{db: db}
}

func (r *MedicationRepository) CreateMedication(ctx context.Context, medication *model.Medication) error {
	if err := r.db.WithContext(ctx).Create(medication).Error; err != nil {
		return fmt.Errorf("create medication failed: %w", err)
	}
	return nil
}

func (r *MedicationRepository) ListActiveMedicationsByUser(ctx context.Context, userID string) ([]model.Medication, error) {
	var medications []model.Medication
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at ASC").
		Find(&medications).Error; err != nil {
		return nil, fmt.Errorf("list medications failed: %w", err)
	}
	return medications, nil
}

func (r *MedicationRepository) GetMedication(ctx context.Context, id string) (*model.Medication, error) {
	var medication model.Medication
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&medication).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medication failed: %w", err)
	}
	return &medication, nil
}

func (r *MedicationRepository) SaveMedication(ctx context.Context, medication *model.Medication) error {
	if err := r.db.WithContext(ctx).Save(medication).Error; err != nil {
		return fmt.Errorf("save medication failed: %w", err)
	}
	return nil
}

func (r *MedicationRepository) DeleteMedication(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Medication{})
	if result.Error != nil {
		return false, fmt.Errorf("delete medication failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
