package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"intelimed/internal/model"
)

type EmergencyContactRepository struct {
	db *gorm.DB
}

func NewEmergencyContactRepository(db *gorm.DB) *EmergencyContactRepository {
	return &EmergencyContactRepository{db: db}
}

func (r *EmergencyContactRepository) CreateEmergencyContact(ctx context.Context, contact *model.EmergencyContact) error {
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return fmt.Errorf("create emergency contact failed: %w", err)
	}
	return nil
}

func (r *EmergencyContactRepository) ListEmergencyContactsByUser(ctx context.Context, userID string) ([]model.EmergencyContact, error) {
	var contacts []model.EmergencyContact
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("list emergency contacts failed: %w", err)
	}
	return contacts, nil
}

func (r *EmergencyContactRepository) GetEmergencyContact(ctx context.Context, id string) (*model.EmergencyContact, error) {
	var contact model.EmergencyContact
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get emergency contact failed: %w", err)
	}
	return &contact, nil
}

func (r *EmergencyContactRepository) SaveEmergencyContact(ctx context.Context, contact *model.EmergencyContact) error {
	if err := r.db.WithContext(ctx).Save(contact).Error; err != nil {
		return fmt.Errorf("save emergency contact failed: %w", err)
	}
	return nil
}

func (r *EmergencyContactRepository) DeleteEmergencyContact(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.EmergencyContact{})
	if result.Error != nil {
		return false, fmt.Errorf("delete emergency contact failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
