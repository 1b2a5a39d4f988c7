package model

import (
	"time"

	"gorm.io/datatypes"
)

type Medication struct {
	ID        string                      `gorm:"primaryKey;size:36" json:"id"`
	UserID    string                      `gorm:"size:64;not null;index" json:"userId"`
	Name      string                      `gorm:"size:255;not null" json:"name"`
	Dosage    string                      `gorm:"size:128;not null" json:"dosage"`
	Frequency string                      `gorm:"size:32;not null" json:"frequency"`
	Times     datatypes.JSONSlice[string] `json:"times"`
	StartDate time.Time                   `gorm:"not null" json:"startDate"`
	EndDate   *time.Time                  `json:"endDate"`
	Active    bool                        `gorm:"not null" json:"active"`
	CreatedAt time.Time                   `json:"createdAt"`
}

type MedicationPatch struct {
	Name      *string    `json:"name"`
	Dosage    *string    `json:"dosage"`
	Frequency *string    `json:"frequency"`
	Times     *[]string  `json:"times"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Active    *bool      `json:"active"`
}

func (p MedicationPatch) Apply(m *Medication) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Dosage != nil {
		m.Dosage = *p.Dosage
	}
	if p.Frequency != nil {
		m.Frequency = *p.Frequency
	}
	if p.Times != nil {
		m.Times = datatypes.JSONSlice[string](*p.Times)
	}
	if p.StartDate != nil {
		m.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		m.EndDate = p.EndDate
	}
	if p.Active != nil {
		m.Active = *p.Active
	}
}
