package model

import "time"

type EmergencyContact struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"size:64;not null;index" json:"userId"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	Relationship string    `gorm:"size:64;not null" json:"relationship"`
	Phone        string    `gorm:"size:32;not null" json:"phone"`
	IsPrimary    bool      `gorm:"not null" json:"isPrimary"`
	CreatedAt    time.Time `json:"createdAt"`
}

type EmergencyContactPatch struct {
	Name         *string `json:"name"`
	Relationship *string `json:"relationship"`
	Phone        *string `json:"phone"`
	IsPrimary    *bool   `json:"isPrimary"`
}

func (p EmergencyContactPatch) Apply(c *EmergencyContact) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Relationship != nil {
		c.Relationship = *p.Relationship
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.IsPrimary != nil {
		c.IsPrimary = *p.IsPrimary
	}
}
