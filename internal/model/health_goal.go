package model

import "time"

type HealthGoal struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"size:64;not null;index" json:"userId"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  *string   `gorm:"type:text" json:"description"`
	TargetValue  *int      `json:"targetValue"`
	CurrentValue int       `gorm:"not null" json:"currentValue"`
	Unit         *string   `gorm:"size:32" json:"unit"`
	Completed    bool      `gorm:"not null" json:"completed"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HealthGoalPatch carries a partial update; nil fields are left untouched.
type HealthGoalPatch struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	TargetValue  *int    `json:"targetValue"`
	CurrentValue *int    `json:"currentValue"`
	Unit         *string `json:"unit"`
	Completed    *bool   `json:"completed"`
}

func (p HealthGoalPatch) Apply(g *HealthGoal) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Description != nil {
		g.Description = p.Description
	}
	if p.TargetValue != nil {
		g.TargetValue = p.TargetValue
	}
	if p.CurrentValue != nil {
		g.CurrentValue = *p.CurrentValue
	}
	if p.Unit != nil {
		g.Unit = p.Unit
	}
	if p.Completed != nil {
		g.Completed = *p.Completed
	}
}
