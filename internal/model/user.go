package model

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Persona      string    `gorm:"size:16;not null" json:"persona"`
	CreatedAt    time.Time `json:"createdAt"`
}
