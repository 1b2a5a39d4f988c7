package model

import "time"

// ChatMessage is one stored turn of a user's conversation. Turns are
// append-only and never updated.
type ChatMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:64;not null;index:idx_chat_user_time,priority:1" json:"userId"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsUser    bool      `gorm:"not null" json:"isUser"`
	Persona   string    `gorm:"size:16;not null" json:"persona"`
	Timestamp time.Time `gorm:"not null;index:idx_chat_user_time,priority:2" json:"timestamp"`
}

// Role maps the turn to the chat role used in prompts.
func (m ChatMessage) Role() string {
	if m.IsUser {
		return "user"
	}
	return "assistant"
}
