package model

import "github.com/google/uuid"

// NewID returns a time-ordered UUID (v7), so ids sort in creation order.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
