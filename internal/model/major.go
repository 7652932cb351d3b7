package model

import (
	"time"

	"github.com/google/uuid"
)

// Major represents an academic major.
type Major struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateMajorRequest is the payload for creating a major.
type CreateMajorRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

// UpdateMajorRequest is the payload for renaming a major.
type UpdateMajorRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}
