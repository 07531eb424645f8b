package db

import (
	"time"

	"github.com/google/uuid"
)

// Profile mirrors an externally authenticated identity
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IsPaid    bool      `json:"isPaid"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileCreateInput is used when registering a profile for an identity
type ProfileCreateInput struct {
	ID    uuid.UUID `json:"id" validate:"required"`
	Email string    `json:"email" validate:"required,email"`
}
