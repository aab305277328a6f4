package users

import (
	"time"

	"github.com/google/uuid"
)

// User matches the users table schema. The premium flag is flipped by the
// payment webhook service; this backend only reads it.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsPremium    bool      `json:"is_premium"`
	HeightCm     *float64  `json:"height_cm,omitempty"`
	WeightKg     *float64  `json:"weight_kg,omitempty"`
	Goal         *string   `json:"goal,omitempty"`
	Experience   *string   `json:"experience,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileUpdate carries the mutable fitness-profile fields. Nil means
// "leave unchanged".
type ProfileUpdate struct {
	HeightCm   *float64
	WeightKg   *float64
	Goal       *string
	Experience *string
}
