package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Skills       []string  `json:"skills"`
	Resources    []string  `json:"resources"`
	Location     string    `json:"location"`
	Bio          string    `json:"bio"`
	Phone        string    `json:"phone"`
	AvatarURL    string    `json:"avatar_url"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
