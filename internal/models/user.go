package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a marketplace member, created from the identity provider's token claims.
type User struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Subject         string    `json:"-" db:"subject"` // Identity provider subject, never serialized
	Username        string    `json:"username" db:"username"`
	FullName        string    `json:"fullName" db:"full_name"`
	Email           string    `json:"email" db:"email"`
	ProfileImageURL string    `json:"profileImageUrl" db:"profile_image_url"`
	Bio             string    `json:"bio" db:"bio"`
	Country         string    `json:"country" db:"country"`
	Languages       string    `json:"languages" db:"languages"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// ProfileUpdate holds the editable profile fields.
type ProfileUpdate struct {
	Bio       string `json:"bio"`
	Country   string `json:"country"`
	Languages string `json:"languages"`
}

// Skill is a named skill listed on a seller profile.
type Skill struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
