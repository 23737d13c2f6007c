package models

import "time"

// RefreshToken is the server-side record of an issued refresh token.
// Logout deletes it; refresh requires a non-expired row to exist.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"not null;index" json:"email"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
}

// LogoutInput - used for logout validation
type LogoutInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// RefreshInput - used for token refresh validation
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}
