package models

import "time"

// User is a support agent account. Customers are not users; they only appear
// as sender names on chat messages.
type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	FullName           string    `gorm:"not null" json:"fullName" validate:"required"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Password           string    `gorm:"not null" json:"-"` // bcrypt hash
	Role               string    `gorm:"not null;default:support-agent" json:"role"`
	Department         string    `gorm:"not null;default:customer-support" json:"department"`
	Avatar             string    `json:"avatar,omitempty"`
	DarkMode           bool      `gorm:"default:false" json:"darkMode"`
	Language           string    `gorm:"default:en" json:"language"`
	EmailNotifications bool      `gorm:"default:true" json:"emailNotifications"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// UpdateUser carries a partial profile update. Nil fields are left untouched.
// Password and timestamps are deliberately absent; they have their own paths.
type UpdateUser struct {
	FullName           *string `json:"fullName,omitempty" validate:"omitempty,min=1"`
	Email              *string `json:"email,omitempty" validate:"omitempty,email"`
	Role               *string `json:"role,omitempty"`
	Department         *string `json:"department,omitempty"`
	Avatar             *string `json:"avatar,omitempty"`
	DarkMode           *bool   `json:"darkMode,omitempty"`
	Language           *string `json:"language,omitempty"`
	EmailNotifications *bool   `json:"emailNotifications,omitempty"`
}

type UpdatePassword struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}
