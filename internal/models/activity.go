package models

import "time"

const (
	ActivitySuccess = "success"
	ActivityWarning = "warning"
	ActivityInfo    = "info"
)

// Activity is an append-only audit entry. Rows are never updated or deleted;
// UserID is nullable so entries survive their owner.
type Activity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      *uint     `gorm:"index" json:"userId"`
	User        *User     `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Type        string    `gorm:"not null" json:"type" validate:"required"`
	Title       string    `gorm:"not null" json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ActivityPage is one page of a user's audit trail plus the total count for
// that user, newest first.
type ActivityPage struct {
	Activities []Activity `json:"activities"`
	Total      int64      `json:"total"`
}
