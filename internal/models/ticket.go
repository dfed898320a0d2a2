package models

import "time"

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

type Ticket struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `gorm:"type:text;not null" json:"description"`
	Status         TicketStatus   `gorm:"type:varchar(32);index;not null;default:open" json:"status"`
	Priority       TicketPriority `gorm:"type:varchar(32);index;not null;default:medium" json:"priority"`
	CustomerName   string         `gorm:"not null" json:"customerName"`
	CustomerEmail  string         `gorm:"not null" json:"customerEmail"`
	CustomerAvatar string         `json:"customerAvatar,omitempty"`
	Assignee       string         `json:"assignee,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// InsertTicket is the creation payload. Status and priority fall back to
// open/medium when omitted.
type InsertTicket struct {
	Title          string         `json:"title" validate:"required"`
	Description    string         `json:"description" validate:"required"`
	Status         TicketStatus   `json:"status" validate:"omitempty,oneof=open in-progress resolved closed"`
	Priority       TicketPriority `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	CustomerName   string         `json:"customerName" validate:"required"`
	CustomerEmail  string         `json:"customerEmail" validate:"required,email"`
	CustomerAvatar string         `json:"customerAvatar"`
	Assignee       string         `json:"assignee"`
}

// UpdateTicket carries a partial ticket mutation. Nil fields are untouched.
type UpdateTicket struct {
	Title          *string         `json:"title,omitempty" validate:"omitempty,min=1"`
	Description    *string         `json:"description,omitempty" validate:"omitempty,min=1"`
	Status         *TicketStatus   `json:"status,omitempty" validate:"omitempty,oneof=open in-progress resolved closed"`
	Priority       *TicketPriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	CustomerName   *string         `json:"customerName,omitempty" validate:"omitempty,min=1"`
	CustomerEmail  *string         `json:"customerEmail,omitempty" validate:"omitempty,email"`
	CustomerAvatar *string         `json:"customerAvatar,omitempty"`
	Assignee       *string         `json:"assignee,omitempty"`
}
