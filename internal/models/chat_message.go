package models

import "time"

const (
	SenderTypeAgent    = "agent"
	SenderTypeCustomer = "customer"
)

// ChatMessage is one turn of a ticket's conversation. Messages are immutable
// once stored. Conversation order is created_at with the serial id as
// tie-break, so two messages landing in the same clock tick still have a
// stable order.
type ChatMessage struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TicketID       uint      `gorm:"index;not null" json:"ticketId"`
	Ticket         *Ticket   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SenderID       *uint     `json:"senderId"`
	Sender         *User     `gorm:"foreignKey:SenderID;constraint:OnDelete:SET NULL" json:"-"`
	SenderName     string    `gorm:"not null" json:"senderName"`
	SenderType     string    `gorm:"type:varchar(16);not null" json:"senderType"`
	Message        string    `gorm:"type:text;not null" json:"message"`
	IsAISuggestion bool      `gorm:"default:false" json:"isAiSuggestion"`
	CreatedAt      time.Time `json:"createdAt"`
}

// InsertChatMessage is the append payload. The server never infers
// IsAISuggestion; the caller decides and it defaults to false.
type InsertChatMessage struct {
	SenderID       *uint  `json:"senderId"`
	SenderName     string `json:"senderName" validate:"required"`
	SenderType     string `json:"senderType" validate:"required,oneof=agent customer"`
	Message        string `json:"message" validate:"required,min=1"`
	IsAISuggestion bool   `json:"isAiSuggestion"`
}
