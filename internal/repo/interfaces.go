// Package repo declares the storage contracts shared by the postgres and
// memory backends. User and activity operations are available on every
// backend; ticket and chat operations are a separate capability that only
// durable storage provides, so callers require TicketChatRepository
// explicitly instead of discovering an "unsupported" error at runtime.
package repo

import (
	"context"

	"github.com/nguyentranbao-ct/support-desk/internal/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uint, updates models.UpdateUser) (*models.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) (*models.User, error)
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	// ListByUser returns one 1-indexed page of the user's activities, newest
	// first, plus the total count for that user.
	ListByUser(ctx context.Context, userID uint, page, limit int) (*models.ActivityPage, error)
}

type TicketChatRepository interface {
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	GetTicket(ctx context.Context, id uint) (*models.Ticket, error)
	CreateTicket(ctx context.Context, ticket *models.Ticket) error
	UpdateTicket(ctx context.Context, id uint, updates models.UpdateTicket) (*models.Ticket, error)
	// ListMessages returns the ticket's conversation in order: created_at
	// ascending, id as tie-break. An unknown ticket id yields an empty list,
	// not an error.
	ListMessages(ctx context.Context, ticketID uint) ([]models.ChatMessage, error)
	CreateMessage(ctx context.Context, message *models.ChatMessage) error
}
