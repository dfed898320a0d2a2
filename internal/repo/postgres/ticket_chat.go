package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentranbao-ct/support-desk/internal/models"
	"github.com/nguyentranbao-ct/support-desk/internal/repo"
	"gorm.io/gorm"
)

type ticketChatRepo struct {
	db *gorm.DB
}

func NewTicketChatRepository(db *DB) repo.TicketChatRepository {
	return &ticketChatRepo{db: db.Gorm}
}

func (r *ticketChatRepo) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	tickets := []models.Ticket{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (r *ticketChatRepo) GetTicket(ctx context.Context, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.WithContext(ctx).First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &ticket, nil
}

func (r *ticketChatRepo) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	if ticket.Status == "" {
		ticket.Status = models.TicketStatusOpen
	}
	if ticket.Priority == "" {
		ticket.Priority = models.TicketPriorityMedium
	}
	if err := r.db.WithContext(ctx).Create(ticket).Error; err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (r *ticketChatRepo) UpdateTicket(ctx context.Context, id uint, updates models.UpdateTicket) (*models.Ticket, error) {
	ticket, err := r.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	changes := ticketChanges(updates)
	if len(changes) == 0 {
		return ticket, nil
	}
	if err := r.db.WithContext(ctx).Model(ticket).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}
	return ticket, nil
}

func (r *ticketChatRepo) ListMessages(ctx context.Context, ticketID uint) ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{}
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (r *ticketChatRepo) CreateMessage(ctx context.Context, message *models.ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func ticketChanges(updates models.UpdateTicket) map[string]any {
	changes := map[string]any{}
	if updates.Title != nil {
		changes["title"] = *updates.Title
	}
	if updates.Description != nil {
		changes["description"] = *updates.Description
	}
	if updates.Status != nil {
		changes["status"] = *updates.Status
	}
	if updates.Priority != nil {
		changes["priority"] = *updates.Priority
	}
	if updates.CustomerName != nil {
		changes["customer_name"] = *updates.CustomerName
	}
	if updates.CustomerEmail != nil {
		changes["customer_email"] = *updates.CustomerEmail
	}
	if updates.CustomerAvatar != nil {
		changes["customer_avatar"] = *updates.CustomerAvatar
	}
	if updates.Assignee != nil {
		changes["assignee"] = *updates.Assignee
	}
	return changes
}
