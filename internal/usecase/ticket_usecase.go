package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/support-desk/internal/models"
	"github.com/nguyentranbao-ct/support-desk/internal/repo"
	llmrepo "github.com/nguyentranbao-ct/support-desk/internal/repo/llm"
)

// TicketUsecase covers tickets, their conversations, and on-demand reply
// suggestions. Suggestions are ephemeral: nothing is persisted unless the
// agent later posts one as an ordinary message.
type TicketUsecase interface {
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	GetTicket(ctx context.Context, id uint) (*models.Ticket, error)
	CreateTicket(ctx context.Context, insert models.InsertTicket) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, id uint, updates models.UpdateTicket) (*models.Ticket, error)
	ListMessages(ctx context.Context, ticketID uint) ([]models.ChatMessage, error)
	PostMessage(ctx context.Context, ticketID uint, insert models.InsertChatMessage) (*models.ChatMessage, error)
	Suggestions(ctx context.Context, ticketID uint) ([]string, error)
}

type ticketUsecase struct {
	store     repo.TicketChatRepository
	suggester llmrepo.SuggestionService
}

// NewTicketUsecase accepts a nil store: the memory driver has no ticket/chat
// capability, and every operation then reports ErrTicketStorageUnavailable
// up front instead of failing somewhere inside a storage call.
func NewTicketUsecase(store repo.TicketChatRepository, suggester llmrepo.SuggestionService) TicketUsecase {
	return &ticketUsecase{
		store:     store,
		suggester: suggester,
	}
}

func (u *ticketUsecase) requireStore() error {
	if u.store == nil {
		return models.ErrTicketStorageUnavailable
	}
	return nil
}

func (u *ticketUsecase) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	if err := u.requireStore(); err != nil {
		return nil, err
	}
	return u.store.ListTickets(ctx)
}

func (u *ticketUsecase) GetTicket(ctx context.Context, id uint) (*models.Ticket, error) {
	if err := u.requireStore(); err != nil {
		return nil, err
	}
	return u.store.GetTicket(ctx, id)
}

func (u *ticketUsecase) CreateTicket(ctx context.Context, insert models.InsertTicket) (*models.Ticket, error) {
	if err := u.requireStore(); err != nil {
		return nil, err
	}
	ticket := &models.Ticket{
		Title:          insert.Title,
		Description:    insert.Description,
		Status:         insert.Status,
		Priority:       insert.Priority,
		CustomerName:   insert.CustomerName,
		CustomerEmail:  insert.CustomerEmail,
		CustomerAvatar: insert.CustomerAvatar,
		Assignee:       insert.Assignee,
	}
	if err := u.store.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (u *ticketUsecase) UpdateTicket(ctx context.Context, id uint, updates models.UpdateTicket) (*models.Ticket, error) {
	if err := u.requireStore(); err != nil {
		return nil, err
	}
	return u.store.UpdateTicket(ctx, id, updates)
}

func (u *ticketUsecase) ListMessages(ctx context.Context, ticketID uint) ([]models.ChatMessage, error) {
	if err := u.requireStore(); err != nil {
		return nil, err
	}
	return u.store.ListMessages(ctx, ticketID)
}

func (u *ticketUsecase) PostMessage(ctx context.Context, ticketID uint, insert models.InsertChatMessage) (*models.ChatMessage, error) {
	if err := u.requireStore(); err != nil {
		return nil, err
	}
	// Fail with not-found before the FK violation would.
	if _, err := u.store.GetTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	message := &models.ChatMessage{
		TicketID:       ticketID,
		SenderID:       insert.SenderID,
		SenderName:     insert.SenderName,
		SenderType:     insert.SenderType,
		Message:        insert.Message,
		IsAISuggestion: insert.IsAISuggestion,
	}
	if err := u.store.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (u *ticketUsecase) Suggestions(ctx context.Context, ticketID uint) ([]string, error) {
	if err := u.requireStore(); err != nil {
		return nil, err
	}
	ticket, err := u.store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	history, err := u.store.ListMessages(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return u.suggester.Suggest(ctx, ticket, history), nil
}
