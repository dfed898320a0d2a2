// Package chatclient is a Go client for the support-desk API plus the chat
// session state machine UIs drive: transcript, compose box, and on-demand AI
// reply suggestions.
package chatclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type Ticket struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	CustomerName   string    `json:"customerName"`
	CustomerEmail  string    `json:"customerEmail"`
	CustomerAvatar string    `json:"customerAvatar,omitempty"`
	Assignee       string    `json:"assignee,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type ChatMessage struct {
	ID             uint      `json:"id"`
	TicketID       uint      `json:"ticketId"`
	SenderID       *uint     `json:"senderId"`
	SenderName     string    `json:"senderName"`
	SenderType     string    `json:"senderType"`
	Message        string    `json:"message"`
	IsAISuggestion bool      `json:"isAiSuggestion"`
	CreatedAt      time.Time `json:"createdAt"`
}

type OutgoingMessage struct {
	SenderID       *uint  `json:"senderId,omitempty"`
	SenderName     string `json:"senderName"`
	SenderType     string `json:"senderType"`
	Message        string `json:"message"`
	IsAISuggestion bool   `json:"isAiSuggestion"`
}

type apiError struct {
	ErrorMessage string `json:"error_message"`
	Message      string `json:"message"`
}

type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetRetryCount(2).
			SetTimeout(60 * time.Second),
	}
}

// WithAgentID sets the identity header sent on every request.
func (c *Client) WithAgentID(id uint) *Client {
	c.http.SetHeader("X-Agent-ID", fmt.Sprint(id))
	return c
}

func (c *Client) GetTicket(ctx context.Context, id uint) (*Ticket, error) {
	var ticket Ticket
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&ticket).
		SetError(&apiError{}).
		Get(fmt.Sprintf("/api/tickets/%d", id))
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	if resp.IsError() {
		return nil, responseError("get ticket", resp)
	}
	return &ticket, nil
}

func (c *Client) ListMessages(ctx context.Context, ticketID uint) ([]ChatMessage, error) {
	var messages []ChatMessage
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&messages).
		SetError(&apiError{}).
		Get(fmt.Sprintf("/api/tickets/%d/messages", ticketID))
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if resp.IsError() {
		return nil, responseError("list messages", resp)
	}
	return messages, nil
}

func (c *Client) PostMessage(ctx context.Context, ticketID uint, msg OutgoingMessage) (*ChatMessage, error) {
	var created ChatMessage
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(msg).
		SetResult(&created).
		SetError(&apiError{}).
		Post(fmt.Sprintf("/api/tickets/%d/messages", ticketID))
	if err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}
	if resp.IsError() {
		return nil, responseError("post message", resp)
	}
	return &created, nil
}

func (c *Client) GetSuggestions(ctx context.Context, ticketID uint) ([]string, error) {
	var result struct {
		Suggestions []string `json:"suggestions"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&apiError{}).
		Post(fmt.Sprintf("/api/tickets/%d/suggestions", ticketID))
	if err != nil {
		return nil, fmt.Errorf("get suggestions: %w", err)
	}
	if resp.IsError() {
		return nil, responseError("get suggestions", resp)
	}
	return result.Suggestions, nil
}

func responseError(op string, resp *resty.Response) error {
	if apiErr, ok := resp.Error().(*apiError); ok {
		msg := apiErr.ErrorMessage
		if msg == "" {
			msg = apiErr.Message
		}
		if msg != "" {
			return fmt.Errorf("%s: %s (status %d)", op, msg, resp.StatusCode())
		}
	}
	return fmt.Errorf("%s: status %d", op, resp.StatusCode())
}
