package chatclient

import (
	"context"
	"errors"
	"strings"
	"sync"
)

type State string

const (
	StateLoading             State = "loading"
	StateReady               State = "ready"
	StateAwaitingSuggestions State = "awaiting_suggestions"
	StateSuggestionsShown    State = "suggestions_shown"
	StateSending             State = "sending"
)

var (
	ErrNotLoaded           = errors.New("session not loaded")
	ErrEmptyCompose        = errors.New("compose buffer is empty")
	ErrSendInFlight        = errors.New("send already in flight")
	ErrSuggestionsInFlight = errors.New("suggestion request already in flight")
	ErrNoSuchSuggestion    = errors.New("no suggestion at that index")
)

// Session drives one ticket's chat view. Loading the ticket, the message
// transcript, the compose buffer, and the suggestion panel all live here so a
// UI only renders State() and calls the verbs. Suggestion requests and sends
// are independent operations with their own in-flight guards; a failed call
// leaves the session usable and the error retrievable via LastError.
type Session struct {
	client    *Client
	ticketID  uint
	agentID   *uint
	agentName string

	mu sync.Mutex

	loaded   bool
	ticket   *Ticket
	messages []ChatMessage

	compose     string
	suggestions []string

	sending    bool
	suggesting bool

	lastErr error
}

func NewSession(client *Client, ticketID uint, agentID *uint, agentName string) *Session {
	return &Session{
		client:    client,
		ticketID:  ticketID,
		agentID:   agentID,
		agentName: agentName,
	}
}

// Load fetches the ticket and its transcript. The session stays in the
// loading state until it succeeds; it may be retried after a failure.
func (s *Session) Load(ctx context.Context) error {
	ticket, err := s.client.GetTicket(ctx, s.ticketID)
	if err != nil {
		s.fail(err)
		return err
	}
	messages, err := s.client.ListMessages(ctx, s.ticketID)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticket = ticket
	s.messages = messages
	s.loaded = true
	s.lastErr = nil
	return nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case !s.loaded:
		return StateLoading
	case s.sending:
		return StateSending
	case s.suggesting:
		return StateAwaitingSuggestions
	case len(s.suggestions) > 0:
		return StateSuggestionsShown
	default:
		return StateReady
	}
}

func (s *Session) Ticket() *Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticket
}

func (s *Session) Messages() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) Compose() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compose
}

func (s *Session) SetCompose(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compose = text
}

func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// RequestSuggestions asks the server for reply suggestions. Only one request
// may be in flight at a time; sending is not blocked while it runs.
func (s *Session) RequestSuggestions(ctx context.Context) error {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	if s.suggesting {
		s.mu.Unlock()
		return ErrSuggestionsInFlight
	}
	s.suggesting = true
	s.mu.Unlock()

	suggestions, err := s.client.GetSuggestions(ctx, s.ticketID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggesting = false
	if err != nil {
		s.lastErr = err
		return err
	}
	s.suggestions = suggestions
	s.lastErr = nil
	return nil
}

// AcceptSuggestion copies the chosen suggestion into the compose buffer and
// dismisses the panel. It never sends; the agent edits and sends explicitly.
func (s *Session) AcceptSuggestion(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.suggestions) {
		return ErrNoSuchSuggestion
	}
	s.compose = s.suggestions[i]
	s.suggestions = nil
	return nil
}

func (s *Session) DismissSuggestions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = nil
}

// Send posts the compose buffer as an agent message, refetches the
// transcript, and clears the buffer. Blank buffers and concurrent sends are
// rejected before any network call.
func (s *Session) Send(ctx context.Context) (*ChatMessage, error) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return nil, ErrNotLoaded
	}
	if strings.TrimSpace(s.compose) == "" {
		s.mu.Unlock()
		return nil, ErrEmptyCompose
	}
	if s.sending {
		s.mu.Unlock()
		return nil, ErrSendInFlight
	}
	s.sending = true
	body := s.compose
	s.mu.Unlock()

	created, err := s.client.PostMessage(ctx, s.ticketID, OutgoingMessage{
		SenderID:   s.agentID,
		SenderName: s.agentName,
		SenderType: "agent",
		Message:    body,
	})
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.sending = false
		s.lastErr = err
		return nil, err
	}

	// refetch so customer messages that landed meanwhile show up too
	messages, err := s.client.ListMessages(ctx, s.ticketID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sending = false
	if err != nil {
		s.messages = append(s.messages, *created)
	} else {
		s.messages = messages
	}
	s.compose = ""
	s.lastErr = nil
	return created, nil
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}
