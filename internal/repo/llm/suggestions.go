package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/nguyentranbao-ct/support-desk/internal/models"
)

const (
	// historyWindow bounds the conversation context sent to the model.
	historyWindow = 5

	suggestionTemperature = 0.7
	suggestionMaxTokens   = 500
	completionTimeout     = 30 * time.Second

	systemInstruction = "You are a helpful assistant that generates professional customer support reply suggestions."
)

// FallbackSuggestions is returned whenever the external call or its response
// cannot be used. The strings are part of the endpoint contract; tests pin
// them.
var FallbackSuggestions = []string{
	"Thank you for bringing this to our attention. Let me look into this issue for you.",
	"I understand your concern. Could you please provide more details so I can assist you better?",
	"I apologize for any inconvenience. Let me help you resolve this matter quickly.",
}

var promptTmpl = template.Must(template.New("suggestions").Parse(`You are a customer support assistant helping generate professional reply suggestions for a support agent.

Ticket Information:
- Title: {{.Title}}
- Description: {{.Description}}
- Priority: {{.Priority}}

Recent Conversation:
{{.History}}

Generate 3 professional and helpful reply suggestions that a support agent could use to respond to the customer. Each suggestion should be:
1. Professional and empathetic
2. Actionable and solution-focused
3. Appropriate for the conversation context
4. Between 20-100 words

Return the suggestions in JSON format: {"suggestions": ["suggestion1", "suggestion2", "suggestion3"]}`))

// SuggestionService produces candidate agent replies for a ticket
// conversation. It never fails: any problem with the external model degrades
// to FallbackSuggestions.
type SuggestionService interface {
	Suggest(ctx context.Context, ticket *models.Ticket, history []models.ChatMessage) []string
}

type suggestionService struct {
	completer Completer
}

func NewSuggestionService(completer Completer) SuggestionService {
	return &suggestionService{completer: completer}
}

func (s *suggestionService) Suggest(ctx context.Context, ticket *models.Ticket, history []models.ChatMessage) []string {
	prompt, err := buildPrompt(ticket, history)
	if err != nil {
		log.Errorw(ctx, "build suggestion prompt", "error", err, "ticket_id", ticket.ID)
		return FallbackSuggestions
	}

	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	raw, err := s.completer.Complete(ctx, CompletionRequest{
		System:          systemInstruction,
		Prompt:          prompt,
		Temperature:     suggestionTemperature,
		MaxOutputTokens: suggestionMaxTokens,
	})
	if err != nil {
		log.Errorw(ctx, "generate suggestions", "error", err, "ticket_id", ticket.ID)
		return FallbackSuggestions
	}

	suggestions, err := parseSuggestions(raw)
	if err != nil {
		log.Errorw(ctx, "parse suggestions", "error", err, "ticket_id", ticket.ID)
		return FallbackSuggestions
	}
	return suggestions
}

func buildPrompt(ticket *models.Ticket, history []models.ChatMessage) (string, error) {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	lines := make([]string, 0, len(history))
	for _, msg := range history {
		lines = append(lines, fmt.Sprintf("%s (%s): %s", msg.SenderName, msg.SenderType, msg.Message))
	}

	var buf bytes.Buffer
	err := promptTmpl.Execute(&buf, map[string]any{
		"Title":       ticket.Title,
		"Description": ticket.Description,
		"Priority":    ticket.Priority,
		"History":     strings.Join(lines, "\n"),
	})
	if err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// parseSuggestions decodes the model output, tolerating a markdown code
// fence. A well-formed object without a suggestions field yields an empty
// list rather than the fallback.
func parseSuggestions(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if after, ok := strings.CutPrefix(raw, "```json"); ok {
		raw = after
	} else if after, ok := strings.CutPrefix(raw, "```"); ok {
		raw = after
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")

	var result struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("unmarshal model output: %w", err)
	}
	if result.Suggestions == nil {
		return []string{}, nil
	}
	return result.Suggestions, nil
}
