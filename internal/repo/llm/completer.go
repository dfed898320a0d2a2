package llm

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/nguyentranbao-ct/support-desk/internal/config"
)

// Completer is the single seam to the external model. Tests substitute it;
// production wires the genkit-backed implementation below.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type CompletionRequest struct {
	System          string
	Prompt          string
	Temperature     float64
	MaxOutputTokens int
}

type genkitCompleter struct {
	genkit *genkit.Genkit
	model  string
}

func NewGenkitCompleter(cfg *config.Config, g *genkit.Genkit) Completer {
	return &genkitCompleter{
		genkit: g,
		model:  cfg.LLM.Model,
	}
}

func (c *genkitCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := genkit.Generate(ctx, c.genkit,
		ai.WithMessages(
			ai.NewSystemTextMessage(req.System),
			ai.NewUserTextMessage(req.Prompt),
		),
		ai.WithModelName(c.model),
		ai.WithConfig(map[string]any{
			"temperature":     req.Temperature,
			"maxOutputTokens": req.MaxOutputTokens,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("generate completion: %w", err)
	}
	return resp.Text(), nil
}
