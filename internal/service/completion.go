package service

import (
	"context"

	"github.com/silenusdev/assistant-marketing/internal/ai"
)

// CompletionClient is the slice of the AI client the services depend on.
type CompletionClient interface {
	CompleteChat(ctx context.Context, systemPrompt, userMessage, contextBlock string) (*ai.ChatResponse, error)
	CompletePlan(ctx context.Context, systemPrompt, userMessage string) (*ai.PlanGeneration, error)
	CompleteObjectifSuggestions(ctx context.Context, prompt string) ([]ai.ObjectifSuggestion, error)
	CompleteCibleSuggestions(ctx context.Context, prompt string) ([]ai.CibleSuggestion, error)
	CompleteArticlePlan(ctx context.Context, prompt string) (*ai.ArticlePlanGeneration, error)
}

var _ CompletionClient = (*ai.Client)(nil)
