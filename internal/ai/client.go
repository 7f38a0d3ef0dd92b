package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"

	"github.com/silenusdev/assistant-marketing/internal/config"
)

// FallbackMessage is the deterministic apology returned when every
// completion attempt failed. The orchestrator never surfaces a nil response
// to the UI.
const FallbackMessage = "Désolé, je rencontre des difficultés techniques pour traiter votre demande. " +
	"Veuillez réessayer dans quelques instants."

const genericFallbackError = "Service IA temporairement indisponible"

// BackoffConfig controls the delay between retry attempts.
type BackoffConfig struct {
	Base       time.Duration
	Multiplier float64
	Max        time.Duration
}

// DefaultBackoffConfig returns the retry delay defaults.
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		Base:       250 * time.Millisecond,
		Multiplier: 2.0,
		Max:        5 * time.Second,
	}
}

// Client wraps the completion API, enforcing schema-validated JSON output
// with bounded retries and jittered exponential backoff.
type Client struct {
	api         *openai.Client
	model       string
	timeout     time.Duration
	maxAttempts int
	backoff     BackoffConfig
	logger      *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMaxAttempts overrides the attempt limit.
func WithMaxAttempts(n int) ClientOption {
	return func(c *Client) {
		c.maxAttempts = n
	}
}

// WithBackoff overrides the backoff configuration.
func WithBackoff(cfg BackoffConfig) ClientOption {
	return func(c *Client) {
		c.backoff = cfg
	}
}

// WithBaseURL points the client at an alternate API endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		api := openai.NewClient(
			option.WithAPIKey("test"),
			option.WithBaseURL(url),
			option.WithMaxRetries(0),
		)
		c.api = &api
	}
}

// NewClient builds a completion client from configuration.
func NewClient(cfg config.Config, logger *zap.Logger, opts ...ClientOption) (*Client, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not configured")
	}

	// The attempt loop below owns retries; the SDK must not retry on its
	// own underneath it.
	api := openai.NewClient(
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(0),
	)

	c := &Client{
		api:         &api,
		model:       cfg.OpenAIModel,
		timeout:     cfg.OpenAITimeout,
		maxAttempts: 2,
		backoff:     DefaultBackoffConfig(),
		logger:      logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// validated is implemented by every response schema.
type validated interface {
	Validate() error
}

// CompleteChat runs a chat completion expecting the free-form chat schema.
// contextBlock, when non-empty, is injected as a second system message.
func (c *Client) CompleteChat(ctx context.Context, systemPrompt, userMessage, contextBlock string) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.complete(ctx, systemPrompt, userMessage, contextBlock, 0, 0, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompletePlan runs a completion expecting the plan-generation schema.
func (c *Client) CompletePlan(ctx context.Context, systemPrompt, userMessage string) (*PlanGeneration, error) {
	var out PlanGeneration
	if err := c.complete(ctx, systemPrompt, userMessage, "", 0, 0, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

const suggestionSystemPrompt = "Vous êtes un expert en stratégie marketing B2B. Vous répondez toujours en JSON valide."

// CompleteObjectifSuggestions requests objective suggestions.
func (c *Client) CompleteObjectifSuggestions(ctx context.Context, prompt string) ([]ObjectifSuggestion, error) {
	var out ObjectifSuggestions
	if err := c.complete(ctx, suggestionSystemPrompt, prompt, "", 0.7, 1000, &out); err != nil {
		return nil, err
	}
	return out.Objectifs, nil
}

// CompleteCibleSuggestions requests persona suggestions.
func (c *Client) CompleteCibleSuggestions(ctx context.Context, prompt string) ([]CibleSuggestion, error) {
	var out CibleSuggestions
	if err := c.complete(ctx, suggestionSystemPrompt, prompt, "", 0.7, 1500, &out); err != nil {
		return nil, err
	}
	return out.Cibles, nil
}

// CompleteArticlePlan requests a content plan with article suggestions.
func (c *Client) CompleteArticlePlan(ctx context.Context, prompt string) (*ArticlePlanGeneration, error) {
	var out ArticlePlanGeneration
	if err := c.complete(ctx, suggestionSystemPrompt, prompt, "", 0.8, 1500, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Fallback returns the deterministic degraded chat response used whenever
// the completion client fails.
func Fallback(errMsg string) *ChatResponse {
	if errMsg == "" {
		errMsg = genericFallbackError
	}
	return &ChatResponse{
		MessageMarkdown:  FallbackMessage,
		Actions:          []Action{},
		EntitiesToCreate: []EntityToCreate{},
		Errors:           []string{errMsg},
	}
}

// complete runs the attempt loop: call the API requesting a JSON object,
// decode into out, validate. Rate limits, provider errors, malformed JSON
// and schema violations are retried up to the attempt limit; an empty
// response body is a soft failure retried without backoff; anything else
// aborts immediately.
func (c *Client) complete(ctx context.Context, systemPrompt, userMessage, contextBlock string, temperature float64, maxTokens int, out validated) error {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
	}
	if contextBlock != "" {
		messages = append(messages, openai.SystemMessage("Contexte:\n"+contextBlock))
	}
	messages = append(messages, openai.UserMessage(userMessage))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: messages,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}
	if temperature > 0 {
		params.Temperature = openai.Float(temperature)
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}

	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		c.logger.Info("completion call",
			zap.String("model", c.model),
			zap.Int("attempt", attempt),
			zap.Int("user_message_length", len(userMessage)),
		)

		reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.api.Chat.Completions.New(reqCtx, params)
		cancel()

		if err == nil {
			if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
				lastErr = fmt.Errorf("empty completion response")
				c.logger.Warn("empty completion response", zap.Int("attempt", attempt))
				continue
			}

			content := resp.Choices[0].Message.Content
			if decodeErr := json.Unmarshal([]byte(content), out); decodeErr != nil {
				lastErr = fmt.Errorf("decode completion JSON: %w", decodeErr)
				c.logger.Error("malformed completion JSON", zap.Int("attempt", attempt), zap.Error(decodeErr))
			} else if valErr := out.Validate(); valErr != nil {
				lastErr = fmt.Errorf("validate completion: %w", valErr)
				c.logger.Error("completion schema validation failed", zap.Int("attempt", attempt), zap.Error(valErr))
			} else {
				c.logger.Info("completion validated",
					zap.Int64("tokens_used", resp.Usage.TotalTokens),
					zap.String("response_type", fmt.Sprintf("%T", out)),
				)
				return nil
			}
		} else {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			var apiErr *openai.Error
			switch {
			case errors.As(err, &apiErr):
				if apiErr.StatusCode == http.StatusTooManyRequests {
					c.logger.Error("completion rate limited", zap.Int("attempt", attempt), zap.Error(err))
				} else {
					c.logger.Error("completion provider error", zap.Int("attempt", attempt), zap.Error(err))
				}
				lastErr = err
			case errors.Is(err, context.DeadlineExceeded):
				c.logger.Error("completion timed out", zap.Int("attempt", attempt), zap.Error(err))
				lastErr = err
			default:
				// Unexpected failure: abort without further attempts.
				c.logger.Error("unexpected completion error", zap.Int("attempt", attempt), zap.Error(err))
				return err
			}
		}

		if attempt < c.maxAttempts {
			delay := c.backoffDelay(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("completion failed after %d attempts: %w", c.maxAttempts, lastErr)
}

// backoffDelay computes the jittered exponential delay before the next
// attempt. Jitter avoids hammering a rate-limited provider in lockstep.
func (c *Client) backoffDelay(attempt int) time.Duration {
	d := float64(c.backoff.Base)
	for i := 1; i < attempt; i++ {
		d *= c.backoff.Multiplier
	}
	if max := float64(c.backoff.Max); d > max {
		d = max
	}
	// Full jitter over [d/2, d).
	return time.Duration(d/2 + rand.Float64()*d/2)
}
