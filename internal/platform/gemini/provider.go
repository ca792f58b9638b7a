package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/profeai/profeai-api/internal/config"
	"github.com/profeai/profeai-api/internal/lesson"
	"github.com/profeai/profeai-api/internal/platform/logger"
	"google.golang.org/genai"
)

// Provider implements lesson.Provider on top of the genai SDK.
type Provider struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

var _ lesson.Provider = (*Provider)(nil)

// Option adjusts how the SDK client is built.
type Option func(*genai.ClientConfig)

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(url string) Option {
	return func(c *genai.ClientConfig) {
		c.HTTPOptions.BaseURL = url
	}
}

// WithHTTPClient sets the HTTP client used by the SDK.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *genai.ClientConfig) {
		c.HTTPClient = hc
	}
}

// NewProvider builds a Provider from configuration. It fails with
// lesson.ErrInvalidConfig when no usable credential or model is configured;
// callers are expected to check cfg.ProviderAvailable first.
func NewProvider(ctx context.Context, log *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Provider, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if !cfg.ProviderAvailable() {
		return nil, fmt.Errorf("%w: gemini API key is not set", lesson.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", lesson.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(clientConfig)
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", lesson.ErrInvalidConfig, err)
	}

	return &Provider{
		client: client,
		model:  cfg.ModelName,
		logger: log.With("component", "gemini_provider", "model", cfg.ModelName),
	}, nil
}

// Model returns the configured model name.
func (p *Provider) Model() string {
	return p.model
}

// Complete sends a single system+user exchange and returns the reply text.
func (p *Provider) Complete(ctx context.Context, c lesson.Completion) (string, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	temperature := c.Temperature
	genConfig := &genai.GenerateContentConfig{
		MaxOutputTokens: c.MaxTokens,
		Temperature:     &temperature,
	}
	if c.System != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: c.System}},
		}
	}
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: c.Prompt}},
	}}

	log.DebugContext(ctx, "calling Gemini",
		slog.Int("prompt_length", len(c.Prompt)),
		slog.Int("max_tokens", int(c.MaxTokens)))

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, genConfig)
	if err != nil {
		return "", mapError(err)
	}

	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", lesson.ErrContentBlocked, result.PromptFeedback.BlockReason)
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", lesson.ErrInvalidResponse)
	}
	if result.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: reply blocked by safety filters", lesson.ErrContentBlocked)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty reply", lesson.ErrInvalidResponse)
	}

	if result.UsageMetadata != nil {
		log.DebugContext(ctx, "Gemini call succeeded",
			slog.Int("input_tokens", int(result.UsageMetadata.PromptTokenCount)),
			slog.Int("output_tokens", int(result.UsageMetadata.CandidatesTokenCount)))
	}

	return text, nil
}
