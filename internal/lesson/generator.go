package lesson

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/profeai/profeai-api/internal/platform/logger"
)

// Sampling parameters for the two kinds of provider calls.
const (
	LessonMaxTokens        int32   = 1500
	LessonTemperature      float32 = 0.7
	AlternativeMaxTokens   int32   = 1000
	AlternativeTemperature float32 = 0.8
)

// DefaultRequestTimeout bounds a provider call unless WithRequestTimeout says otherwise.
const DefaultRequestTimeout = 30 * time.Second

// Completion is a single system+user exchange sent to a language model.
type Completion struct {
	System      string
	Prompt      string
	MaxTokens   int32
	Temperature float32
}

// Provider is the boundary to an external language model. Implementations
// return the reply text, or an error wrapping one of the package sentinels.
type Provider interface {
	Complete(ctx context.Context, c Completion) (string, error)
}

// Generator produces lessons and alternative explanations. Its operations are
// total: provider failures are logged and replaced by catalog or template
// content, never returned.
type Generator struct {
	provider Provider
	catalog  *Catalog
	logger   *slog.Logger
	timeout  time.Duration
}

// Option configures a Generator.
type Option func(*Generator)

// WithRequestTimeout bounds each provider call. Zero or negative disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(g *Generator) {
		g.timeout = d
	}
}

// NewGenerator builds a Generator. A nil provider makes the Generator
// catalog-only for its whole lifetime. A nil catalog selects the embedded one.
func NewGenerator(provider Provider, catalog *Catalog, log *slog.Logger, opts ...Option) *Generator {
	if catalog == nil {
		catalog = MustDefaultCatalog()
	}
	if log == nil {
		log = slog.Default()
	}
	g := &Generator{
		provider: provider,
		catalog:  catalog,
		logger:   log.With("component", "lesson_generator"),
		timeout:  DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ProviderAvailable reports whether the Generator will call the language model.
func (g *Generator) ProviderAvailable() bool {
	return g.provider != nil
}

// Catalog returns the catalog used for fallback content.
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

// GenerateLesson returns a lesson for req. The result is generated by the
// provider when possible and picked from the catalog otherwise.
func (g *Generator) GenerateLesson(ctx context.Context, req Request) Result {
	log := logger.FromContextOrDefault(ctx, g.logger).With(
		slog.String("specialization", req.Specialization),
		slog.String("level", req.Level),
	)

	if g.provider == nil {
		log.Debug("provider unavailable, serving catalog lesson")
		return g.fallbackLesson(req)
	}

	text, err := g.complete(ctx, Completion{
		System:      SystemPrompt(req.Specialization, req.Level),
		Prompt:      UserPrompt(req.Topic, req.PriorFeedback, req.Specialization),
		MaxTokens:   LessonMaxTokens,
		Temperature: LessonTemperature,
	})
	if err != nil {
		log.Warn("lesson generation failed, serving catalog lesson",
			slog.String("error", err.Error()),
			slog.String("reason", failureReason(err)))
		return g.fallbackLesson(req)
	}

	rec := Parse(text)
	log.Debug("lesson generated", slog.String("title", rec.Title))
	return Result{Record: rec, Provenance: ProvenanceGenerated}
}

// GenerateAlternativeExplanation rephrases originalContent for a user who
// reported it as feedbackType. Without a working provider it returns
// AlternativeTemplate(originalContent).
func (g *Generator) GenerateAlternativeExplanation(ctx context.Context, originalContent, feedbackType string) Explanation {
	log := logger.FromContextOrDefault(ctx, g.logger).With(
		slog.String("feedback_type", feedbackType),
	)

	if g.provider == nil {
		log.Debug("provider unavailable, serving template explanation")
		return Explanation{Text: AlternativeTemplate(originalContent), Provenance: ProvenanceFallback}
	}

	text, err := g.complete(ctx, Completion{
		System:      AlternativeSystemPrompt,
		Prompt:      AlternativePrompt(originalContent, feedbackType),
		MaxTokens:   AlternativeMaxTokens,
		Temperature: AlternativeTemperature,
	})
	if err != nil {
		log.Warn("alternative explanation failed, serving template explanation",
			slog.String("error", err.Error()),
			slog.String("reason", failureReason(err)))
		return Explanation{Text: AlternativeTemplate(originalContent), Provenance: ProvenanceFallback}
	}

	return Explanation{Text: text, Provenance: ProvenanceGenerated}
}

// complete makes exactly one provider call. Blank replies are errors.
func (g *Generator) complete(ctx context.Context, c Completion) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	text, err := g.provider.Complete(ctx, c)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrInvalidResponse
	}
	return text, nil
}

func (g *Generator) fallbackLesson(req Request) Result {
	entry := PickRandom(g.catalog.Lookup(req.Specialization, req.Level))
	return Result{Record: entry, Provenance: ProvenanceFallback}
}

// failureReason gives a stable label for log aggregation.
func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrContentBlocked):
		return "content_blocked"
	case errors.Is(err, ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, ErrProviderUnavailable):
		return "provider_unavailable"
	default:
		return "unknown"
	}
}
