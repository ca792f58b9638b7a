package gemini

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/profeai/profeai-api/internal/config"
	"github.com/profeai/profeai-api/internal/lesson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey:          "test-key",
		ModelName:             "gemini-2.0-flash",
		RequestTimeoutSeconds: 30,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// capture stores the last generateContent request body seen by the fake server.
type capture struct {
	mu   sync.Mutex
	path string
	body map[string]any
}

func (c *capture) get() (string, map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path, c.body
}

func newTestProvider(t *testing.T, status int, reply any) (*Provider, *capture) {
	t.Helper()
	seen := &capture{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		seen.mu.Lock()
		seen.path = r.URL.Path
		seen.body = body
		seen.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(server.Close)

	p, err := NewProvider(context.Background(), discardLogger(), testLLMConfig(), WithBaseURL(server.URL))
	require.NoError(t, err)
	return p, seen
}

func textReply(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": text}},
			},
			"finishReason": finish,
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     12,
			"candidatesTokenCount": 34,
			"totalTokenCount":      46,
		},
	}
}

func errorReply(code int, status string) map[string]any {
	return map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": "fake failure",
			"status":  status,
		},
	}
}

func completion() lesson.Completion {
	return lesson.Completion{
		System:      "You are ProfeAI.",
		Prompt:      "Generate a lesson about: tokens",
		MaxTokens:   1500,
		Temperature: 0.7,
	}
}

func TestNewProvider_Validation(t *testing.T) {
	t.Parallel()

	cfg := testLLMConfig()
	cfg.GeminiAPIKey = ""
	_, err := NewProvider(context.Background(), discardLogger(), cfg)
	assert.ErrorIs(t, err, lesson.ErrInvalidConfig)

	cfg = testLLMConfig()
	cfg.GeminiAPIKey = config.PlaceholderGeminiAPIKey
	_, err = NewProvider(context.Background(), discardLogger(), cfg)
	assert.ErrorIs(t, err, lesson.ErrInvalidConfig)

	cfg = testLLMConfig()
	cfg.ModelName = ""
	_, err = NewProvider(context.Background(), discardLogger(), cfg)
	assert.ErrorIs(t, err, lesson.ErrInvalidConfig)

	_, err = NewProvider(context.Background(), nil, testLLMConfig())
	assert.Error(t, err)

	p, err := NewProvider(context.Background(), discardLogger(), testLLMConfig())
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", p.Model())
}

func TestProvider_Complete_HappyPath(t *testing.T) {
	t.Parallel()
	p, seen := newTestProvider(t, http.StatusOK, textReply("TITLE: Tokens\nCONTENT: Words become numbers.", "STOP"))

	text, err := p.Complete(context.Background(), completion())
	require.NoError(t, err)
	assert.Equal(t, "TITLE: Tokens\nCONTENT: Words become numbers.", text)

	path, body := seen.get()
	assert.True(t, strings.HasSuffix(path, "models/gemini-2.0-flash:generateContent"), "path %s", path)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "You are ProfeAI.")
	assert.Contains(t, string(raw), "Generate a lesson about: tokens")
	assert.Contains(t, string(raw), `"maxOutputTokens":1500`)
}

func TestProvider_Complete_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		reply  any
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, errorReply(429, "RESOURCE_EXHAUSTED"), lesson.ErrRateLimited},
		{"server error", http.StatusInternalServerError, errorReply(500, "INTERNAL"), lesson.ErrProviderUnavailable},
		{"unavailable", http.StatusServiceUnavailable, errorReply(503, "UNAVAILABLE"), lesson.ErrProviderUnavailable},
		{"bad key", http.StatusForbidden, errorReply(403, "PERMISSION_DENIED"), lesson.ErrInvalidConfig},
		{"bad request", http.StatusBadRequest, errorReply(400, "INVALID_ARGUMENT"), lesson.ErrInvalidResponse},
		{"no candidates", http.StatusOK, map[string]any{"candidates": []any{}}, lesson.ErrInvalidResponse},
		{"empty text", http.StatusOK, textReply("", "STOP"), lesson.ErrInvalidResponse},
		{"safety finish", http.StatusOK, textReply("partial", "SAFETY"), lesson.ErrContentBlocked},
		{
			"prompt blocked",
			http.StatusOK,
			map[string]any{"promptFeedback": map[string]any{"blockReason": "SAFETY"}},
			lesson.ErrContentBlocked,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p, _ := newTestProvider(t, tc.status, tc.reply)

			text, err := p.Complete(context.Background(), completion())
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, text)
		})
	}
}

func TestProvider_Complete_ContextDeadline(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	p, err := NewProvider(context.Background(), discardLogger(), testLLMConfig(), WithBaseURL(server.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = p.Complete(ctx, completion())
	require.Error(t, err)
	assert.ErrorIs(t, err, lesson.ErrProviderUnavailable)
}

func TestProvider_DrivesGenerator(t *testing.T) {
	t.Parallel()
	p, _ := newTestProvider(t, http.StatusOK, textReply("TITLE: Embeddings\nCONTENT: Vectors.\nEXERCISE: Plot some.", "STOP"))

	g := lesson.NewGenerator(p, nil, discardLogger())
	res := g.GenerateLesson(context.Background(), lesson.Request{Specialization: "Theory", Level: "Beginner"})

	assert.Equal(t, lesson.ProvenanceGenerated, res.Provenance)
	assert.Equal(t, lesson.Record{Title: "Embeddings", Content: "Vectors.", Exercise: "Plot some."}, res.Record)
}

func TestProvider_GeneratorFallsBackOnRateLimit(t *testing.T) {
	t.Parallel()
	p, _ := newTestProvider(t, http.StatusTooManyRequests, errorReply(429, "RESOURCE_EXHAUSTED"))

	g := lesson.NewGenerator(p, nil, discardLogger())
	res := g.GenerateLesson(context.Background(), lesson.Request{Specialization: "Tooling", Level: "Beginner"})

	assert.Equal(t, lesson.ProvenanceFallback, res.Provenance)
	assert.NotEmpty(t, res.Record.Content)
}
