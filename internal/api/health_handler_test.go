package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		available    bool
		expectedMode string
	}{
		{"llm", true, ProviderModeLLM},
		{"catalog_only", false, ProviderModeCatalog},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			NewHealthHandler(tc.available, 36).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, http.StatusOK, rr.Code)
			var resp HealthResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "ok", resp.Status)
			assert.Equal(t, tc.expectedMode, resp.ProviderMode)
			assert.Equal(t, 36, resp.CatalogSize)
		})
	}
}
