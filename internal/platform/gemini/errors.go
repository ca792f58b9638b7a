package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/profeai/profeai-api/internal/lesson"
	"google.golang.org/genai"
)

// mapError translates an SDK error into a lesson sentinel, keeping the
// original error in the chain.
func mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", lesson.ErrProviderUnavailable, err)
	}

	code, ok := apiErrorCode(err)
	if !ok {
		return fmt.Errorf("%w: %w", lesson.ErrProviderUnavailable, err)
	}

	switch {
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", lesson.ErrRateLimited, err)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: credential rejected: %w", lesson.ErrInvalidConfig, err)
	case code >= 500:
		return fmt.Errorf("%w: %w", lesson.ErrProviderUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", lesson.ErrInvalidResponse, err)
	}
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}
