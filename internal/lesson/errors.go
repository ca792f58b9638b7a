package lesson

import "errors"

// Errors reported by Provider implementations. They never escape the
// Generator; they are logged and trigger fallback content.
var (
	// ErrProviderUnavailable is returned when the provider cannot be reached
	// or answers with a server-side failure.
	ErrProviderUnavailable = errors.New("language model provider unavailable")

	// ErrRateLimited is returned when the provider rejects the call because of quota.
	ErrRateLimited = errors.New("language model provider rate limited")

	// ErrInvalidResponse is returned when the provider reply is empty or malformed.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the provider blocks the reply with safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when a provider cannot be built from its configuration.
	ErrInvalidConfig = errors.New("invalid provider configuration")

	// ErrInvalidCatalog is returned when catalog data fails validation.
	ErrInvalidCatalog = errors.New("invalid lesson catalog")
)
