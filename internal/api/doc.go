// Package api translates HTTP requests into LearningService calls. Handlers
// decode and validate JSON bodies, parse path IDs, and map service errors to
// status codes without leaking internal details; every error body carries
// the request's trace ID.
package api
