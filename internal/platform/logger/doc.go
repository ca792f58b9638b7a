// Package logger configures the process-wide slog logger and carries
// request-scoped loggers through context.Context.
//
// Setup installs a JSON handler at the configured level as the slog default.
// HTTP middleware stores a logger enriched with the request's trace ID via
// WithLogger; downstream code retrieves it with FromContextOrDefault so that
// every log line for a request shares that trace ID.
package logger
