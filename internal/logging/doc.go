// Package logging builds the application's slog loggers (console and JSON
// handlers), provides attr helpers, and derives standard fields (job_id,
// stage) from request contexts.
package logging
