// Package logger wraps zerolog construction so every component logs the same
// shape: JSON to stdout with a role label and timestamps. Request handlers
// pull a request-scoped logger out of the context via zerolog's own helpers.
package logger

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a logger tagged with the given role ("server", "seed", ...).
func New(role string) zerolog.Logger {
	return zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Logger()
}

// Nop returns a logger that discards everything. For tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// FromRequest returns the logger attached to the request context, falling
// back to the global logger when none was attached.
func FromRequest(r *http.Request) *zerolog.Logger {
	return log.Ctx(r.Context())
}

// FromContext returns the logger attached to ctx.
func FromContext(ctx context.Context) *zerolog.Logger {
	return log.Ctx(ctx)
}
