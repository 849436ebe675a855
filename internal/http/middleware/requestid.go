package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDKey is the private context key for the request ID; a private
// struct type cannot collide with keys from other packages.
type requestIDKey struct{}

// headerRequestID is the header the ID is read from and echoed on, so a
// proxy-assigned ID survives and responses are correlatable either way.
const headerRequestID = "X-Request-Id"

// RequestID tags every request with a unique ID — taken from the
// incoming X-Request-Id header when a proxy already assigned one,
// generated otherwise — and makes it available via FromContext for the
// logging middleware and handlers.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(headerRequestID, id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the request ID attached by RequestID, or "" when
// the middleware did not run (e.g. in direct handler tests).
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
