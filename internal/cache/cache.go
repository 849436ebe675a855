// Package cache defines the Cache interface — a contract that any cache
// backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// Handlers (HTTP layer) should not know or care where cached results
// live. By depending only on this interface:
//
//   - Switching backends (in-memory ↔ Redis) = change one line in
//     main.go. Zero handler changes.
//
//   - Writing tests = pass a fake that satisfies the interface. No real
//     Redis needed for unit tests.
//
// The cache holds only recomputable calculation responses with a TTL —
// it is an ephemeral shared memo, not storage. Submitted loans are never
// persisted anywhere.
package cache

import "context"

// Cache is the result-cache contract. Keys are derived from validated
// loan parameters, values are fully serialized response bodies.
type Cache interface {
	// Get returns the cached body for key and whether it was present.
	// A backend failure reads as a miss — the caller recomputes.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores body under key for the backend's configured TTL.
	Set(ctx context.Context, key string, body string) error
}
