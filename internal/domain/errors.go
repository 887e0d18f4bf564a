// Package domain holds the sentinel errors and store key namespace shared
// between layers.
package domain

import "errors"

var (
	// ErrInvalidRequest signals a request rejected before any scoring work.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrStoreUnavailable signals a failed candidate-store read. Fatal for
	// the request and retryable by the caller.
	ErrStoreUnavailable = errors.New("contact store unavailable")
	// ErrClassifierUnavailable signals an unreachable or unparsable external
	// classifier. Always absorbed by the weight synthesizer's local fallback,
	// never surfaced to callers.
	ErrClassifierUnavailable = errors.New("classifier unavailable")
)

// KeyPrefix namespaces every key this service reads or writes in the store.
const KeyPrefix = "contactrank:"
