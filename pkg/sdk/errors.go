package contactrank

import "github.com/meshly/contactrank/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest   = domain.ErrInvalidRequest
	ErrStoreUnavailable = domain.ErrStoreUnavailable
)
