package slip39

import slip39err "github.com/slip39kit/slip39/pkg/errors"

// Re-exported for callers that only import this package.
var (
	ErrInvalidConfiguration = slip39err.ErrInvalidConfiguration
	ErrInvalidShareSet      = slip39err.ErrInvalidShareSet
	ErrInvalidShare         = slip39err.ErrInvalidShare
)
