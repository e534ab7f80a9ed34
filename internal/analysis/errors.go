package analysis

import "errors"

var (
	// ErrNotFound means the path does not resolve to a résumé the caller owns.
	ErrNotFound = errors.New("curriculo not found")
	// ErrRetrieval means the stored file could not be fetched.
	ErrRetrieval = errors.New("failed to retrieve curriculo file")
	// ErrTooLarge means the stored file exceeds the analyzable size.
	ErrTooLarge = errors.New("curriculo exceeds the size limit")
	// ErrValidation means the request itself is malformed.
	ErrValidation = errors.New("invalid analysis request")
)
