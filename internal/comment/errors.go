package comment

import "errors"

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("invalid comment")

	// ErrCollectionAbsent means the backing table has not been provisioned yet.
	// Readers treat it as an empty feed.
	ErrCollectionAbsent = errors.New("comments collection does not exist")

	// ErrNotConfigured is returned by the placeholder store used when no
	// persistence settings were provided.
	ErrNotConfigured = errors.New("persistence is not configured")
)

// ValidationError describes the first rule a candidate comment failed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Is reports ErrValidation as a match so callers can use errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
