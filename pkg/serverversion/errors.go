package serverversion

import (
	"errors"
	"fmt"
)

const (
	// FieldCommit identifies the commit hash lookup in a ResolutionError.
	FieldCommit = "commit"
	// FieldVersion identifies the version lookup in a ResolutionError.
	FieldVersion = "version"
)

// ErrNoVersion is returned when a manifest parses but carries no version.
var ErrNoVersion = errors.New("manifest has no version field")

// ResolutionError reports a lookup that failed while ThrowOnErrors was set.
type ResolutionError struct {
	Field string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Field, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
