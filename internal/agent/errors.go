package agent

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no document exists for an agent id.
var ErrNotFound = errors.New("agent not found")

// ParseError is returned when an agent document exists but is not a YAML
// mapping.
type ParseError struct {
	ID  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid YAML in agent file %s: %v", e.ID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
