package gateway

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the remote service does not know the
// referenced transaction id.
var ErrNotFound = errors.New("transaction not found")

// NetworkError wraps a failed remote call: transport failures as well as
// non-success envelopes. Local state must stay unchanged when one is returned.
type NetworkError struct {
	Op      string
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
