package history

import (
	"errors"
	"fmt"
)

// Common errors for history operations.
var (
	// ErrNotFound means a Locator could not resolve an identity key.
	ErrNotFound = errors.New("entity not found")

	// ErrContractViolation means Extend was asked to merge an action that is
	// not an extension of the receiver.
	ErrContractViolation = errors.New("history contract violation")
)

// LookupError reports an entity that could not be resolved while applying
// an action. It is non-fatal: the history still advances.
type LookupError struct {
	Op  string // "undo" or "redo"
	Key Key
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: cannot find %s", e.Op, e.Key)
}

// Unwrap lets errors.Is match ErrNotFound.
func (e *LookupError) Unwrap() error {
	return ErrNotFound
}
