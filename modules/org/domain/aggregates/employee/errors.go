package employee

import (
	"errors"
	"fmt"
)

var (
	ErrPersistence       = errors.New("employee persistence failed")
	ErrInvalidTransition = errors.New("invalid build phase transition")
)

// PersistenceError reports the storage failure that aborted a build. The
// surrounding transaction is rolled back by the caller.
type PersistenceError struct {
	Phase    Phase
	Employee string
	Err      error
}

func (e *PersistenceError) Error() string {
	if e.Employee == "" {
		return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Phase, e.Err)
	}
	return fmt.Sprintf("%s: %s %q: %v", ErrPersistence, e.Phase, e.Employee, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
