package hierarchy

import (
	"errors"
	"strings"
)

var ErrCyclicHierarchy = errors.New("cyclic hierarchy")

// CyclicHierarchyError names the reporting chain that loops back on itself,
// starting and ending with the same employee.
type CyclicHierarchyError struct {
	Cycle []string
}

func (e *CyclicHierarchyError) Error() string {
	return "cyclic hierarchy: " + strings.Join(e.Cycle, " -> ")
}

func (e *CyclicHierarchyError) Is(target error) bool {
	return target == ErrCyclicHierarchy
}
