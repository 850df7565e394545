package main

import (
	"errors"

	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/chart"
	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/employee"
	"github.com/iota-uz/orgchart/modules/org/domain/hierarchy"
	"github.com/iota-uz/orgchart/modules/org/services"
)

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK         = 0
	exitValidation = 2
	exitUsage      = 3
	exitDB         = 4
	exitDBWrite    = 5
	exitNotFound   = 6
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// classify maps service errors onto exit codes. Errors that already carry a
// code keep it.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return err
	}
	switch {
	case errors.Is(err, hierarchy.ErrCyclicHierarchy), errors.Is(err, services.ErrValidation):
		return withCode(exitValidation, err)
	case errors.Is(err, chart.ErrNotFound):
		return withCode(exitNotFound, err)
	case errors.Is(err, employee.ErrPersistence):
		return withCode(exitDBWrite, err)
	default:
		return withCode(exitDB, err)
	}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return 1
}
