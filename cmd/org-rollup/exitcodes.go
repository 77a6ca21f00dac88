package main

import (
	"strconv"

	"github.com/iota-uz/org-rollup/modules/org/domain/records"
	"github.com/iota-uz/org-rollup/modules/org/infrastructure/loader"
	"github.com/iota-uz/org-rollup/modules/org/services"
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
	exitInternal   = 1
	exitValidation = 2
	exitUsage      = 3
	exitIO         = 4
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if ok := as(err, &ce); ok {
		return ce.code
	}
	return exitInternal
}

// classify attaches an exit code to errors coming out of the loader and the
// rollup service. Errors that already carry a code pass through.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ce *cliError
	if as(err, &ce) {
		return err
	}
	var (
		fe *records.FormatError
		ne *strconv.NumError
		se *services.ServiceError
	)
	switch {
	case is(err, loader.ErrInputNotFound):
		return withCode(exitUsage, err)
	case as(err, &se):
		if se.Status >= 400 && se.Status < 500 {
			return withCode(exitValidation, err)
		}
		return withCode(exitInternal, err)
	case as(err, &fe), as(err, &ne):
		return withCode(exitValidation, err)
	default:
		return withCode(exitIO, err)
	}
}
