// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

// Package utils holds the error aggregation helpers shared by the transfer
// orchestration.
package utils

import (
	"strings"
	"time"
)

// CombineErrors combines multiple errors to a single error
func CombineErrors(errs ...error) error {
	var errlist ErrorGroup
	errlist.Add(errs...)
	return errlist.Finish()
}

type combinedError []error

func (errs combinedError) Error() string {
	if len(errs) > 0 {
		limit := 5
		if len(errs) < limit {
			limit = len(errs)
		}
		allErrors := make([]string, 0, limit)
		for _, err := range errs[:limit] {
			allErrors = append(allErrors, err.Error())
		}
		return strings.Join(allErrors, "; ")
	}
	return ""
}

// ErrorGroup contains a set of non-nil errors
type ErrorGroup []error

// Add adds an error to the ErrorGroup if it is non-nil
func (group *ErrorGroup) Add(errs ...error) {
	for _, err := range errs {
		if err != nil {
			*group = append(*group, err)
		}
	}
}

// Finish returns nil if there were no non-nil errors, the first error if
// there was only one, and a combined error otherwise.
func (group ErrorGroup) Finish() error {
	if len(group) == 0 {
		return nil
	}
	if len(group) == 1 {
		return group[0]
	}
	return combinedError(group)
}

// CollectErrors returns the first error from the channel and all errors
// that happen within the given duration after it.
func CollectErrors(errch chan error, duration time.Duration) error {
	errch = discardNil(errch)
	errs := []error{<-errch}
	timeout := time.After(duration)
	for {
		select {
		case err := <-errch:
			errs = append(errs, err)
		case <-timeout:
			return CombineErrors(errs...)
		}
	}
}

// discard nil errors that are returned from services
func discardNil(ch chan error) chan error {
	r := make(chan error)
	go func() {
		for err := range ch {
			if err == nil {
				continue
			}
			r <- err
		}
		close(r)
	}()
	return r
}
