package service

import (
	"errors"
	"strings"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrStoreFailed = errors.New("failed to store order")
	ErrEmptyCartID = errors.New("cart id is required")
)

// ValidationError lists every problem found in a request payload.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) add(problem string) {
	e.Problems = append(e.Problems, problem)
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}
