package model

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks invalid or missing configuration and input data:
	// unknown elimination method, cut_weakest without weights, unknown alternatives.
	ErrConfiguration = errors.New("configuration error")

	// ErrInternal marks a broken algorithmic invariant. It is never retried.
	ErrInternal = errors.New("internal error")
)

// EliminationError adds cycle elimination context to an underlying error
type EliminationError struct {
	Method    EliminationMethod
	Cycle     []int64 // Node ids of the cycle being eliminated, if any
	Iteration int // Zero when no cycle was eliminated yet
	Err       error
}

func (e *EliminationError) Error() string {
	if e.Iteration == 0 {
		return fmt.Sprintf("eliminating cycles (%s): %v", e.Method, e.Err)
	}
	if len(e.Cycle) == 0 {
		return fmt.Sprintf("eliminating cycles (%s, iteration %d): %v", e.Method, e.Iteration, e.Err)
	}
	return fmt.Sprintf("eliminating cycle %v (%s, iteration %d): %v", e.Cycle, e.Method, e.Iteration, e.Err)
}

func (e *EliminationError) Unwrap() error {
	return e.Err
}
