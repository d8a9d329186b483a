// Package backend talks to the hospital system that owns blood request
// records. The desk never persists requests itself.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rorical/BloodDesk/internal/models"
)

// Backend lists pending blood requests and records rejections.
type Backend interface {
	ListPending(ctx context.Context) ([]models.BloodRequest, error)
	Reject(ctx context.Context, code, reason string) error
}

var (
	ErrRequestNotFound = errors.New("blood request not found")
	ErrNotPending      = errors.New("blood request is not pending")
)

// APIError is a non-2xx answer from the hospital API.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Operation, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
