package services

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Failure taxonomy surfaced to callers. Routes map these to HTTP statuses
// with errors.Is; timeouts are retryable, the rest are terminal.
var (
	ErrValidation       = errors.New("invalid input")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrTimeout          = errors.New("store timeout")
	ErrConflict         = errors.New("conflict")
)

// classifyStoreErr annotates raw store failures with the taxonomy kind.
func classifyStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return errors.Join(ErrTimeout, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Join(ErrNotFound, err)
	default:
		return err
	}
}
