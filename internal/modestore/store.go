// Package modestore persists the portal display mode outside process memory.
package modestore

import (
	"context"

	"github.com/spec-kit/capture-portal/internal/domain"
)

// Store reads and writes the single persisted mode value. Set rejects values
// outside {survey, apply} with domain.ErrInvalidMode and leaves the stored
// value unchanged.
type Store interface {
	Get(ctx context.Context) (domain.Mode, error)
	Set(ctx context.Context, mode domain.Mode) error
}
