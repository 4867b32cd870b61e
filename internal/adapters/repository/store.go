// Package repository defines the evaluation report store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/okian/veritas/internal/domain/evaluate"
)

// Evaluation binds a stored report to its identifier and creation time.
type Evaluation struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Report    *evaluate.Report `json:"report"`
}

// Store provides read/write access to evaluation reports. Save overwrites an
// existing report with the same ID, which is how validation recomputation
// persists its result.
type Store interface {
	// Save persists the evaluation, replacing any previous version.
	Save(ctx context.Context, e Evaluation) error

	// Get returns the evaluation with the given id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (Evaluation, error)

	// Recent returns up to n evaluations ordered newest first.
	Recent(ctx context.Context, n int) ([]Evaluation, error)

	// Count returns the number of stored evaluations.
	Count(ctx context.Context) int
}
