// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrValidation, ErrUnavailable, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/finbits/tips-service/internal/domain"
)

// TipRepository is the persistence contract for tips.
//
// Tips are create-only: the store assigns each new tip the next id in
// sequence and never reuses an id, and listing returns tips in creation
// order. There is no update or delete.
type TipRepository interface {
	// Create durably persists a new tip and sets its store-assigned ID.
	// The caller is responsible for ensuring tip.Text is non-empty.
	Create(ctx context.Context, tip *domain.Tip) error

	// List returns all tips in ascending creation order.
	// An empty store yields an empty slice, not an error.
	List(ctx context.Context) ([]domain.Tip, error)
}
