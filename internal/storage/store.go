// Package storage provides abstractions for persistent bill storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/frozen33/inventory/internal/models"
)

// ErrNotFound is returned when a bill ID does not exist in the store.
var ErrNotFound = errors.New("bill not found")

// Store defines the interface for durable bill storage. Saved bills are
// append-only history: they are never updated, only deleted explicitly or
// purged by the retention sweep. The store is shared across all owners;
// list and purge must be safe to run concurrently with saves and deletes
// from other callers.
type Store interface {
	// SaveBill persists a bill header and its line items atomically.
	// A failure must not leave a header without items. The store assigns
	// ID and CreatedAt when they are unset.
	SaveBill(ctx context.Context, b *models.Bill) error

	// GetBill retrieves a bill with its ordered line items.
	// Returns ErrNotFound when absent.
	GetBill(ctx context.Context, id string) (*models.Bill, error)

	// ListBills returns all bills across all owners, newest first.
	// Items are not populated; use GetBill for the full record.
	ListBills(ctx context.Context) ([]models.Bill, error)

	// ListBillsByOwner returns one owner's bills, newest first.
	ListBillsByOwner(ctx context.Context, ownerID string) ([]models.Bill, error)

	// DeleteBill removes a bill and its items permanently.
	// Returns ErrNotFound when absent.
	DeleteBill(ctx context.Context, id string) error

	// PurgeOlderThan deletes every bill created strictly before cutoff
	// and returns the number removed. A bill created exactly at the
	// cutoff is retained.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	// CountOlderThan reports how many bills a purge at cutoff would remove.
	CountOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
