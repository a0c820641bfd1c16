// Package inventory is the boundary to externally-owned tile product
// records. The calculator consumes it read-only: a product reference is
// resolved to a normalized tile configuration at calculation time, and
// nothing here ever writes back.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/frozen33/inventory/internal/models"
)

// ErrNotFound is returned when a product ID has no resolvable tile record.
var ErrNotFound = errors.New("tile product not found")

// Resolver resolves a product ID to a tile configuration.
type Resolver interface {
	ResolveTile(ctx context.Context, productID string) (models.TileInfo, error)
}

// StaticResolver serves tiles from an in-memory map. Used by tests and by
// hosts that preload a fixed product list.
type StaticResolver struct {
	mu    sync.RWMutex
	tiles map[string]models.TileInfo
}

// NewStaticResolver returns an empty static resolver.
func NewStaticResolver() *StaticResolver {
	return &StaticResolver{tiles: make(map[string]models.TileInfo)}
}

// Put registers or replaces a tile under the given product ID.
func (r *StaticResolver) Put(productID string, info models.TileInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tiles[productID] = info
}

// ResolveTile implements Resolver.
func (r *StaticResolver) ResolveTile(_ context.Context, productID string) (models.TileInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.tiles[productID]
	if !ok {
		return models.TileInfo{}, fmt.Errorf("%w: %s", ErrNotFound, productID)
	}
	return info, nil
}
