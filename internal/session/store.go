// Package session provides the ephemeral per-caller slot that holds the
// serialized working bill between requests. The core is agnostic to how
// the slot is implemented; this in-process store is the default host
// implementation, keyed by owner ID.
package session

import (
	"sync"

	"github.com/frozen33/inventory/internal/bill"
)

// Store keeps one serialized working bill per caller key.
type Store struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{slots: make(map[string][]byte)}
}

// Load returns the caller's current working bill, or a fresh empty one if
// the slot is unset.
func (s *Store) Load(key string) (*bill.WorkingBill, error) {
	s.mu.Lock()
	data := s.slots[key]
	s.mu.Unlock()
	return bill.Decode(data)
}

// Save serializes the working bill back into the caller's slot.
func (s *Store) Save(key string, wb *bill.WorkingBill) error {
	data, err := wb.Encode()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.slots[key] = data
	s.mu.Unlock()
	return nil
}

// Clear drops the caller's slot. Clearing an absent slot is a no-op.
func (s *Store) Clear(key string) {
	s.mu.Lock()
	delete(s.slots, key)
	s.mu.Unlock()
}
