// Package bill holds the working bill: the in-progress, not-yet-saved
// collection of calculations for one caller session. A working bill is an
// explicit value the host passes in and out of each request; it has no
// persistent identity until saved.
package bill

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/frozen33/inventory/internal/models"
)

// ErrIndexOutOfRange is returned by RemoveAt for an invalid index. A failed
// removal never mutates the bill.
var ErrIndexOutOfRange = errors.New("index out of range")

// WorkingBill is an ordered sequence of line items owned by exactly one
// caller context at a time. It is not safe for concurrent mutation; the
// host serializes access per session.
type WorkingBill struct {
	Items []models.LineItem `json:"items"`
}

// New returns an empty working bill.
func New() *WorkingBill {
	return &WorkingBill{}
}

// Add appends a line item and returns the new item count.
// Duplicates are allowed; the same tile can be calculated twice.
func (b *WorkingBill) Add(item models.LineItem) int {
	b.Items = append(b.Items, item)
	return len(b.Items)
}

// RemoveAt deletes the item at index, preserving the relative order of the
// remaining items.
func (b *WorkingBill) RemoveAt(index int) error {
	if index < 0 || index >= len(b.Items) {
		return fmt.Errorf("%w: %d of %d items", ErrIndexOutOfRange, index, len(b.Items))
	}
	b.Items = append(b.Items[:index], b.Items[index+1:]...)
	return nil
}

// Clear empties the bill. Clearing an empty bill is a no-op.
func (b *WorkingBill) Clear() {
	b.Items = nil
}

// Len returns the number of line items.
func (b *WorkingBill) Len() int {
	return len(b.Items)
}

// Snapshot returns a deep copy of the line items. The copy shares no
// mutable state with the working bill, so a saved bill cannot be changed
// by later cart edits.
func (b *WorkingBill) Snapshot() []models.LineItem {
	if len(b.Items) == 0 {
		return nil
	}
	out := make([]models.LineItem, len(b.Items))
	for i, item := range b.Items {
		out[i] = item.Clone()
	}
	return out
}

// Summarize aggregates box and price totals across the bill, split by
// surface. The grand total price is only reported as known when every
// line item carries a price; a single unpriced item makes it unknown
// rather than a misleading partial sum.
func (b *WorkingBill) Summarize() models.Summary {
	return Summarize(b.Items)
}

// Summarize computes aggregate totals for any ordered set of line items.
// Saved bills reuse it at save time.
func Summarize(items []models.LineItem) models.Summary {
	s := models.Summary{PriceKnown: true}
	for _, item := range items {
		switch item.Surface {
		case models.SurfaceWall:
			s.WallBoxes += item.BoxesNeeded
			if item.TotalPrice != nil {
				s.WallPrice += *item.TotalPrice
			}
		default:
			s.FloorBoxes += item.BoxesNeeded
			if item.TotalPrice != nil {
				s.FloorPrice += *item.TotalPrice
			}
		}
		s.TotalBoxes += item.BoxesNeeded
		if item.TotalPrice == nil {
			s.PriceKnown = false
		}
	}
	if len(items) == 0 {
		s.PriceKnown = false
	}
	if s.PriceKnown {
		s.TotalPrice = s.FloorPrice + s.WallPrice
	}
	return s
}

// Encode serializes the working bill for the host's session slot.
func (b *WorkingBill) Encode() ([]byte, error) {
	return json.Marshal(b)
}

// Decode restores a working bill from a session slot payload.
// A nil or empty payload yields a fresh empty bill.
func Decode(data []byte) (*WorkingBill, error) {
	if len(data) == 0 {
		return New(), nil
	}
	var b WorkingBill
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode working bill: %w", err)
	}
	return &b, nil
}
