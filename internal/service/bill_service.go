// Package service wires the calculator, working bill, and durable store
// into the operations the hosting application drives. All errors surface
// to the caller as typed failures; nothing here swallows a computation
// error to produce a default result.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frozen33/inventory/internal/bill"
	"github.com/frozen33/inventory/internal/calculator"
	"github.com/frozen33/inventory/internal/inventory"
	"github.com/frozen33/inventory/internal/metrics"
	"github.com/frozen33/inventory/internal/models"
	"github.com/frozen33/inventory/internal/storage"
)

// ErrEmptyBill is returned when saving a working bill with zero items.
// An empty save is rejected outright; it never creates a durable record.
var ErrEmptyBill = errors.New("bill has no items")

// BillService exposes the calculation and bill operations.
type BillService struct {
	store storage.Store
	inv   inventory.Resolver
	now   func() time.Time
}

// NewBillService creates a BillService with the given storage backend and
// inventory resolver. The resolver may be nil when inventory tiles are not
// served.
func NewBillService(store storage.Store, inv inventory.Resolver) *BillService {
	return &BillService{store: store, inv: inv, now: time.Now}
}

// ComputeFloor runs a floor calculation and freezes it into a line item.
func (s *BillService) ComputeFloor(ctx context.Context, spec calculator.TileSpec, req calculator.AreaRequest, pricePerBox *float64) (models.LineItem, error) {
	res, err := calculator.ComputeFloor(ctx, spec, req, pricePerBox, s.inv)
	if err != nil {
		metrics.CalculationErrorsTotal.Inc()
		slog.Error("ComputeFloor failed", "error", err)
		return models.LineItem{}, err
	}
	metrics.CalculationsTotal.WithLabelValues(string(models.SurfaceFloor)).Inc()
	return res.LineItem(s.now().Unix()), nil
}

// ComputeWall runs a wall calculation and freezes it into a line item.
func (s *BillService) ComputeWall(ctx context.Context, spec calculator.TileSpec, req calculator.AreaRequest, deductOpening bool, pricePerBox *float64) (models.LineItem, error) {
	res, err := calculator.ComputeWall(ctx, spec, req, deductOpening, pricePerBox, s.inv)
	if err != nil {
		metrics.CalculationErrorsTotal.Inc()
		slog.Error("ComputeWall failed", "error", err)
		return models.LineItem{}, err
	}
	metrics.CalculationsTotal.WithLabelValues(string(models.SurfaceWall)).Inc()
	return res.LineItem(s.now().Unix()), nil
}

// SaveBill snapshots the working bill into a durable bill, persists it, and
// clears the working bill on success. The snapshot is a deep copy: later
// cart edits cannot reach the saved record.
func (s *BillService) SaveBill(ctx context.Context, wb *bill.WorkingBill, ownerID, createdBy, name string) (*models.Bill, error) {
	if wb == nil || wb.Len() == 0 {
		return nil, ErrEmptyBill
	}

	items := wb.Snapshot()
	b := &models.Bill{
		Name:      name,
		OwnerID:   ownerID,
		CreatedBy: createdBy,
		Items:     items,
		Totals:    bill.Summarize(items),
		CreatedAt: s.now().Unix(),
	}

	if err := s.store.SaveBill(ctx, b); err != nil {
		slog.Error("SaveBill failed", "owner_id", ownerID, "error", err)
		return nil, err
	}

	wb.Clear()
	metrics.BillsSavedTotal.Inc()
	slog.Info("Bill saved", "bill_id", b.ID, "owner_id", ownerID, "items", len(b.Items), "total_boxes", b.Totals.TotalBoxes)
	return b, nil
}

// ListBills returns all saved bills, newest first. Bills are shared across
// owners by design.
func (s *BillService) ListBills(ctx context.Context) ([]models.Bill, error) {
	return s.store.ListBills(ctx)
}

// ListBillsByOwner returns one owner's saved bills, newest first.
func (s *BillService) ListBillsByOwner(ctx context.Context, ownerID string) ([]models.Bill, error) {
	return s.store.ListBillsByOwner(ctx, ownerID)
}

// GetBill retrieves a saved bill with its line items.
func (s *BillService) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	return s.store.GetBill(ctx, id)
}

// DeleteBill removes a saved bill permanently.
func (s *BillService) DeleteBill(ctx context.Context, id string) error {
	if err := s.store.DeleteBill(ctx, id); err != nil {
		return err
	}
	slog.Info("Bill deleted", "bill_id", id)
	return nil
}

// PurgeOldBills deletes bills older than the given number of days and
// returns the count removed. The cutoff is strict: a bill created exactly
// days ago is retained. This is caller-triggered maintenance; nothing
// schedules it automatically.
func (s *BillService) PurgeOldBills(ctx context.Context, days int) (int, error) {
	if days <= 0 {
		return 0, fmt.Errorf("retention days must be positive, got %d", days)
	}
	cutoff := s.now().AddDate(0, 0, -days)
	n, err := s.store.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		slog.Error("PurgeOldBills failed", "days", days, "error", err)
		return 0, err
	}
	metrics.BillsPurgedTotal.Add(float64(n))
	slog.Info("Old bills purged", "days", days, "deleted", n)
	return n, nil
}

// CountOldBills reports how many bills a purge with the same days value
// would remove, without deleting anything.
func (s *BillService) CountOldBills(ctx context.Context, days int) (int, error) {
	if days <= 0 {
		return 0, fmt.Errorf("retention days must be positive, got %d", days)
	}
	return s.store.CountOlderThan(ctx, s.now().AddDate(0, 0, -days))
}
