package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frozen33/inventory/internal/bill"
	"github.com/frozen33/inventory/internal/calculator"
	"github.com/frozen33/inventory/internal/inventory"
	"github.com/frozen33/inventory/internal/models"
	"github.com/frozen33/inventory/internal/storage/sqlite"
	"github.com/frozen33/inventory/internal/units"
)

func floatPtr(v float64) *float64 { return &v }

func newTestService(t *testing.T) (*BillService, *inventory.StaticResolver) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	inv := inventory.NewStaticResolver()
	return NewBillService(store, inv), inv
}

func TestComputeFloorProducesLineItem(t *testing.T) {
	svc, _ := newTestService(t)

	item, err := svc.ComputeFloor(context.Background(),
		calculator.CatalogTile{Size: "2x2"},
		calculator.FromDimensions(10.5, 5.5, units.Feet),
		floatPtr(650),
	)
	require.NoError(t, err)

	assert.Equal(t, models.SurfaceFloor, item.Surface)
	assert.Equal(t, 57.75, item.AreaSqFt)
	assert.Equal(t, 4, item.BoxesNeeded)
	require.NotNil(t, item.TotalPrice)
	assert.Equal(t, 2600.0, *item.TotalPrice)
	assert.NotZero(t, item.CreatedAt)
}

func TestComputeWallWithInventoryTile(t *testing.T) {
	svc, inv := newTestService(t)
	inv.Put("tile-9", models.TileInfo{
		Name:           "Ocean Blue",
		Dimensions:     "12x18 inch",
		TilesPerBox:    6,
		CoveragePerBox: 9,
		PricePerBox:    floatPtr(450),
	})

	item, err := svc.ComputeWall(context.Background(),
		calculator.InventoryTile{ProductID: "tile-9"},
		calculator.FromWallDimensions(5, 4, 7, units.Feet),
		true, nil,
	)
	require.NoError(t, err)

	assert.Equal(t, "Ocean Blue", item.TileName)
	assert.Equal(t, 112.0, item.AreaSqFt)
	assert.Equal(t, 13, item.BoxesNeeded) // ceil(112/9)
	require.NotNil(t, item.TotalPrice)
	assert.Equal(t, 13*450.0, *item.TotalPrice)

	_, err = svc.ComputeWall(context.Background(),
		calculator.InventoryTile{ProductID: "missing"},
		calculator.FromTotalArea(100), false, nil,
	)
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestSaveBill(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	wb := bill.New()
	item, err := svc.ComputeFloor(ctx, calculator.CatalogTile{Size: "2x2"},
		calculator.FromTotalArea(500), floatPtr(650))
	require.NoError(t, err)
	wb.Add(item)

	saved, err := svc.SaveBill(ctx, wb, "owner-1", "alice@example.com", "Shop floor")
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Shop floor", saved.Name)
	assert.Equal(t, "owner-1", saved.OwnerID)
	assert.Equal(t, "alice@example.com", saved.CreatedBy)
	assert.Equal(t, 32, saved.Totals.TotalBoxes)
	assert.True(t, saved.Totals.PriceKnown)
	assert.Equal(t, 32*650.0, saved.Totals.TotalPrice)

	// save clears the working bill
	assert.Zero(t, wb.Len())

	// and the stored snapshot is independent of later cart edits
	wb.Add(item)
	got, err := svc.GetBill(ctx, saved.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 32, got.Items[0].BoxesNeeded)
}

func TestSaveEmptyBill(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SaveBill(ctx, bill.New(), "owner-1", "", "")
	assert.ErrorIs(t, err, ErrEmptyBill)

	_, err = svc.SaveBill(ctx, nil, "owner-1", "", "")
	assert.ErrorIs(t, err, ErrEmptyBill)

	// a rejected save never creates a durable record
	bills, err := svc.ListBills(ctx)
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestPurgeOldBills(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	now := time.Now()
	save := func(age time.Duration) *models.Bill {
		svc.now = func() time.Time { return now.Add(-age) }
		wb := bill.New()
		item, err := svc.ComputeFloor(ctx, calculator.CatalogTile{Size: "1x1"},
			calculator.FromTotalArea(10), nil)
		require.NoError(t, err)
		wb.Add(item)
		saved, err := svc.SaveBill(ctx, wb, "owner-1", "", "")
		require.NoError(t, err)
		return saved
	}

	old := save(31 * 24 * time.Hour)
	young := save(29 * 24 * time.Hour)
	svc.now = func() time.Time { return now }

	count, err := svc.CountOldBills(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	deleted, err := svc.PurgeOldBills(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = svc.GetBill(ctx, old.ID)
	assert.Error(t, err)
	_, err = svc.GetBill(ctx, young.ID)
	assert.NoError(t, err)

	_, err = svc.PurgeOldBills(ctx, 0)
	assert.Error(t, err, "non-positive retention is rejected")
}

func TestDeleteBill(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	wb := bill.New()
	item, err := svc.ComputeFloor(ctx, calculator.CatalogTile{Size: "1x1"},
		calculator.FromTotalArea(10), nil)
	require.NoError(t, err)
	wb.Add(item)
	saved, err := svc.SaveBill(ctx, wb, "owner-1", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBill(ctx, saved.ID))
	assert.Error(t, svc.DeleteBill(ctx, saved.ID))
}
