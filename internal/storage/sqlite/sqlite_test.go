package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frozen33/inventory/internal/models"
	"github.com/frozen33/inventory/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func floatPtr(v float64) *float64 { return &v }

func testBill(ownerID string, createdAt int64) *models.Bill {
	price := 2600.0
	return &models.Bill{
		OwnerID:   ownerID,
		CreatedBy: "alice@example.com",
		CreatedAt: createdAt,
		Items: []models.LineItem{
			{
				Surface:        models.SurfaceFloor,
				Source:         models.SourceCatalog,
				TileName:       "Predefined 2x2 ft",
				TileDimensions: "2x2 ft",
				TilesPerBox:    4,
				CoveragePerBox: 16,
				RoomDimensions: "10.5x5.5 feet",
				AreaSqFt:       57.75,
				BoxesExact:     3.609375,
				BoxesNeeded:    4,
				PricePerBox:    floatPtr(650),
				TotalPrice:     &price,
				CreatedAt:      createdAt,
			},
			{
				Surface:         models.SurfaceWall,
				Source:          models.SourceManual,
				TileName:        "Manual Entry",
				TileDimensions:  "3.5x3 feet",
				TilesPerBox:     1,
				CoveragePerBox:  10.5,
				RoomDimensions:  "5x4x7 feet",
				AreaSqFt:        112,
				PerimeterFt:     16,
				OpeningDeducted: true,
				BoxesExact:      112.0 / 10.5,
				BoxesNeeded:     11,
				CreatedAt:       createdAt,
			},
		},
		Totals: models.Summary{
			FloorBoxes: 4, WallBoxes: 11, TotalBoxes: 15,
			FloorPrice: 2600, PriceKnown: false,
		},
	}
}

func TestSaveBill(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	b := testBill("owner-1", 0)
	require.NoError(t, store.SaveBill(ctx, b))

	assert.NotEmpty(t, b.ID, "store assigns an ID")
	assert.NotZero(t, b.CreatedAt, "store assigns a creation time")
	assert.NotEmpty(t, b.Name, "store generates a name when none is given")

	named := testBill("owner-1", 0)
	named.Name = "Kitchen remodel"
	require.NoError(t, store.SaveBill(ctx, named))
	assert.Equal(t, "Kitchen remodel", named.Name)
}

func TestGetBill(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	original := testBill("owner-1", time.Now().Unix())
	require.NoError(t, store.SaveBill(ctx, original))

	got, err := store.GetBill(ctx, original.ID)
	require.NoError(t, err)

	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, "owner-1", got.OwnerID)
	assert.Equal(t, "alice@example.com", got.CreatedBy)
	assert.Equal(t, original.Totals, got.Totals)
	require.Len(t, got.Items, 2)

	// items come back in insertion order with all snapshot fields
	first := got.Items[0]
	assert.Equal(t, models.SurfaceFloor, first.Surface)
	assert.Equal(t, "Predefined 2x2 ft", first.TileName)
	assert.Equal(t, 57.75, first.AreaSqFt)
	require.NotNil(t, first.TotalPrice)
	assert.Equal(t, 2600.0, *first.TotalPrice)

	second := got.Items[1]
	assert.Equal(t, models.SurfaceWall, second.Surface)
	assert.True(t, second.OpeningDeducted)
	assert.Equal(t, 16.0, second.PerimeterFt)
	assert.Nil(t, second.TotalPrice, "unknown price stays unknown")
}

func TestGetBillNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetBill(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListBills(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().Unix()

	older := testBill("owner-1", now-100)
	newer := testBill("owner-2", now)
	require.NoError(t, store.SaveBill(ctx, older))
	require.NoError(t, store.SaveBill(ctx, newer))

	bills, err := store.ListBills(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 2, "all owners are visible")
	assert.Equal(t, newer.ID, bills[0].ID, "newest first")
	assert.Equal(t, older.ID, bills[1].ID)
	assert.Empty(t, bills[0].Items, "list returns headers only")

	mine, err := store.ListBillsByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, older.ID, mine[0].ID)
}

func TestDeleteBill(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	b := testBill("owner-1", time.Now().Unix())
	require.NoError(t, store.SaveBill(ctx, b))

	require.NoError(t, store.DeleteBill(ctx, b.ID))
	_, err := store.GetBill(ctx, b.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// items cascade with the header
	var itemCount int
	require.NoError(t, store.db.QueryRow(
		"SELECT COUNT(*) FROM calculation_bill_items WHERE bill_id = ?", b.ID).Scan(&itemCount))
	assert.Zero(t, itemCount)

	assert.ErrorIs(t, store.DeleteBill(ctx, b.ID), storage.ErrNotFound)
}

func TestPurgeOlderThan(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	aged := func(days int) *models.Bill {
		return testBill("owner-1", now.AddDate(0, 0, -days).Unix())
	}

	old31 := aged(31)
	exact30 := aged(30)
	young29 := aged(29)
	require.NoError(t, store.SaveBill(ctx, old31))
	require.NoError(t, store.SaveBill(ctx, exact30))
	require.NoError(t, store.SaveBill(ctx, young29))

	cutoff := now.AddDate(0, 0, -30)

	count, err := store.CountOlderThan(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	deleted, err := store.PurgeOlderThan(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted, "only the 31-day-old bill goes")

	_, err = store.GetBill(ctx, old31.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// the boundary is strict: exactly 30 days old is retained
	_, err = store.GetBill(ctx, exact30.ID)
	assert.NoError(t, err)
	_, err = store.GetBill(ctx, young29.ID)
	assert.NoError(t, err)

	// purging again removes nothing
	deleted, err = store.PurgeOlderThan(ctx, cutoff)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
