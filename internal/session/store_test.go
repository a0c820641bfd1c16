package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frozen33/inventory/internal/bill"
	"github.com/frozen33/inventory/internal/models"
)

func TestLoadUnsetSlot(t *testing.T) {
	s := NewStore()
	wb, err := s.Load("owner-1")
	require.NoError(t, err)
	assert.Zero(t, wb.Len(), "unset slot yields a fresh empty bill")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore()

	wb := bill.New()
	price := 2600.0
	wb.Add(models.LineItem{Surface: models.SurfaceFloor, BoxesNeeded: 4, TotalPrice: &price})
	wb.Add(models.LineItem{Surface: models.SurfaceWall, BoxesNeeded: 11})
	require.NoError(t, s.Save("owner-1", wb))

	got, err := s.Load("owner-1")
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	require.NotNil(t, got.Items[0].TotalPrice)
	assert.Equal(t, 2600.0, *got.Items[0].TotalPrice)
	assert.Nil(t, got.Items[1].TotalPrice)

	// slots are isolated per key
	other, err := s.Load("owner-2")
	require.NoError(t, err)
	assert.Zero(t, other.Len())
}

func TestClear(t *testing.T) {
	s := NewStore()

	wb := bill.New()
	wb.Add(models.LineItem{Surface: models.SurfaceFloor, BoxesNeeded: 1})
	require.NoError(t, s.Save("owner-1", wb))

	s.Clear("owner-1")
	got, err := s.Load("owner-1")
	require.NoError(t, err)
	assert.Zero(t, got.Len())

	// clearing an absent slot is a no-op
	s.Clear("owner-1")
	s.Clear("never-saved")
}

func TestLoadReturnsCopy(t *testing.T) {
	s := NewStore()

	wb := bill.New()
	wb.Add(models.LineItem{Surface: models.SurfaceFloor, BoxesNeeded: 4})
	require.NoError(t, s.Save("owner-1", wb))

	first, err := s.Load("owner-1")
	require.NoError(t, err)
	first.Add(models.LineItem{Surface: models.SurfaceWall, BoxesNeeded: 2})

	// mutating a loaded bill does not change the stored slot
	second, err := s.Load("owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Len())
}
