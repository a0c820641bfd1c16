package bill

import (
	"errors"
	"testing"

	"github.com/frozen33/inventory/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func floorItem(boxes int, total *float64) models.LineItem {
	return models.LineItem{
		Surface:     models.SurfaceFloor,
		TileName:    "Predefined 2x2 ft",
		BoxesNeeded: boxes,
		TotalPrice:  total,
	}
}

func wallItem(boxes int, total *float64) models.LineItem {
	return models.LineItem{
		Surface:     models.SurfaceWall,
		TileName:    "Predefined 12x8 inch",
		BoxesNeeded: boxes,
		TotalPrice:  total,
	}
}

func TestAdd(t *testing.T) {
	wb := New()
	if got := wb.Add(floorItem(4, nil)); got != 1 {
		t.Errorf("Add returned %d, want 1", got)
	}
	// duplicates are allowed
	if got := wb.Add(floorItem(4, nil)); got != 2 {
		t.Errorf("Add returned %d, want 2", got)
	}
	if wb.Len() != 2 {
		t.Errorf("Len = %d, want 2", wb.Len())
	}
}

func TestRemoveAt(t *testing.T) {
	wb := New()
	wb.Add(floorItem(1, nil))
	wb.Add(wallItem(2, nil))
	wb.Add(floorItem(3, nil))

	if err := wb.RemoveAt(1); err != nil {
		t.Fatalf("RemoveAt(1) error: %v", err)
	}
	if wb.Len() != 2 {
		t.Fatalf("Len = %d, want 2", wb.Len())
	}
	// relative order of the remaining items is preserved
	if wb.Items[0].BoxesNeeded != 1 || wb.Items[1].BoxesNeeded != 3 {
		t.Errorf("items after removal = %d,%d, want 1,3", wb.Items[0].BoxesNeeded, wb.Items[1].BoxesNeeded)
	}
}

func TestRemoveAtOutOfRange(t *testing.T) {
	wb := New()
	wb.Add(floorItem(1, nil))

	for _, index := range []int{-1, 1, 99} {
		err := wb.RemoveAt(index)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("RemoveAt(%d) = %v, want ErrIndexOutOfRange", index, err)
		}
		// a failed removal never mutates the bill
		if wb.Len() != 1 {
			t.Errorf("RemoveAt(%d) mutated the bill: len = %d", index, wb.Len())
		}
	}
}

func TestClear(t *testing.T) {
	wb := New()
	wb.Add(floorItem(1, nil))
	wb.Clear()
	if wb.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", wb.Len())
	}
	// idempotent
	wb.Clear()
	if wb.Len() != 0 {
		t.Errorf("Len after second Clear = %d, want 0", wb.Len())
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		items []models.LineItem
		want  models.Summary
	}{
		{
			name: "all priced",
			items: []models.LineItem{
				floorItem(4, floatPtr(2600)),
				wallItem(11, floatPtr(1100)),
				floorItem(2, floatPtr(400)),
			},
			want: models.Summary{
				FloorBoxes: 6, WallBoxes: 11, TotalBoxes: 17,
				FloorPrice: 3000, WallPrice: 1100,
				TotalPrice: 4100, PriceKnown: true,
			},
		},
		{
			name: "one unpriced item makes the grand total unknown",
			items: []models.LineItem{
				floorItem(4, floatPtr(2600)),
				wallItem(11, nil),
			},
			want: models.Summary{
				FloorBoxes: 4, WallBoxes: 11, TotalBoxes: 15,
				FloorPrice: 2600, WallPrice: 0,
				TotalPrice: 0, PriceKnown: false,
			},
		},
		{
			name:  "empty bill has no known price",
			items: nil,
			want:  models.Summary{PriceKnown: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.items)
			if got != tt.want {
				t.Errorf("Summarize = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	wb := New()
	wb.Add(floorItem(4, floatPtr(2600)))

	snap := wb.Snapshot()
	*wb.Items[0].TotalPrice = 1
	wb.Items[0].BoxesNeeded = 99

	if *snap[0].TotalPrice != 2600 {
		t.Errorf("snapshot price = %v, want 2600", *snap[0].TotalPrice)
	}
	if snap[0].BoxesNeeded != 4 {
		t.Errorf("snapshot boxes = %d, want 4", snap[0].BoxesNeeded)
	}
}

func TestEncodeDecode(t *testing.T) {
	wb := New()
	wb.Add(floorItem(4, floatPtr(2600)))
	wb.Add(wallItem(11, nil))

	data, err := wb.Encode()
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("decoded len = %d, want 2", got.Len())
	}
	if got.Items[0].TotalPrice == nil || *got.Items[0].TotalPrice != 2600 {
		t.Errorf("decoded price = %v, want 2600", got.Items[0].TotalPrice)
	}
	if got.Items[1].TotalPrice != nil {
		t.Error("decoded nil price must stay nil")
	}

	// empty payload yields a fresh bill
	fresh, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode(nil) error: %v", err)
	}
	if fresh.Len() != 0 {
		t.Errorf("Decode(nil) len = %d, want 0", fresh.Len())
	}
}
