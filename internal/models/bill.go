package models

// Surface is the kind of surface a calculation covers. It determines the
// geometry formula: floors multiply width by length, walls multiply the
// room perimeter by height.
type Surface string

const (
	SurfaceFloor Surface = "floor"
	SurfaceWall  Surface = "wall"
)

// LineItem is one completed calculation: the tile used, the room geometry
// it was computed from, and the derived box counts. Line items are created
// only by the calculator and are immutable once added to a bill.
type LineItem struct {
	// Surface is "floor" or "wall".
	Surface Surface `json:"surface"`

	// Tile snapshot fields, copied at calculation time.
	Source         TileSource `json:"source"`
	ProductID      string     `json:"product_id,omitempty"`
	TileName       string     `json:"tile_name"`
	TileDimensions string     `json:"tile_dimensions"`
	TilesPerBox    int        `json:"tiles_per_box"`
	CoveragePerBox float64    `json:"coverage_per_box"`

	// RoomDimensions is a display string of the area request,
	// e.g. "10x5 feet" or "500 sq ft (direct)".
	RoomDimensions string `json:"room_dimensions"`

	// AreaSqFt is the surface area in square feet, rounded up to 2 decimals.
	AreaSqFt float64 `json:"area_sqft"`

	// PerimeterFt is set for walls computed from dimensions; zero otherwise.
	PerimeterFt float64 `json:"perimeter_ft,omitempty"`

	// OpeningDeducted records whether the standard door deduction was
	// applied to the wall perimeter.
	OpeningDeducted bool `json:"opening_deducted,omitempty"`

	// BoxesExact is area divided by coverage, before rounding.
	BoxesExact float64 `json:"boxes_exact"`

	// BoxesNeeded is BoxesExact rounded up to the next whole box.
	BoxesNeeded int `json:"boxes_needed"`

	// PricePerBox and TotalPrice are nil when no price is known.
	// TotalPrice = BoxesNeeded x PricePerBox.
	PricePerBox *float64 `json:"price_per_box,omitempty"`
	TotalPrice  *float64 `json:"total_price,omitempty"`

	// CreatedAt is the Unix timestamp when the calculation was made.
	CreatedAt int64 `json:"created_at"`
}

// Clone returns a deep copy of the line item. Price pointers are copied so
// the clone shares no mutable state with the original.
func (li LineItem) Clone() LineItem {
	out := li
	if li.PricePerBox != nil {
		v := *li.PricePerBox
		out.PricePerBox = &v
	}
	if li.TotalPrice != nil {
		v := *li.TotalPrice
		out.TotalPrice = &v
	}
	return out
}

// Summary aggregates box and price totals across a set of line items,
// split by surface.
type Summary struct {
	FloorBoxes int `json:"floor_boxes"`
	WallBoxes  int `json:"wall_boxes"`
	TotalBoxes int `json:"total_boxes"`

	// FloorPrice and WallPrice sum the priced items of each surface.
	FloorPrice float64 `json:"floor_price"`
	WallPrice  float64 `json:"wall_price"`

	// TotalPrice is meaningful only when PriceKnown is true. If any line
	// item lacks a price the grand total is unknown, not a partial sum.
	TotalPrice float64 `json:"total_price"`
	PriceKnown bool    `json:"price_known"`
}

// Bill is a saved calculation bill: an immutable snapshot of a working
// bill's line items plus aggregate totals. Bills are visible to all owners
// by design and are removed only by explicit deletion or retention purge.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string `json:"id"`

	// Name is the optional human-readable name. Auto-generated from the
	// creation date when the caller does not supply one.
	Name string `json:"name"`

	// OwnerID is the opaque identifier of the caller who saved the bill.
	OwnerID string `json:"owner_id"`

	// CreatedBy is a display label for the saver (e.g. an email).
	CreatedBy string `json:"created_by,omitempty"`

	// Items is the ordered line item snapshot. List operations may return
	// bills with Items unset; Get always populates them.
	Items []LineItem `json:"items,omitempty"`

	// Totals are computed once at save time from the snapshot.
	Totals Summary `json:"totals"`

	// CreatedAt is the Unix timestamp when the bill was saved.
	CreatedAt int64 `json:"created_at"`
}
