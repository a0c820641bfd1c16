package models

// TileSource identifies where a tile configuration came from.
type TileSource string

const (
	// SourceCatalog is a built-in tile size from the fixed catalog.
	SourceCatalog TileSource = "catalog"
	// SourceInventory is a tile resolved from an inventory product record.
	SourceInventory TileSource = "inventory"
	// SourceManual is a tile with user-supplied dimensions.
	SourceManual TileSource = "manual"
)

// TileInfo is the normalized tile/box configuration every calculation runs
// against, regardless of which source produced it. Coverage is in square
// feet per box.
type TileInfo struct {
	// Source records which variant the info was resolved from.
	Source TileSource `json:"source"`

	// ProductID is set only for inventory tiles.
	ProductID string `json:"product_id,omitempty"`

	// Name is a display name, e.g. "Predefined 2x2 ft" or a product name.
	Name string `json:"name"`

	// Dimensions is a display string, e.g. "2x2 feet" or "12x18 inch".
	Dimensions string `json:"dimensions"`

	// TilesPerBox is the number of tiles in one sellable box.
	TilesPerBox int `json:"tiles_per_box"`

	// CoveragePerBox is the area in square feet one box covers.
	CoveragePerBox float64 `json:"coverage_per_box"`

	// PricePerBox is the selling price per box, nil when unknown.
	PricePerBox *float64 `json:"price_per_box,omitempty"`
}
