package calculator

import (
	"context"
	"fmt"
	"math"

	"github.com/frozen33/inventory/internal/models"
	"github.com/frozen33/inventory/internal/units"
)

// CatalogEntry is one built-in tile configuration.
type CatalogEntry struct {
	TilesPerBox    int
	CoveragePerBox float64 // sq ft
}

// FloorCatalog holds the built-in floor tile sizes, keyed by size label.
// Dimensions are in feet.
var FloorCatalog = map[string]CatalogEntry{
	"1x1": {TilesPerBox: 10, CoveragePerBox: 10},
	"2x2": {TilesPerBox: 4, CoveragePerBox: 16},
	"4x2": {TilesPerBox: 2, CoveragePerBox: 16},
}

// WallCatalog holds the built-in wall tile sizes, keyed by size label.
// Dimensions are in inches.
var WallCatalog = map[string]CatalogEntry{
	"12x8":  {TilesPerBox: 12, CoveragePerBox: 8},
	"10x15": {TilesPerBox: 8, CoveragePerBox: 9},
	"12x18": {TilesPerBox: 6, CoveragePerBox: 9},
}

// TileSpec describes one tile/box configuration to calculate with. It is a
// closed set: CatalogTile, InventoryTile, or ManualTile. Specs are resolved
// to a normalized models.TileInfo before any geometry runs, so the compute
// functions never branch on the source.
type TileSpec interface {
	resolve(ctx context.Context, surface models.Surface, inv InventoryResolver) (models.TileInfo, error)
}

// InventoryResolver resolves an inventory product reference to a usable
// tile configuration. The calculator never mutates inventory records.
type InventoryResolver interface {
	ResolveTile(ctx context.Context, productID string) (models.TileInfo, error)
}

// CatalogTile selects a built-in size from the fixed catalog for the given
// surface, e.g. "2x2" for floors or "12x18" for walls.
type CatalogTile struct {
	Size string
}

func (t CatalogTile) resolve(_ context.Context, surface models.Surface, _ InventoryResolver) (models.TileInfo, error) {
	catalog := FloorCatalog
	unit := "ft"
	if surface == models.SurfaceWall {
		catalog = WallCatalog
		unit = "inch"
	}
	entry, ok := catalog[t.Size]
	if !ok {
		return models.TileInfo{}, fmt.Errorf("%w: unknown catalog size %q for %s", ErrInvalidTileSpec, t.Size, surface)
	}
	return models.TileInfo{
		Source:         models.SourceCatalog,
		Name:           fmt.Sprintf("Predefined %s %s", t.Size, unit),
		Dimensions:     fmt.Sprintf("%s %s", t.Size, unit),
		TilesPerBox:    entry.TilesPerBox,
		CoveragePerBox: entry.CoveragePerBox,
	}, nil
}

// InventoryTile references a product record by identifier. Dimensions,
// tiles-per-box, coverage, and price are read from the record at
// calculation time.
type InventoryTile struct {
	ProductID string
}

func (t InventoryTile) resolve(ctx context.Context, _ models.Surface, inv InventoryResolver) (models.TileInfo, error) {
	if inv == nil {
		return models.TileInfo{}, fmt.Errorf("%w: no inventory resolver configured", ErrInvalidTileSpec)
	}
	info, err := inv.ResolveTile(ctx, t.ProductID)
	if err != nil {
		return models.TileInfo{}, fmt.Errorf("resolve product %s: %w", t.ProductID, err)
	}
	if info.CoveragePerBox <= 0 {
		return models.TileInfo{}, fmt.Errorf("%w: product %s has no usable coverage", ErrInvalidTileSpec, t.ProductID)
	}
	info.Source = models.SourceInventory
	info.ProductID = t.ProductID
	return info, nil
}

// ManualTile is a user-supplied tile: length, width, unit, and tiles per
// box. Coverage per box is computed as lengthFt x widthFt x tilesPerBox,
// rounded to 2 decimals.
type ManualTile struct {
	Length      float64
	Width       float64
	Unit        units.Unit
	TilesPerBox int
	PricePerBox *float64
}

func (t ManualTile) resolve(_ context.Context, _ models.Surface, _ InventoryResolver) (models.TileInfo, error) {
	lengthFt, err := units.ToFeet(t.Length, t.Unit)
	if err != nil {
		return models.TileInfo{}, err
	}
	widthFt, err := units.ToFeet(t.Width, t.Unit)
	if err != nil {
		return models.TileInfo{}, err
	}

	coverage := math.Round(lengthFt*widthFt*float64(t.TilesPerBox)*100) / 100
	if coverage <= 0 {
		return models.TileInfo{}, fmt.Errorf("%w: manual tile %gx%g %s x%d covers %g sq ft per box",
			ErrInvalidTileSpec, t.Length, t.Width, t.Unit, t.TilesPerBox, coverage)
	}

	return models.TileInfo{
		Source:         models.SourceManual,
		Name:           "Manual Entry",
		Dimensions:     fmt.Sprintf("%gx%g %s", t.Length, t.Width, t.Unit),
		TilesPerBox:    t.TilesPerBox,
		CoveragePerBox: coverage,
		PricePerBox:    t.PricePerBox,
	}, nil
}

// ResolveTileSpec normalizes any tile spec variant for the given surface.
// The returned info always has a positive CoveragePerBox.
func ResolveTileSpec(ctx context.Context, spec TileSpec, surface models.Surface, inv InventoryResolver) (models.TileInfo, error) {
	if spec == nil {
		return models.TileInfo{}, fmt.Errorf("%w: nil spec", ErrInvalidTileSpec)
	}
	return spec.resolve(ctx, surface, inv)
}
