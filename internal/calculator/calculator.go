// Package calculator converts room and tile measurements into required box
// counts. All areas are in square feet; rounding always goes up so material
// is never under-reported.
package calculator

import (
	"context"
	"fmt"
	"math"

	"github.com/frozen33/inventory/internal/models"
	"github.com/frozen33/inventory/internal/units"
)

// OpeningWidthFt is the linear footage one standard door consumes from a
// wall's perimeter when the opening deduction is requested.
const OpeningWidthFt = 2.0

// AreaMode selects how an AreaRequest describes the surface.
type AreaMode string

const (
	// ModeDimensions computes the area from room measurements.
	ModeDimensions AreaMode = "dimensions"
	// ModeTotalArea takes a pre-known total area in square feet directly.
	ModeTotalArea AreaMode = "total"
)

// AreaRequest describes the surface to tile, either by room dimensions or
// by a pre-known total area. Exactly one mode applies per request. Height
// is only meaningful for walls in dimensions mode.
type AreaRequest struct {
	Mode      AreaMode
	Width     float64
	Length    float64
	Height    float64
	Unit      units.Unit
	TotalSqFt float64
}

// FromDimensions builds a floor request from room width and length.
func FromDimensions(width, length float64, unit units.Unit) AreaRequest {
	return AreaRequest{Mode: ModeDimensions, Width: width, Length: length, Unit: unit}
}

// FromWallDimensions builds a wall request from room width, length, and height.
func FromWallDimensions(width, length, height float64, unit units.Unit) AreaRequest {
	return AreaRequest{Mode: ModeDimensions, Width: width, Length: length, Height: height, Unit: unit}
}

// FromTotalArea builds a request from a pre-known area in square feet.
func FromTotalArea(sqft float64) AreaRequest {
	return AreaRequest{Mode: ModeTotalArea, TotalSqFt: sqft}
}

// Describe renders the request for bill display, mirroring how it was
// entered: "10x5 feet", "10x5x7 feet", or "500 sq ft (direct)".
func (r AreaRequest) Describe(surface models.Surface) string {
	if r.Mode == ModeTotalArea {
		return fmt.Sprintf("%g sq ft (direct)", r.TotalSqFt)
	}
	if surface == models.SurfaceWall {
		return fmt.Sprintf("%gx%gx%g %s", r.Width, r.Length, r.Height, r.Unit)
	}
	return fmt.Sprintf("%gx%g %s", r.Width, r.Length, r.Unit)
}

// Result is the read-only outcome of one calculation.
type Result struct {
	Surface models.Surface
	Tile    models.TileInfo
	Request AreaRequest

	// AreaSqFt is rounded up to 2 decimals before the box division.
	AreaSqFt float64

	// PerimeterFt is set for walls computed from dimensions, after any
	// opening deduction.
	PerimeterFt     float64
	OpeningDeducted bool

	BoxesExact  float64
	BoxesNeeded int

	// PricePerBox and TotalPrice are nil when no price applies.
	PricePerBox *float64
	TotalPrice  *float64
}

// RoundUpArea rounds an area up to 2 decimal places. Rounding up is the
// safety-critical direction: a short area under-counts boxes.
func RoundUpArea(sqft float64) float64 {
	return math.Ceil(sqft*100) / 100
}

// ComputeFloor calculates the boxes needed to tile a floor.
// pricePerBox overrides any price carried by the tile spec; pass nil to use
// the resolved price, if one exists. Prices that are not positive are
// treated as unknown.
func ComputeFloor(ctx context.Context, spec TileSpec, req AreaRequest, pricePerBox *float64, inv InventoryResolver) (Result, error) {
	info, err := ResolveTileSpec(ctx, spec, models.SurfaceFloor, inv)
	if err != nil {
		return Result{}, err
	}

	var area float64
	switch req.Mode {
	case ModeDimensions:
		widthFt, err := units.ToFeet(req.Width, req.Unit)
		if err != nil {
			return Result{}, err
		}
		lengthFt, err := units.ToFeet(req.Length, req.Unit)
		if err != nil {
			return Result{}, err
		}
		if widthFt <= 0 || lengthFt <= 0 {
			return Result{}, fmt.Errorf("%w: floor %gx%g %s", ErrInvalidGeometry, req.Width, req.Length, req.Unit)
		}
		area = widthFt * lengthFt
	case ModeTotalArea:
		area = req.TotalSqFt
	default:
		return Result{}, fmt.Errorf("%w: unknown area mode %q", ErrInvalidGeometry, req.Mode)
	}

	return finishResult(models.SurfaceFloor, info, req, area, 0, false, pricePerBox)
}

// ComputeWall calculates the boxes needed to tile the walls of a room.
//
// In dimensions mode the perimeter is 2x(width+length); when deductOpening
// is set, OpeningWidthFt is subtracted from the perimeter (not the area)
// before multiplying by height, matching the policy that one standard door
// consumes 2 linear ft of wall run. In total-area mode the given area is
// final and deductOpening has no effect.
func ComputeWall(ctx context.Context, spec TileSpec, req AreaRequest, deductOpening bool, pricePerBox *float64, inv InventoryResolver) (Result, error) {
	info, err := ResolveTileSpec(ctx, spec, models.SurfaceWall, inv)
	if err != nil {
		return Result{}, err
	}

	var (
		area      float64
		perimeter float64
		deducted  bool
	)
	switch req.Mode {
	case ModeDimensions:
		widthFt, err := units.ToFeet(req.Width, req.Unit)
		if err != nil {
			return Result{}, err
		}
		lengthFt, err := units.ToFeet(req.Length, req.Unit)
		if err != nil {
			return Result{}, err
		}
		heightFt, err := units.ToFeet(req.Height, req.Unit)
		if err != nil {
			return Result{}, err
		}
		if widthFt <= 0 || lengthFt <= 0 || heightFt <= 0 {
			return Result{}, fmt.Errorf("%w: wall %gx%gx%g %s", ErrInvalidGeometry, req.Width, req.Length, req.Height, req.Unit)
		}

		perimeter = 2 * (widthFt + lengthFt)
		if deductOpening {
			perimeter -= OpeningWidthFt
			deducted = true
		}
		if perimeter <= 0 {
			return Result{}, fmt.Errorf("%w: perimeter %.2f ft after opening deduction", ErrInvalidGeometry, perimeter)
		}
		area = perimeter * heightFt
	case ModeTotalArea:
		area = req.TotalSqFt
	default:
		return Result{}, fmt.Errorf("%w: unknown area mode %q", ErrInvalidGeometry, req.Mode)
	}

	return finishResult(models.SurfaceWall, info, req, area, perimeter, deducted, pricePerBox)
}

// finishResult applies the shared tail of both computations: area rounding,
// box division, ceiling, and optional pricing.
func finishResult(surface models.Surface, info models.TileInfo, req AreaRequest, area, perimeter float64, deducted bool, pricePerBox *float64) (Result, error) {
	if area <= 0 {
		return Result{}, fmt.Errorf("%w: %s area %.2f sq ft", ErrInvalidGeometry, surface, area)
	}
	area = RoundUpArea(area)

	if info.CoveragePerBox <= 0 {
		return Result{}, fmt.Errorf("%w: coverage %.2f sq ft per box", ErrDivisionByZero, info.CoveragePerBox)
	}
	boxesExact := area / info.CoveragePerBox
	boxesNeeded := int(math.Ceil(boxesExact))

	res := Result{
		Surface:         surface,
		Tile:            info,
		Request:         req,
		AreaSqFt:        area,
		PerimeterFt:     perimeter,
		OpeningDeducted: deducted,
		BoxesExact:      boxesExact,
		BoxesNeeded:     boxesNeeded,
	}

	price := pricePerBox
	if price == nil {
		price = info.PricePerBox
	}
	if price != nil && *price > 0 {
		p := *price
		total := float64(boxesNeeded) * p
		res.PricePerBox = &p
		res.TotalPrice = &total
	}

	return res, nil
}

// LineItem freezes the result into a bill line item snapshot.
func (r Result) LineItem(now int64) models.LineItem {
	item := models.LineItem{
		Surface:         r.Surface,
		Source:          r.Tile.Source,
		ProductID:       r.Tile.ProductID,
		TileName:        r.Tile.Name,
		TileDimensions:  r.Tile.Dimensions,
		TilesPerBox:     r.Tile.TilesPerBox,
		CoveragePerBox:  r.Tile.CoveragePerBox,
		RoomDimensions:  r.Request.Describe(r.Surface),
		AreaSqFt:        r.AreaSqFt,
		PerimeterFt:     r.PerimeterFt,
		OpeningDeducted: r.OpeningDeducted,
		BoxesExact:      r.BoxesExact,
		BoxesNeeded:     r.BoxesNeeded,
		CreatedAt:       now,
	}
	if r.PricePerBox != nil {
		v := *r.PricePerBox
		item.PricePerBox = &v
	}
	if r.TotalPrice != nil {
		v := *r.TotalPrice
		item.TotalPrice = &v
	}
	return item
}
