package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/frozen33/inventory/internal/models"
)

// SQLResolver reads tile products from the products and tile_details
// tables. It shares the database handle owned by the storage layer.
type SQLResolver struct {
	db *sql.DB
}

// NewSQLResolver wraps an open database handle.
func NewSQLResolver(db *sql.DB) *SQLResolver {
	return &SQLResolver{db: db}
}

// ResolveTile implements Resolver. Price is taken from the product's
// selling price and left unknown when the column is NULL.
func (r *SQLResolver) ResolveTile(ctx context.Context, productID string) (models.TileInfo, error) {
	var (
		info         models.TileInfo
		length       sql.NullFloat64
		width        sql.NullFloat64
		unit         sql.NullString
		sellingPrice sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT p.name, p.selling_price,
		       td.tiles_per_box, td.sq_feet_per_box,
		       td.dimension_length, td.dimension_width, td.dimension_unit
		FROM products p
		JOIN tile_details td ON td.product_id = p.id
		WHERE p.id = ?`,
		productID,
	).Scan(&info.Name, &sellingPrice, &info.TilesPerBox, &info.CoveragePerBox, &length, &width, &unit)
	if err == sql.ErrNoRows {
		return models.TileInfo{}, fmt.Errorf("%w: %s", ErrNotFound, productID)
	}
	if err != nil {
		return models.TileInfo{}, fmt.Errorf("failed to resolve tile product: %w", err)
	}

	info.Source = models.SourceInventory
	info.ProductID = productID
	if length.Valid && width.Valid {
		u := "feet"
		if unit.Valid && unit.String != "" {
			u = unit.String
		}
		info.Dimensions = fmt.Sprintf("%gx%g %s", length.Float64, width.Float64, u)
	}
	if sellingPrice.Valid {
		p := sellingPrice.Float64
		info.PricePerBox = &p
	}
	return info, nil
}
