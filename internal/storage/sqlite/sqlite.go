// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/frozen33/inventory/internal/models"
	"github.com/frozen33/inventory/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys so bill items cascade with their header
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// DB exposes the underlying handle so collaborators that share the same
// database file (the inventory resolver) can reuse the connection pool.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveBill persists a bill header and its line items in one transaction.
// Either the whole bill lands or nothing does.
func (s *SQLiteStore) SaveBill(ctx context.Context, b *models.Bill) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt == 0 {
		b.CreatedAt = time.Now().Unix()
	}
	if b.Name == "" {
		b.Name = generateName(b.CreatedAt)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO calculation_bills (
			id, name, owner_id, created_by,
			floor_boxes, wall_boxes, total_boxes,
			floor_price, wall_price, total_price, price_known,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.OwnerID, b.CreatedBy,
		b.Totals.FloorBoxes, b.Totals.WallBoxes, b.Totals.TotalBoxes,
		b.Totals.FloorPrice, b.Totals.WallPrice, b.Totals.TotalPrice, boolToInt(b.Totals.PriceKnown),
		b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	for i, item := range b.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO calculation_bill_items (
				id, bill_id, position, surface, source_type, product_id,
				tile_name, tile_dimensions, tiles_per_box, coverage_per_box,
				room_dimensions, area_sqft, perimeter_ft, opening_deducted,
				boxes_exact, boxes_needed, price_per_box, total_price, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), b.ID, i, item.Surface, item.Source, nullString(item.ProductID),
			item.TileName, item.TileDimensions, item.TilesPerBox, item.CoveragePerBox,
			item.RoomDimensions, item.AreaSqFt, item.PerimeterFt, boolToInt(item.OpeningDeducted),
			item.BoxesExact, item.BoxesNeeded, nullFloat(item.PricePerBox), nullFloat(item.TotalPrice), item.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

const billColumns = `id, name, owner_id, created_by,
	floor_boxes, wall_boxes, total_boxes,
	floor_price, wall_price, total_price, price_known, created_at`

// GetBill retrieves a bill by ID, including all line items in order.
func (s *SQLiteStore) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+billColumns+" FROM calculation_bills WHERE id = ?", id)

	b, err := scanBill(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT surface, source_type, product_id, tile_name, tile_dimensions,
		       tiles_per_box, coverage_per_box, room_dimensions, area_sqft,
		       perimeter_ft, opening_deducted, boxes_exact, boxes_needed,
		       price_per_box, total_price, created_at
		FROM calculation_bill_items
		WHERE bill_id = ?
		ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item      models.LineItem
			productID sql.NullString
			deducted  int
			price     sql.NullFloat64
			total     sql.NullFloat64
		)
		if err := rows.Scan(
			&item.Surface, &item.Source, &productID, &item.TileName, &item.TileDimensions,
			&item.TilesPerBox, &item.CoveragePerBox, &item.RoomDimensions, &item.AreaSqFt,
			&item.PerimeterFt, &deducted, &item.BoxesExact, &item.BoxesNeeded,
			&price, &total, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bill item: %w", err)
		}
		item.ProductID = productID.String
		item.OpeningDeducted = deducted != 0
		if price.Valid {
			v := price.Float64
			item.PricePerBox = &v
		}
		if total.Valid {
			v := total.Float64
			item.TotalPrice = &v
		}
		b.Items = append(b.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bill items: %w", err)
	}

	return b, nil
}

// ListBills returns all bill headers across all owners, newest first.
func (s *SQLiteStore) ListBills(ctx context.Context) ([]models.Bill, error) {
	return s.listBills(ctx,
		"SELECT "+billColumns+" FROM calculation_bills ORDER BY created_at DESC, id")
}

// ListBillsByOwner returns one owner's bill headers, newest first.
func (s *SQLiteStore) ListBillsByOwner(ctx context.Context, ownerID string) ([]models.Bill, error) {
	return s.listBills(ctx,
		"SELECT "+billColumns+" FROM calculation_bills WHERE owner_id = ? ORDER BY created_at DESC, id",
		ownerID)
}

func (s *SQLiteStore) listBills(ctx context.Context, query string, args ...any) ([]models.Bill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// DeleteBill removes a bill permanently; items cascade with the header.
func (s *SQLiteStore) DeleteBill(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM calculation_bills WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return nil
}

// PurgeOlderThan deletes bills created strictly before cutoff and returns
// the number removed.
func (s *SQLiteStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM calculation_bills WHERE created_at < ?", cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge bills: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read purge result: %w", err)
	}
	return int(n), nil
}

// CountOlderThan reports how many bills a purge at cutoff would remove.
func (s *SQLiteStore) CountOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM calculation_bills WHERE created_at < ?", cutoff.Unix()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count old bills: %w", err)
	}
	return n, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBill(row scanner) (*models.Bill, error) {
	var (
		b          models.Bill
		priceKnown int
	)
	err := row.Scan(
		&b.ID, &b.Name, &b.OwnerID, &b.CreatedBy,
		&b.Totals.FloorBoxes, &b.Totals.WallBoxes, &b.Totals.TotalBoxes,
		&b.Totals.FloorPrice, &b.Totals.WallPrice, &b.Totals.TotalPrice, &priceKnown,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Totals.PriceKnown = priceKnown != 0
	return &b, nil
}

// generateName creates an auto-generated bill name from the creation date.
func generateName(createdAt int64) string {
	return fmt.Sprintf("Bill - %s", time.Unix(createdAt, 0).Format("Jan 2, 2006"))
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
