package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Bill items and tile details cascade with their parent rows, so deleting
// a bill or a product never leaves orphans.
const schema = `
CREATE TABLE IF NOT EXISTS calculation_bills (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    owner_id TEXT NOT NULL,
    created_by TEXT NOT NULL DEFAULT '',
    floor_boxes INTEGER NOT NULL DEFAULT 0,
    wall_boxes INTEGER NOT NULL DEFAULT 0,
    total_boxes INTEGER NOT NULL DEFAULT 0,
    floor_price REAL NOT NULL DEFAULT 0,
    wall_price REAL NOT NULL DEFAULT 0,
    total_price REAL NOT NULL DEFAULT 0,
    price_known INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS calculation_bill_items (
    id TEXT PRIMARY KEY,
    bill_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    surface TEXT NOT NULL,
    source_type TEXT NOT NULL,
    product_id TEXT,
    tile_name TEXT NOT NULL,
    tile_dimensions TEXT NOT NULL,
    tiles_per_box INTEGER NOT NULL,
    coverage_per_box REAL NOT NULL,
    room_dimensions TEXT NOT NULL,
    area_sqft REAL NOT NULL,
    perimeter_ft REAL NOT NULL DEFAULT 0,
    opening_deducted INTEGER NOT NULL DEFAULT 0,
    boxes_exact REAL NOT NULL,
    boxes_needed INTEGER NOT NULL,
    price_per_box REAL,
    total_price REAL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (bill_id) REFERENCES calculation_bills(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS products (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    product_type TEXT NOT NULL DEFAULT 'tiles',
    selling_price REAL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tile_details (
    id TEXT PRIMARY KEY,
    product_id TEXT NOT NULL UNIQUE,
    tiles_per_box INTEGER NOT NULL,
    sq_feet_per_box REAL NOT NULL,
    dimension_length REAL,
    dimension_width REAL,
    dimension_unit TEXT,
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_bill_items_bill_id ON calculation_bill_items(bill_id);
CREATE INDEX IF NOT EXISTS idx_bills_owner_id ON calculation_bills(owner_id);
CREATE INDEX IF NOT EXISTS idx_bills_created_at ON calculation_bills(created_at);
CREATE INDEX IF NOT EXISTS idx_tile_details_product_id ON tile_details(product_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
