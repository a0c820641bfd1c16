// Package models defines the core domain records for the tile calculator.
//
// # Models
//
//   - TileInfo: a tile/box configuration normalized from any source
//     (built-in catalog, inventory product, or manual entry)
//   - LineItem: one completed calculation, frozen once added to a bill
//   - Summary: aggregate box and price totals for a set of line items
//   - Bill: a saved, immutable snapshot of a working bill
//
// # Design Principles
//
//  1. Line items are snapshots: they copy the tile description and the
//     request that produced them, so a saved bill stays readable even if
//     the inventory product it referenced is later edited or deleted.
//  2. Prices are optional. A nil price means "unknown", which is distinct
//     from zero; summaries must never present a partial sum as complete.
//  3. Owner identity is an opaque string recorded at save time. The
//     models never validate it.
package models
