// Package repositories implements SQLite persistence for the grocery domain entities.
//
// Each repository bootstraps its own table when constructed: the DDL is read from the embedded
// sql/ directory, created with CREATE TABLE IF NOT EXISTS and seeded with INSERT OR IGNORE
// statements inside one transaction, so construction is idempotent across application starts.
//
// Key Implementations:
//   - [Bootstrap] : Per-table schema creation and seeding on a single connection
//   - [ProductRepository] : Product CRUD with name-based lookups
//   - [GroceryListItemRepository] : Grocery list lines, seeded against product names
//
// Repositories never hold a connection between calls. Every operation goes through
// [Connector.WithConnection], which opens a handle, runs the query and closes it again.
//
// Seed rows for GroceryListItem reference products by name, not by id. The ids are resolved
// through [ProductLookup] at bootstrap time and bound as parameters, so autoincrement drift in
// the Product table never produces dangling references.
package repositories
