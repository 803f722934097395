// package repositories provides persistence layer implementations for all model types.
//
// Each repository implements a models repository contract for a specific entity type,
// handling schema bootstrap, seeding and CRUD operations.
package repositories

import (
	"errors"

	"github.com/desertthunder/grocery/internal/models"
	"github.com/desertthunder/grocery/internal/shared"
	"github.com/mattn/go-sqlite3"
)

var (
	_ models.ProductRepository         = (*ProductRepository)(nil)
	_ models.GroceryListItemRepository = (*GroceryListItemRepository)(nil)
	_ ProductLookup                    = (*ProductRepository)(nil)
	_ Connector                        = (*shared.ConnectionManager)(nil)
)

// Connector provides scoped access to a database connection.
//
// Implementations must release the connection before WithConnection returns, on every path.
type Connector interface {
	WithConnection(fn func(*shared.Connection) error) error
}

// ProductLookup resolves products by their natural key.
type ProductLookup interface {
	GetByName(name string) (*models.Product, error)
}

// rowScanner is satisfied by both [sql.Row] and [sql.Rows].
type rowScanner interface {
	Scan(dest ...any) error
}

// isUniqueViolation reports whether err is a SQLite UNIQUE or PRIMARY KEY constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
