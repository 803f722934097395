package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/grocery/internal/models"
	"github.com/desertthunder/grocery/internal/shared"
)

const groceryListItemColumns = "Id, GroceryListId, ProductId, Amount"

// GroceryListItemRepository implements [models.GroceryListItemRepository] on the GroceryListItem table.
//
// The product lookup is only used while seeding, to turn product names into current ids.
type GroceryListItemRepository struct {
	conns  Connector
	logger *log.Logger
}

// NewGroceryListItemRepository bootstraps the GroceryListItem table and seeds the default lists,
// resolving their products by name through products.
func NewGroceryListItemRepository(conns Connector, products ProductLookup, logger *log.Logger) (*GroceryListItemRepository, error) {
	return newGroceryListItemRepository(conns, products, defaultGroceryLists, logger)
}

func newGroceryListItemRepository(conns Connector, products ProductLookup, lists []listSeed, logger *log.Logger) (*GroceryListItemRepository, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	r := &GroceryListItemRepository{conns: conns, logger: shared.WithLogger(logger, "repository", "grocery_list_item")}

	ddl, err := loadSchema("grocery_list_item")
	if err != nil {
		return nil, err
	}

	b := Bootstrap{
		Table:            "GroceryListItem",
		DDL:              ddl,
		RelaxForeignKeys: true,
		Seed:             groceryListItemSeeds(products, lists, r.logger),
	}
	if err := b.Run(conns, r.logger); err != nil {
		return nil, fmt.Errorf("failed to bootstrap grocery list items: %w", err)
	}

	r.logger.Info("grocery list item repository initialized")
	return r, nil
}

// GetAll returns every grocery list item ordered by id.
func (r *GroceryListItemRepository) GetAll() ([]*models.GroceryListItem, error) {
	return r.list("SELECT " + groceryListItemColumns + " FROM GroceryListItem ORDER BY Id")
}

// GetAllForList returns the items on one grocery list ordered by id.
func (r *GroceryListItemRepository) GetAllForList(groceryListID int64) ([]*models.GroceryListItem, error) {
	return r.list("SELECT "+groceryListItemColumns+" FROM GroceryListItem WHERE GroceryListId = ? ORDER BY Id", groceryListID)
}

// Get retrieves an item by id. It returns nil, nil when no item has that id.
func (r *GroceryListItemRepository) Get(id int64) (*models.GroceryListItem, error) {
	var item *models.GroceryListItem

	err := r.conns.WithConnection(func(c *shared.Connection) error {
		i, err := r.scanOne(c.QueryRow("SELECT "+groceryListItemColumns+" FROM GroceryListItem WHERE Id = ?", id))
		if err != nil {
			return err
		}
		item = i
		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// Add inserts item and returns a copy carrying the id assigned by the store.
//
// GroceryListId is never checked against the GroceryList table, whatever the configured
// foreign key setting.
//
// Adding a product that is already on the list fails with [shared.ErrDuplicateListItem].
func (r *GroceryListItemRepository) Add(item *models.GroceryListItem) (*models.GroceryListItem, error) {
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	added := *item
	err := r.conns.WithConnection(func(c *shared.Connection) error {
		if err := relaxListReference(c); err != nil {
			return err
		}

		result, err := c.Exec(
			"INSERT INTO GroceryListItem (GroceryListId, ProductId, Amount) VALUES (?, ?, ?)",
			item.GroceryListID, item.ProductID, item.Amount,
		)
		if err != nil {
			return itemWriteError("insert", item, err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get inserted item id: %w", err)
		}
		added.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("grocery list item added", "id", added.ID, "grocery_list_id", added.GroceryListID, "product_id", added.ProductID)
	return &added, nil
}

// Update overwrites the list, product and amount of the row matching item.ID.
//
// It returns nil, nil when no row matched.
func (r *GroceryListItemRepository) Update(item *models.GroceryListItem) (*models.GroceryListItem, error) {
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var rows int64
	err := r.conns.WithConnection(func(c *shared.Connection) error {
		if err := relaxListReference(c); err != nil {
			return err
		}

		result, err := c.Exec(
			"UPDATE GroceryListItem SET GroceryListId = ?, ProductId = ?, Amount = ? WHERE Id = ?",
			item.GroceryListID, item.ProductID, item.Amount, item.ID,
		)
		if err != nil {
			return itemWriteError("update", item, err)
		}

		rows, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, nil
	}

	updated := *item
	return &updated, nil
}

// Delete removes the row matching item.ID and returns the item.
//
// It returns nil, nil when no row matched.
func (r *GroceryListItemRepository) Delete(item *models.GroceryListItem) (*models.GroceryListItem, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: grocery list item is nil", shared.ErrInvalidInput)
	}

	var rows int64
	err := r.conns.WithConnection(func(c *shared.Connection) error {
		result, err := c.Exec("DELETE FROM GroceryListItem WHERE Id = ?", item.ID)
		if err != nil {
			return fmt.Errorf("failed to delete grocery list item: %w", err)
		}

		rows, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, nil
	}

	deleted := *item
	return &deleted, nil
}

func (r *GroceryListItemRepository) list(query string, args ...any) ([]*models.GroceryListItem, error) {
	items := make([]*models.GroceryListItem, 0)

	err := r.conns.WithConnection(func(c *shared.Connection) error {
		rows, err := c.Query(query, args...)
		if err != nil {
			return fmt.Errorf("failed to query grocery list items: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			item, err := r.scanRow(rows)
			if err != nil {
				return err
			}
			items = append(items, item)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("row iteration error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// scanOne scans a single row into a [models.GroceryListItem], mapping [sql.ErrNoRows] to nil, nil
func (r *GroceryListItemRepository) scanOne(row *sql.Row) (*models.GroceryListItem, error) {
	item, err := scanGroceryListItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return item, err
}

// scanRow scans a row from [sql.Rows] into a [models.GroceryListItem]
func (r *GroceryListItemRepository) scanRow(rows *sql.Rows) (*models.GroceryListItem, error) {
	return scanGroceryListItem(rows)
}

func scanGroceryListItem(row rowScanner) (*models.GroceryListItem, error) {
	var i models.GroceryListItem
	if err := row.Scan(&i.ID, &i.GroceryListID, &i.ProductID, &i.Amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan grocery list item: %w", err)
	}
	return &i, nil
}

// relaxListReference turns off foreign key enforcement on c. The GroceryList table is owned
// elsewhere and may not exist, so the GroceryListId reference is advisory.
func relaxListReference(c *shared.Connection) error {
	if err := c.SetForeignKeys(false); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrDatabaseUnavailable, err)
	}
	return nil
}

func itemWriteError(op string, item *models.GroceryListItem, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: product %d on list %d", shared.ErrDuplicateListItem, item.ProductID, item.GroceryListID)
	}
	return fmt.Errorf("failed to %s grocery list item: %w", op, err)
}
