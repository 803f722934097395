package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/grocery/internal/models"
	"github.com/desertthunder/grocery/internal/shared"
)

const productColumns = "Id, Name, Stock, ShelfLife, Price"

// ProductRepository implements [models.ProductRepository] on the Product table.
type ProductRepository struct {
	conns  Connector
	logger *log.Logger
}

// NewProductRepository bootstraps the Product table and its seed rows and returns the repository.
func NewProductRepository(conns Connector, logger *log.Logger) (*ProductRepository, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	r := &ProductRepository{conns: conns, logger: shared.WithLogger(logger, "repository", "product")}

	ddl, err := loadSchema("product")
	if err != nil {
		return nil, err
	}

	b := Bootstrap{Table: "Product", DDL: ddl, Seed: productSeeds(defaultProducts)}
	if err := b.Run(conns, r.logger); err != nil {
		return nil, fmt.Errorf("failed to bootstrap products: %w", err)
	}

	r.logger.Info("product repository initialized")
	return r, nil
}

// GetAll returns every product ordered by id.
func (r *ProductRepository) GetAll() ([]*models.Product, error) {
	products := make([]*models.Product, 0)

	err := r.conns.WithConnection(func(c *shared.Connection) error {
		rows, err := c.Query("SELECT " + productColumns + " FROM Product ORDER BY Id")
		if err != nil {
			return fmt.Errorf("failed to query products: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			product, err := r.scanRow(rows)
			if err != nil {
				return err
			}
			products = append(products, product)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("row iteration error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("loaded products", "count", len(products))
	return products, nil
}

// Get retrieves a product by id. It returns nil, nil when no product has that id.
func (r *ProductRepository) Get(id int64) (*models.Product, error) {
	return r.getOne("SELECT "+productColumns+" FROM Product WHERE Id = ?", id)
}

// GetByName retrieves a product by its unique name. It returns nil, nil when absent.
func (r *ProductRepository) GetByName(name string) (*models.Product, error) {
	return r.getOne("SELECT "+productColumns+" FROM Product WHERE Name = ?", name)
}

// Add inserts product and returns a copy carrying the id assigned by the store.
//
// A name that already exists fails with [shared.ErrDuplicateProduct].
func (r *ProductRepository) Add(product *models.Product) (*models.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	added := *product
	err := r.conns.WithConnection(func(c *shared.Connection) error {
		result, err := c.Exec(
			"INSERT INTO Product (Name, Stock, ShelfLife, Price) VALUES (?, ?, ?, ?)",
			product.Name, product.Stock, product.ShelfLife, product.Price,
		)
		if err != nil {
			return productWriteError("insert", product.Name, err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get inserted product id: %w", err)
		}
		added.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("product added", "id", added.ID, "name", added.Name)
	return &added, nil
}

// Update overwrites the name, stock, shelf life and price of the row matching product.ID.
//
// It returns nil, nil when no row matched.
func (r *ProductRepository) Update(product *models.Product) (*models.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var rows int64
	err := r.conns.WithConnection(func(c *shared.Connection) error {
		result, err := c.Exec(
			"UPDATE Product SET Name = ?, Stock = ?, ShelfLife = ?, Price = ? WHERE Id = ?",
			product.Name, product.Stock, product.ShelfLife, product.Price, product.ID,
		)
		if err != nil {
			return productWriteError("update", product.Name, err)
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

	updated := *product
	return &updated, nil
}

// Delete removes the row matching product.ID and returns the product.
//
// It returns nil, nil when no row matched.
func (r *ProductRepository) Delete(product *models.Product) (*models.Product, error) {
	if product == nil {
		return nil, fmt.Errorf("%w: product is nil", shared.ErrInvalidInput)
	}

	var rows int64
	err := r.conns.WithConnection(func(c *shared.Connection) error {
		result, err := c.Exec("DELETE FROM Product WHERE Id = ?", product.ID)
		if err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
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

	r.logger.Debug("product deleted", "id", product.ID)
	deleted := *product
	return &deleted, nil
}

func (r *ProductRepository) getOne(query string, args ...any) (*models.Product, error) {
	var product *models.Product

	err := r.conns.WithConnection(func(c *shared.Connection) error {
		p, err := r.scanOne(c.QueryRow(query, args...))
		if err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// scanOne scans a single row into a [models.Product], mapping [sql.ErrNoRows] to nil, nil
func (r *ProductRepository) scanOne(row *sql.Row) (*models.Product, error) {
	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return product, err
}

// scanRow scans a row from [sql.Rows] into a [models.Product]
func (r *ProductRepository) scanRow(rows *sql.Rows) (*models.Product, error) {
	return scanProduct(rows)
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Stock, &p.ShelfLife, &p.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return &p, nil
}

func productWriteError(op, name string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", shared.ErrDuplicateProduct, name)
	}
	return fmt.Errorf("failed to %s product: %w", op, err)
}
