// package models defines the data model for the grocery list application
package models

import (
	"github.com/shopspring/decimal"
)

// Product is a stocked product. Name is the natural key.
//
// Price is stored as REAL, so it is limited to [PricePlaces] decimals and [MaxPrice].
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name" validate:"required"`
	Stock     int             `json:"stock" validate:"gte=0"`
	ShelfLife Date            `json:"shelf_life" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"price"`
}

// NewProduct builds an unsaved Product.
func NewProduct(name string, stock int, shelfLife Date, price decimal.Decimal) *Product {
	return &Product{Name: name, Stock: stock, ShelfLife: shelfLife, Price: price}
}

// Validate checks the product's fields.
func (p *Product) Validate() error {
	return Validate(p)
}

// GroceryListItem is one product on one grocery list.
//
// A list holds a product at most once: (GroceryListID, ProductID) is unique.
type GroceryListItem struct {
	ID            int64 `json:"id"`
	GroceryListID int64 `json:"grocery_list_id" validate:"gt=0"`
	ProductID     int64 `json:"product_id" validate:"gt=0"`
	Amount        int   `json:"amount" validate:"gt=0"`
}

// NewGroceryListItem builds an unsaved GroceryListItem.
func NewGroceryListItem(groceryListID, productID int64, amount int) *GroceryListItem {
	return &GroceryListItem{GroceryListID: groceryListID, ProductID: productID, Amount: amount}
}

// Validate checks the item's fields.
func (i *GroceryListItem) Validate() error {
	return Validate(i)
}

// ProductRepository defines data access for [Product].
//
// Get, Update and Delete return (nil, nil) when no row has the given id.
type ProductRepository interface {
	GetAll() ([]*Product, error)               // GetAll returns every product ordered by id
	Get(id int64) (*Product, error)            // Get returns the product with the given id
	Add(product *Product) (*Product, error)    // Add inserts product and returns it with its assigned id
	Update(product *Product) (*Product, error) // Update overwrites every mutable field of the matching row
	Delete(product *Product) (*Product, error) // Delete removes the row matching product.ID
}

// GroceryListItemRepository defines data access for [GroceryListItem].
//
// Get, Update and Delete return (nil, nil) when no row has the given id.
type GroceryListItemRepository interface {
	GetAll() ([]*GroceryListItem, error)
	GetAllForList(groceryListID int64) ([]*GroceryListItem, error)
	Get(id int64) (*GroceryListItem, error)
	Add(item *GroceryListItem) (*GroceryListItem, error)
	Update(item *GroceryListItem) (*GroceryListItem, error)
	Delete(item *GroceryListItem) (*GroceryListItem, error)
}
