// package services defines thin facades over the grocery repositories
package services

import "github.com/desertthunder/grocery/internal/models"

// ProductService forwards every call to a [models.ProductRepository].
type ProductService struct {
	repo models.ProductRepository
}

// NewProductService creates a ProductService over repo
func NewProductService(repo models.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// GetAll returns every product ordered by id.
func (s *ProductService) GetAll() ([]*models.Product, error) {
	return s.repo.GetAll()
}

// Get returns the product with id, or nil, nil when none exists.
func (s *ProductService) Get(id int64) (*models.Product, error) {
	return s.repo.Get(id)
}

// Add stores product and returns a copy with its assigned id.
func (s *ProductService) Add(product *models.Product) (*models.Product, error) {
	return s.repo.Add(product)
}

// Update overwrites the product matching product.ID, or returns nil, nil when none matched.
func (s *ProductService) Update(product *models.Product) (*models.Product, error) {
	return s.repo.Update(product)
}

// Delete removes the product matching product.ID, or returns nil, nil when none matched.
func (s *ProductService) Delete(product *models.Product) (*models.Product, error) {
	return s.repo.Delete(product)
}

// GroceryListItemService forwards every call to a [models.GroceryListItemRepository].
type GroceryListItemService struct {
	repo models.GroceryListItemRepository
}

// NewGroceryListItemService creates a GroceryListItemService over repo
func NewGroceryListItemService(repo models.GroceryListItemRepository) *GroceryListItemService {
	return &GroceryListItemService{repo: repo}
}

// GetAll returns every grocery list item ordered by id.
func (s *GroceryListItemService) GetAll() ([]*models.GroceryListItem, error) {
	return s.repo.GetAll()
}

// GetAllForList returns the items on one grocery list.
func (s *GroceryListItemService) GetAllForList(groceryListID int64) ([]*models.GroceryListItem, error) {
	return s.repo.GetAllForList(groceryListID)
}

// Get returns the item with id, or nil, nil when none exists.
func (s *GroceryListItemService) Get(id int64) (*models.GroceryListItem, error) {
	return s.repo.Get(id)
}

// Add stores item and returns a copy with its assigned id.
func (s *GroceryListItemService) Add(item *models.GroceryListItem) (*models.GroceryListItem, error) {
	return s.repo.Add(item)
}

// Update overwrites the item matching item.ID, or returns nil, nil when none matched.
func (s *GroceryListItemService) Update(item *models.GroceryListItem) (*models.GroceryListItem, error) {
	return s.repo.Update(item)
}

// Delete removes the item matching item.ID, or returns nil, nil when none matched.
func (s *GroceryListItemService) Delete(item *models.GroceryListItem) (*models.GroceryListItem, error) {
	return s.repo.Delete(item)
}

var (
	_ models.ProductRepository         = (*ProductService)(nil)
	_ models.GroceryListItemRepository = (*GroceryListItemService)(nil)
)
