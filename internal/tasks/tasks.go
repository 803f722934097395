package tasks

import (
	"fmt"
	"sort"

	"github.com/desertthunder/grocery/internal/models"
	"github.com/desertthunder/grocery/internal/shared"
)

// ProductSource lists products.
type ProductSource interface {
	GetAll() ([]*models.Product, error)
}

// ItemSource lists grocery list items.
type ItemSource interface {
	GetAll() ([]*models.GroceryListItem, error)
}

// ExportEngine exports grocery lists read from the product and item services.
type ExportEngine struct {
	products ProductSource
	items    ItemSource
}

// NewExportEngine creates an ExportEngine over the given sources.
func NewExportEngine(products ProductSource, items ItemSource) *ExportEngine {
	return &ExportEngine{products: products, items: items}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// loadLists joins all items with all products, one [models.GroceryList] per list id in ascending order.
func (e *ExportEngine) loadLists() ([]*models.GroceryList, error) {
	if e.products == nil || e.items == nil {
		return nil, fmt.Errorf("%w: export sources not initialized", shared.ErrDatabaseUnavailable)
	}

	products, err := e.products.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	items, err := e.items.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load grocery list items: %w", err)
	}

	seen := map[int64]bool{}
	ids := []int64{}
	for _, item := range items {
		if !seen[item.GroceryListID] {
			seen[item.GroceryListID] = true
			ids = append(ids, item.GroceryListID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	lists := make([]*models.GroceryList, 0, len(ids))
	for _, id := range ids {
		lists = append(lists, models.NewGroceryList(id, items, products))
	}
	return lists, nil
}
