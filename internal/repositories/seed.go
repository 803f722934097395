package repositories

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/grocery/internal/models"
	"github.com/desertthunder/grocery/internal/shared"
	"github.com/shopspring/decimal"
)

const (
	seedProductQuery = `INSERT OR IGNORE INTO Product (Name, Stock, ShelfLife, Price) VALUES (?, ?, ?, ?)`
	seedItemQuery    = `INSERT OR IGNORE INTO GroceryListItem (GroceryListId, ProductId, Amount) VALUES (?, ?, ?)`
)

// defaultProducts are inserted on first start, keyed by Name.
var defaultProducts = []models.Product{
	{Name: "Melk", Stock: 300, ShelfLife: models.MustParseDate("2025-09-25"), Price: decimal.RequireFromString("0.95")},
	{Name: "Kaas", Stock: 100, ShelfLife: models.MustParseDate("2025-09-30"), Price: decimal.RequireFromString("7.98")},
	{Name: "Brood", Stock: 400, ShelfLife: models.MustParseDate("2025-09-12"), Price: decimal.RequireFromString("2.19")},
	{Name: "Cornflakes", Stock: 0, ShelfLife: models.MustParseDate("2025-12-31"), Price: decimal.RequireFromString("1.48")},
}

// listSeed is the set of items seeded onto one grocery list.
// The set is inserted whole or not at all.
type listSeed struct {
	GroceryListID int64
	Items         []itemSeed
}

// itemSeed references its product by name.
type itemSeed struct {
	ProductName string
	Amount      int
}

var defaultGroceryLists = []listSeed{
	{GroceryListID: 1, Items: []itemSeed{{"Melk", 3}, {"Kaas", 1}, {"Brood", 4}}},
	{GroceryListID: 2, Items: []itemSeed{{"Melk", 2}, {"Kaas", 5}}},
}

// productSeeds returns the seed statements for products.
func productSeeds(products []models.Product) func() ([]shared.Statement, error) {
	return func() ([]shared.Statement, error) {
		stmts := make([]shared.Statement, 0, len(products))
		for _, p := range products {
			stmts = append(stmts, shared.NewStatement(seedProductQuery, p.Name, p.Stock, p.ShelfLife, p.Price))
		}
		return stmts, nil
	}
}

// groceryListItemSeeds resolves each list's product names to their current ids.
//
// A list with any unknown product is skipped and logged.
func groceryListItemSeeds(products ProductLookup, lists []listSeed, logger *log.Logger) func() ([]shared.Statement, error) {
	return func() ([]shared.Statement, error) {
		var stmts []shared.Statement
		for _, list := range lists {
			resolved, missing, err := resolveListSeed(products, list)
			if err != nil {
				return nil, err
			}
			if len(missing) > 0 {
				logger.Warn("skipping seed items for grocery list",
					"grocery_list_id", list.GroceryListID, "missing_products", missing)
				continue
			}
			stmts = append(stmts, resolved...)
		}
		return stmts, nil
	}
}

func resolveListSeed(products ProductLookup, list listSeed) ([]shared.Statement, []string, error) {
	var (
		stmts   []shared.Statement
		missing []string
	)

	for _, item := range list.Items {
		product, err := products.GetByName(item.ProductName)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve product %q: %w", item.ProductName, err)
		}
		if product == nil {
			missing = append(missing, item.ProductName)
			continue
		}
		stmts = append(stmts, shared.NewStatement(seedItemQuery, list.GroceryListID, product.ID, item.Amount))
	}

	return stmts, missing, nil
}
