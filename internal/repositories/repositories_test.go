package repositories

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/grocery/internal/models"
	"github.com/desertthunder/grocery/internal/shared"
	"github.com/shopspring/decimal"
)

// setupTestDB returns a ConnectionManager for a fresh database file in a temp directory
func setupTestDB(t *testing.T) *shared.ConnectionManager {
	t.Helper()

	cfg := shared.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "grocery.db"),
		BusyTimeout: 1,
	}
	return shared.NewConnectionManager(cfg, testLogger())
}

func testLogger() *log.Logger {
	return shared.NewLogger(io.Discard)
}

// setupRepositories bootstraps both repositories in dependency order
func setupRepositories(t *testing.T) (*shared.ConnectionManager, *ProductRepository, *GroceryListItemRepository) {
	t.Helper()

	db := setupTestDB(t)

	products, err := NewProductRepository(db, testLogger())
	if err != nil {
		t.Fatalf("failed to create product repository: %v", err)
	}

	items, err := NewGroceryListItemRepository(db, products, testLogger())
	if err != nil {
		t.Fatalf("failed to create grocery list item repository: %v", err)
	}

	return db, products, items
}

func mustGetAllProducts(t *testing.T, repo *ProductRepository) []*models.Product {
	t.Helper()

	products, err := repo.GetAll()
	if err != nil {
		t.Fatalf("failed to get products: %v", err)
	}
	return products
}

func mustGetAllItems(t *testing.T, repo *GroceryListItemRepository) []*models.GroceryListItem {
	t.Helper()

	items, err := repo.GetAll()
	if err != nil {
		t.Fatalf("failed to get grocery list items: %v", err)
	}
	return items
}

func mustProductByName(t *testing.T, repo *ProductRepository, name string) *models.Product {
	t.Helper()

	product, err := repo.GetByName(name)
	if err != nil {
		t.Fatalf("failed to get product %s: %v", name, err)
	}
	if product == nil {
		t.Fatalf("product %s not found", name)
	}
	return product
}

func assertSameProduct(t *testing.T, want, got *models.Product) {
	t.Helper()

	if got.Name != want.Name {
		t.Errorf("expected name %s, got %s", want.Name, got.Name)
	}
	if got.Stock != want.Stock {
		t.Errorf("expected stock %d, got %d", want.Stock, got.Stock)
	}
	if got.ShelfLife != want.ShelfLife {
		t.Errorf("expected shelf life %s, got %s", want.ShelfLife, got.ShelfLife)
	}
	if !got.Price.Equal(want.Price) {
		t.Errorf("expected price %s, got %s", want.Price, got.Price)
	}
}

func TestProductRepository(t *testing.T) {
	t.Run("Bootstrap seeds default products", func(t *testing.T) {
		_, repo, _ := setupRepositories(t)

		products := mustGetAllProducts(t, repo)
		if len(products) != len(defaultProducts) {
			t.Fatalf("expected %d products, got %d", len(defaultProducts), len(products))
		}

		for i, want := range defaultProducts {
			assertSameProduct(t, &want, products[i])
		}
	})

	t.Run("Add & Get", func(t *testing.T) {
		_, repo, _ := setupRepositories(t)

		input := models.NewProduct("Appel", 25, models.MustParseDate("2025-10-01"), decimal.RequireFromString("0.45"))

		added, err := repo.Add(input)
		if err != nil {
			t.Fatalf("failed to add product: %v", err)
		}
		if added.ID == 0 {
			t.Fatal("product ID should be set after add")
		}
		if input.ID != 0 {
			t.Error("input product should not be modified")
		}

		retrieved, err := repo.Get(added.ID)
		if err != nil {
			t.Fatalf("failed to get product: %v", err)
		}
		if retrieved == nil {
			t.Fatal("expected product to be found")
		}
		if retrieved.ID != added.ID {
			t.Errorf("expected ID %d, got %d", added.ID, retrieved.ID)
		}
		assertSameProduct(t, input, retrieved)
	})

	t.Run("Price keeps exact decimal precision", func(t *testing.T) {
		_, repo, _ := setupRepositories(t)

		prices := []string{"0.10", "0.20", "19.99", "1234.56", "0", "0.01", "1234567890123.45", "9999999999999.99"}
		for i, price := range prices {
			name := "Precise " + strings.Repeat("x", i+1)
			added, err := repo.Add(models.NewProduct(name, 1, models.MustParseDate("2026-01-01"), decimal.RequireFromString(price)))
			if err != nil {
				t.Fatalf("failed to add product: %v", err)
			}

			retrieved, err := repo.Get(added.ID)
			if err != nil {
				t.Fatalf("failed to get product: %v", err)
			}
			if !retrieved.Price.Equal(decimal.RequireFromString(price)) {
				t.Errorf("expected price %s, got %s", price, retrieved.Price)
			}
		}
	})

	t.Run("Price beyond REAL precision is rejected", func(t *testing.T) {
		_, repo, _ := setupRepositories(t)
		before := len(mustGetAllProducts(t, repo))

		for _, price := range []string{"99999999999999.99", "0.123456789012345678", "0.001"} {
			_, err := repo.Add(models.NewProduct("Imprecise "+price, 1, models.MustParseDate("2026-01-01"), decimal.RequireFromString(price)))
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput for price %s, got %v", price, err)
			}
		}

		if after := len(mustGetAllProducts(t, repo)); after != before {
			t.Errorf("expected %d products, got %d", before, after)
		}
	})

	t.Run("GetByName", func(t *testing.T) {
		_, repo, _ := setupRepositories(t)

		product := mustProductByName(t, repo, "Kaas")
		if product.Stock != 100 {
			t.Errorf("expected stock 100, got %d", product.Stock)
		}

		missing, err := repo.GetByName("Appel")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if missing != nil {
			t.Errorf("expected nil for unknown name, got %+v", missing)
		}
	})

	t.Run("Update", func(t *testing.T) {
		_, repo, _ := setupRepositories(t)

		product := mustProductByName(t, repo, "Brood")
		product.Name = "Volkorenbrood"
		product.Stock = 12
		product.ShelfLife = models.MustParseDate("2025-10-05")
		product.Price = decimal.RequireFromString("2.49")

		updated, err := repo.Update(product)
		if err != nil {
			t.Fatalf("failed to update product: %v", err)
		}
		if updated == nil {
			t.Fatal("expected updated product")
		}

		retrieved, err := repo.Get(product.ID)
		if err != nil {
			t.Fatalf("failed to get product: %v", err)
		}
		assertSameProduct(t, product, retrieved)
	})

	t.Run("Delete", func(t *testing.T) {
		_, repo, _ := setupRepositories(t)

		product := mustProductByName(t, repo, "Cornflakes")

		deleted, err := repo.Delete(product)
		if err != nil {
			t.Fatalf("failed to delete product: %v", err)
		}
		if deleted == nil || deleted.ID != product.ID {
			t.Fatalf("expected deleted product %d, got %+v", product.ID, deleted)
		}

		retrieved, err := repo.Get(product.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if retrieved != nil {
			t.Error("expected deleted product to be gone")
		}

		if got := len(mustGetAllProducts(t, repo)); got != len(defaultProducts)-1 {
			t.Errorf("expected %d products, got %d", len(defaultProducts)-1, got)
		}
	})

	t.Run("GetAll returns a fresh slice per call", func(t *testing.T) {
		_, repo, _ := setupRepositories(t)

		first := mustGetAllProducts(t, repo)
		first[0].Name = "mutated"

		second := mustGetAllProducts(t, repo)
		if len(second) != len(defaultProducts) {
			t.Errorf("expected %d products, got %d", len(defaultProducts), len(second))
		}
		if second[0].Name != "Melk" {
			t.Errorf("expected Melk, got %s", second[0].Name)
		}
	})

	t.Run("GetAll on empty table", func(t *testing.T) {
		_, repo, _ := setupRepositories(t)

		for _, p := range mustGetAllProducts(t, repo) {
			if _, err := repo.Delete(p); err != nil {
				t.Fatalf("failed to delete product: %v", err)
			}
		}

		products := mustGetAllProducts(t, repo)
		if products == nil || len(products) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", products)
		}
	})
}

func TestGroceryListItemRepository(t *testing.T) {
	t.Run("GetAllForList after seeding", func(t *testing.T) {
		_, products, repo := setupRepositories(t)

		items, err := repo.GetAllForList(1)
		if err != nil {
			t.Fatalf("failed to get items for list: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("expected 3 items on list 1, got %d", len(items))
		}

		want := map[string]int{"Melk": 3, "Kaas": 1, "Brood": 4}
		for name, amount := range want {
			product := mustProductByName(t, products, name)
			found := false
			for _, item := range items {
				if item.GroceryListID != 1 {
					t.Errorf("expected list 1, got %d", item.GroceryListID)
				}
				if item.ProductID == product.ID {
					found = true
					if item.Amount != amount {
						t.Errorf("expected amount %d for %s, got %d", amount, name, item.Amount)
					}
				}
			}
			if !found {
				t.Errorf("expected %s on list 1", name)
			}
		}
	})

	t.Run("GetAll", func(t *testing.T) {
		_, _, repo := setupRepositories(t)

		items := mustGetAllItems(t, repo)
		if len(items) != 5 {
			t.Errorf("expected 5 seeded items, got %d", len(items))
		}

		list2, err := repo.GetAllForList(2)
		if err != nil {
			t.Fatalf("failed to get items for list: %v", err)
		}
		if len(list2) != 2 {
			t.Errorf("expected 2 items on list 2, got %d", len(list2))
		}

		empty, err := repo.GetAllForList(99)
		if err != nil {
			t.Fatalf("failed to get items for list: %v", err)
		}
		if len(empty) != 0 {
			t.Errorf("expected no items on list 99, got %d", len(empty))
		}
	})

	t.Run("Add & Get", func(t *testing.T) {
		_, products, repo := setupRepositories(t)

		cornflakes := mustProductByName(t, products, "Cornflakes")
		input := models.NewGroceryListItem(1, cornflakes.ID, 2)

		added, err := repo.Add(input)
		if err != nil {
			t.Fatalf("failed to add item: %v", err)
		}
		if added.ID == 0 {
			t.Fatal("item ID should be set after add")
		}

		retrieved, err := repo.Get(added.ID)
		if err != nil {
			t.Fatalf("failed to get item: %v", err)
		}
		if retrieved == nil {
			t.Fatal("expected item to be found")
		}
		if *retrieved != *added {
			t.Errorf("expected %+v, got %+v", *added, *retrieved)
		}
	})

	t.Run("Update", func(t *testing.T) {
		_, _, repo := setupRepositories(t)

		item := mustGetAllItems(t, repo)[0]
		item.Amount = 10

		updated, err := repo.Update(item)
		if err != nil {
			t.Fatalf("failed to update item: %v", err)
		}
		if updated == nil {
			t.Fatal("expected updated item")
		}

		retrieved, err := repo.Get(item.ID)
		if err != nil {
			t.Fatalf("failed to get item: %v", err)
		}
		if retrieved.Amount != 10 {
			t.Errorf("expected amount 10, got %d", retrieved.Amount)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		_, _, repo := setupRepositories(t)

		item := mustGetAllItems(t, repo)[0]

		deleted, err := repo.Delete(item)
		if err != nil {
			t.Fatalf("failed to delete item: %v", err)
		}
		if deleted == nil {
			t.Fatal("expected deleted item")
		}

		retrieved, err := repo.Get(item.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if retrieved != nil {
			t.Error("expected deleted item to be gone")
		}
	})
}

func TestBootstrap(t *testing.T) {
	t.Run("Idempotent seeding", func(t *testing.T) {
		db, products, items := setupRepositories(t)

		productCount := len(mustGetAllProducts(t, products))
		itemCount := len(mustGetAllItems(t, items))

		products2, err := NewProductRepository(db, testLogger())
		if err != nil {
			t.Fatalf("failed to bootstrap products again: %v", err)
		}
		items2, err := NewGroceryListItemRepository(db, products2, testLogger())
		if err != nil {
			t.Fatalf("failed to bootstrap items again: %v", err)
		}

		if got := len(mustGetAllProducts(t, products2)); got != productCount {
			t.Errorf("expected %d products after second bootstrap, got %d", productCount, got)
		}
		if got := len(mustGetAllItems(t, items2)); got != itemCount {
			t.Errorf("expected %d items after second bootstrap, got %d", itemCount, got)
		}
	})

	t.Run("Seed references follow shifted product ids", func(t *testing.T) {
		db := setupTestDB(t)

		ddl, err := loadSchema("product")
		if err != nil {
			t.Fatalf("failed to load schema: %v", err)
		}
		if err := db.CreateTable(ddl); err != nil {
			t.Fatalf("failed to create product table: %v", err)
		}
		err = db.RunInTransaction([]shared.Statement{
			shared.NewStatement("INSERT INTO Product (Name, Stock, ShelfLife, Price) VALUES (?, ?, ?, ?)",
				"Appel", 10, "2025-10-01", "0.50"),
		})
		if err != nil {
			t.Fatalf("failed to pre-insert product: %v", err)
		}

		products, err := NewProductRepository(db, testLogger())
		if err != nil {
			t.Fatalf("failed to create product repository: %v", err)
		}

		melk := mustProductByName(t, products, "Melk")
		if melk.ID == 1 {
			t.Fatal("expected Melk to have a shifted id")
		}

		items, err := NewGroceryListItemRepository(db, products, testLogger())
		if err != nil {
			t.Fatalf("failed to create item repository: %v", err)
		}

		assertSeedReferences(t, products, items)
	})

	t.Run("Seed references follow re-created products", func(t *testing.T) {
		db := setupTestDB(t)

		products, err := NewProductRepository(db, testLogger())
		if err != nil {
			t.Fatalf("failed to create product repository: %v", err)
		}

		melk := mustProductByName(t, products, "Melk")
		if _, err := products.Delete(melk); err != nil {
			t.Fatalf("failed to delete Melk: %v", err)
		}
		melk.ID = 0
		recreated, err := products.Add(melk)
		if err != nil {
			t.Fatalf("failed to re-add Melk: %v", err)
		}

		items, err := NewGroceryListItemRepository(db, products, testLogger())
		if err != nil {
			t.Fatalf("failed to create item repository: %v", err)
		}

		assertSeedReferences(t, products, items)

		list1, err := items.GetAllForList(1)
		if err != nil {
			t.Fatalf("failed to get list: %v", err)
		}
		found := false
		for _, item := range list1 {
			if item.ProductID == recreated.ID {
				found = true
			}
		}
		if !found {
			t.Errorf("expected list 1 to reference re-created Melk id %d", recreated.ID)
		}
	})

	t.Run("List with missing product is skipped", func(t *testing.T) {
		db := setupTestDB(t)

		products, err := NewProductRepository(db, testLogger())
		if err != nil {
			t.Fatalf("failed to create product repository: %v", err)
		}
		if _, err := products.Delete(mustProductByName(t, products, "Brood")); err != nil {
			t.Fatalf("failed to delete Brood: %v", err)
		}

		var logs bytes.Buffer
		items, err := NewGroceryListItemRepository(db, products, shared.NewLogger(&logs))
		if err != nil {
			t.Fatalf("failed to create item repository: %v", err)
		}

		list1, err := items.GetAllForList(1)
		if err != nil {
			t.Fatalf("failed to get list 1: %v", err)
		}
		if len(list1) != 0 {
			t.Errorf("expected list 1 to be skipped, got %d items", len(list1))
		}

		list2, err := items.GetAllForList(2)
		if err != nil {
			t.Fatalf("failed to get list 2: %v", err)
		}
		if len(list2) != 2 {
			t.Errorf("expected 2 items on list 2, got %d", len(list2))
		}

		if !strings.Contains(logs.String(), "skipping seed items") {
			t.Errorf("expected skipped seed to be logged, got: %s", logs.String())
		}
	})

	t.Run("Enforced foreign keys do not block bootstrap", func(t *testing.T) {
		cfg := shared.DatabaseConfig{
			Path:        filepath.Join(t.TempDir(), "grocery.db"),
			BusyTimeout: 1,
			ForeignKeys: true,
		}
		db := shared.NewConnectionManager(cfg, testLogger())

		products, err := NewProductRepository(db, testLogger())
		if err != nil {
			t.Fatalf("failed to create product repository: %v", err)
		}
		items, err := NewGroceryListItemRepository(db, products, testLogger())
		if err != nil {
			t.Fatalf("failed to create item repository: %v", err)
		}

		if got := len(mustGetAllItems(t, items)); got != 5 {
			t.Errorf("expected 5 seeded items, got %d", got)
		}
	})

	t.Run("loadSchema", func(t *testing.T) {
		for _, name := range []string{"product", "grocery_list_item"} {
			ddl, err := loadSchema(name)
			if err != nil {
				t.Fatalf("failed to load schema %s: %v", name, err)
			}
			if !strings.HasPrefix(ddl, "CREATE TABLE IF NOT EXISTS") {
				t.Errorf("expected comments stripped from %s, got %q", name, ddl)
			}
		}

		if _, err := loadSchema("missing"); err == nil {
			t.Error("expected error for unknown schema")
		}
	})
}

// assertSeedReferences checks every seeded item points at the product named in the seed data
func assertSeedReferences(t *testing.T, products *ProductRepository, items *GroceryListItemRepository) {
	t.Helper()

	for _, list := range defaultGroceryLists {
		got, err := items.GetAllForList(list.GroceryListID)
		if err != nil {
			t.Fatalf("failed to get list %d: %v", list.GroceryListID, err)
		}
		if len(got) != len(list.Items) {
			t.Fatalf("expected %d items on list %d, got %d", len(list.Items), list.GroceryListID, len(got))
		}

		for _, seed := range list.Items {
			product := mustProductByName(t, products, seed.ProductName)

			found := false
			for _, item := range got {
				if item.ProductID == product.ID {
					found = true
					if item.Amount != seed.Amount {
						t.Errorf("list %d: expected %s amount %d, got %d", list.GroceryListID, seed.ProductName, seed.Amount, item.Amount)
					}
				}
			}
			if !found {
				t.Errorf("list %d: expected item for %s (id %d)", list.GroceryListID, seed.ProductName, product.ID)
			}
		}
	}
}
