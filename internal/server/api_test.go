package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/grocery/internal/models"
	"github.com/desertthunder/grocery/internal/repositories"
	"github.com/desertthunder/grocery/internal/services"
	"github.com/desertthunder/grocery/internal/shared"
	tu "github.com/desertthunder/grocery/internal/testing"
	"github.com/shopspring/decimal"
)

func testLogger() *log.Logger {
	return shared.NewLogger(io.Discard)
}

// setupTestAPI returns an API router backed by a freshly seeded database
func setupTestAPI(t *testing.T) http.Handler {
	t.Helper()

	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "grocery.db")
	logger := testLogger()
	conns := shared.NewConnectionManager(config.Database, logger)

	products, err := repositories.NewProductRepository(conns, logger)
	if err != nil {
		t.Fatalf("failed to create product repository: %v", err)
	}
	items, err := repositories.NewGroceryListItemRepository(conns, products, logger)
	if err != nil {
		t.Fatalf("failed to create item repository: %v", err)
	}

	return NewAPI(services.NewProductService(products), services.NewGroceryListItemService(items), RequestLogger(logger), Recoverer(logger))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestProductAPI(t *testing.T) {
	api := setupTestAPI(t)

	t.Run("health", func(t *testing.T) {
		rec := do(t, api, http.MethodGet, "/health", "")
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		rec := do(t, api, http.MethodGet, "/products", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		products := decode[[]models.Product](t, rec)
		if len(products) != 4 || products[0].Name != "Melk" {
			t.Errorf("unexpected products %+v", products)
		}
	})

	t.Run("get", func(t *testing.T) {
		rec := do(t, api, http.MethodGet, "/products/2", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		product := decode[models.Product](t, rec)
		if product.Name != "Kaas" || !product.Price.Equal(decimal.RequireFromString("7.98")) {
			t.Errorf("unexpected product %+v", product)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		if rec := do(t, api, http.MethodGet, "/products/99", ""); rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("get invalid id", func(t *testing.T) {
		if rec := do(t, api, http.MethodGet, "/products/abc", ""); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("create", func(t *testing.T) {
		rec := do(t, api, http.MethodPost, "/products", `{"name":"Appel","stock":10,"shelf_life":"2025-10-01","price":"0.50"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		product := decode[models.Product](t, rec)
		if product.ID != 5 || product.Name != "Appel" {
			t.Errorf("unexpected product %+v", product)
		}
	})

	t.Run("create duplicate", func(t *testing.T) {
		rec := do(t, api, http.MethodPost, "/products", `{"name":"Melk","stock":1,"shelf_life":"2025-10-01","price":"1"}`)
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", rec.Code)
		}
		if body := decode[errorResponse](t, rec); !strings.Contains(body.Error, "product name already exists") {
			t.Errorf("unexpected error body %+v", body)
		}
	})

	t.Run("create invalid", func(t *testing.T) {
		if rec := do(t, api, http.MethodPost, "/products", `{"name":"","stock":-1}`); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if rec := do(t, api, http.MethodPost, "/products", `{"nme":"typo"}`); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for unknown field, got %d", rec.Code)
		}
	})

	t.Run("update", func(t *testing.T) {
		rec := do(t, api, http.MethodPut, "/products/3", `{"name":"Volkoren brood","stock":50,"shelf_life":"2025-09-14","price":"2.49"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		product := decode[models.Product](t, rec)
		if product.ID != 3 || product.Name != "Volkoren brood" {
			t.Errorf("unexpected product %+v", product)
		}
	})

	t.Run("update missing", func(t *testing.T) {
		rec := do(t, api, http.MethodPut, "/products/99", `{"name":"Ghost","stock":1,"shelf_life":"2025-10-01","price":"1"}`)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := do(t, api, http.MethodDelete, "/products/4", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if product := decode[models.Product](t, rec); product.Name != "Cornflakes" {
			t.Errorf("unexpected product %+v", product)
		}
		if rec := do(t, api, http.MethodDelete, "/products/4", ""); rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 on second delete, got %d", rec.Code)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		if rec := do(t, api, http.MethodPatch, "/products/1", ""); rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}

func TestItemAPI(t *testing.T) {
	api := setupTestAPI(t)

	t.Run("list all", func(t *testing.T) {
		items := decode[[]models.GroceryListItem](t, do(t, api, http.MethodGet, "/items", ""))
		if len(items) != 5 {
			t.Errorf("expected 5 items, got %d", len(items))
		}
	})

	t.Run("list by grocery list", func(t *testing.T) {
		items := decode[[]models.GroceryListItem](t, do(t, api, http.MethodGet, "/items?list=2", ""))
		if len(items) != 2 {
			t.Errorf("expected 2 items, got %d", len(items))
		}
		if rec := do(t, api, http.MethodGet, "/items?list=two", ""); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("grocery list view", func(t *testing.T) {
		rec := do(t, api, http.MethodGet, "/lists/1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		list := decode[models.GroceryList](t, rec)
		if list.ID != 1 || len(list.Lines) != 3 {
			t.Fatalf("unexpected list %+v", list)
		}
		if !list.Total().Equal(decimal.RequireFromString("19.59")) {
			t.Errorf("expected total 19.59, got %s", list.Total())
		}
	})

	t.Run("create and duplicate", func(t *testing.T) {
		rec := do(t, api, http.MethodPost, "/items", `{"grocery_list_id":2,"product_id":3,"amount":1}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if item := decode[models.GroceryListItem](t, rec); item.ID != 6 {
			t.Errorf("expected id 6, got %d", item.ID)
		}

		rec = do(t, api, http.MethodPost, "/items", `{"grocery_list_id":2,"product_id":3,"amount":2}`)
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("update", func(t *testing.T) {
		rec := do(t, api, http.MethodPut, "/items/1", `{"grocery_list_id":1,"product_id":1,"amount":9}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if item := decode[models.GroceryListItem](t, rec); item.Amount != 9 {
			t.Errorf("expected amount 9, got %d", item.Amount)
		}
	})

	t.Run("delete and get", func(t *testing.T) {
		if rec := do(t, api, http.MethodDelete, "/items/2", ""); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec := do(t, api, http.MethodGet, "/items/2", ""); rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestAPIErrors(t *testing.T) {
	products := &tu.MockProductRepository{}
	products.On("GetAll").Return(nil, shared.ErrDatabaseUnavailable)
	items := &tu.MockGroceryListItemRepository{}

	api := NewAPI(products, items)

	rec := do(t, api, http.MethodGet, "/products", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
	products.AssertExpectations(t)
}
