// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/desertthunder/grocery/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a test double for [models.ProductRepository]
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]*models.Product, error) {
	args := m.Called()
	products, _ := args.Get(0).([]*models.Product)
	return products, args.Error(1)
}

func (m *MockProductRepository) Get(id int64) (*models.Product, error) {
	args := m.Called(id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *MockProductRepository) Add(product *models.Product) (*models.Product, error) {
	args := m.Called(product)
	added, _ := args.Get(0).(*models.Product)
	return added, args.Error(1)
}

func (m *MockProductRepository) Update(product *models.Product) (*models.Product, error) {
	args := m.Called(product)
	updated, _ := args.Get(0).(*models.Product)
	return updated, args.Error(1)
}

func (m *MockProductRepository) Delete(product *models.Product) (*models.Product, error) {
	args := m.Called(product)
	deleted, _ := args.Get(0).(*models.Product)
	return deleted, args.Error(1)
}

// MockGroceryListItemRepository is a test double for [models.GroceryListItemRepository]
type MockGroceryListItemRepository struct {
	mock.Mock
}

func (m *MockGroceryListItemRepository) GetAll() ([]*models.GroceryListItem, error) {
	args := m.Called()
	items, _ := args.Get(0).([]*models.GroceryListItem)
	return items, args.Error(1)
}

func (m *MockGroceryListItemRepository) GetAllForList(groceryListID int64) ([]*models.GroceryListItem, error) {
	args := m.Called(groceryListID)
	items, _ := args.Get(0).([]*models.GroceryListItem)
	return items, args.Error(1)
}

func (m *MockGroceryListItemRepository) Get(id int64) (*models.GroceryListItem, error) {
	args := m.Called(id)
	item, _ := args.Get(0).(*models.GroceryListItem)
	return item, args.Error(1)
}

func (m *MockGroceryListItemRepository) Add(item *models.GroceryListItem) (*models.GroceryListItem, error) {
	args := m.Called(item)
	added, _ := args.Get(0).(*models.GroceryListItem)
	return added, args.Error(1)
}

func (m *MockGroceryListItemRepository) Update(item *models.GroceryListItem) (*models.GroceryListItem, error) {
	args := m.Called(item)
	updated, _ := args.Get(0).(*models.GroceryListItem)
	return updated, args.Error(1)
}

func (m *MockGroceryListItemRepository) Delete(item *models.GroceryListItem) (*models.GroceryListItem, error) {
	args := m.Called(item)
	deleted, _ := args.Get(0).(*models.GroceryListItem)
	return deleted, args.Error(1)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
