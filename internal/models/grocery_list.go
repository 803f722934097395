package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GroceryListLine pairs a list item with the product it references.
//
// Product is nil when the referenced product no longer exists.
type GroceryListLine struct {
	Item    *GroceryListItem `json:"item"`
	Product *Product         `json:"product,omitempty"`
}

// ProductName returns the product's name or a placeholder for a dangling reference.
func (l GroceryListLine) ProductName() string {
	if l.Product == nil {
		return fmt.Sprintf("product #%d", l.Item.ProductID)
	}
	return l.Product.Name
}

// Total returns Price × Amount, or zero for a dangling reference.
func (l GroceryListLine) Total() decimal.Decimal {
	if l.Product == nil {
		return decimal.Zero
	}
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Item.Amount)))
}

// GroceryList is a read model of one list joined with its products
type GroceryList struct {
	ID    int64             `json:"id"`
	Lines []GroceryListLine `json:"lines"`
}

// NewGroceryList joins the items of list id with products by ProductID.
// Items belonging to other lists are ignored.
func NewGroceryList(id int64, items []*GroceryListItem, products []*Product) *GroceryList {
	byID := make(map[int64]*Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	list := &GroceryList{ID: id, Lines: []GroceryListLine{}}
	for _, item := range items {
		if item.GroceryListID != id {
			continue
		}
		list.Lines = append(list.Lines, GroceryListLine{Item: item, Product: byID[item.ProductID]})
	}
	return list
}

// Total sums the line totals.
func (g *GroceryList) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range g.Lines {
		total = total.Add(line.Total())
	}
	return total
}
