// Package models defines the grocery domain entities and the repository contracts that persist them.
//
// Entities:
//   - [Product] : A stocked product with a unique name, shelf life and exact decimal price
//   - [GroceryListItem] : A line on a grocery list referencing a product and a requested amount
//
// [Date] carries calendar dates without a time component and serializes to YYYY-MM-DD text.
//
// [ProductRepository] and [GroceryListItemRepository] describe the CRUD contract shared by the
// persistence layer and its service facades. Lookups, updates and deletes that match no row
// return a nil entity and a nil error.
package models
