// Package services exposes the persistence layer to callers outside it.
//
// [ProductService] and [GroceryListItemService] forward every call to the repository they wrap
// without adding logic or validation: inputs, outputs and errors are exactly those of the
// repository. They exist so callers depend on [models.ProductRepository] and
// [models.GroceryListItemRepository] rather than on a concrete SQLite type.
//
// # Error Handling
//
// Errors come straight from the repositories:
//   - nil entity, nil error : no row with the requested id
//   - [shared.ErrDuplicateProduct] : product name already taken
//   - [shared.ErrDuplicateListItem] : product already on the grocery list
//   - [shared.ErrDatabaseUnavailable] : the database file could not be opened
package services
