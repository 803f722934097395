package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/grocery/internal/formatter"
	"github.com/desertthunder/grocery/internal/models"
	"github.com/desertthunder/grocery/internal/shared"
	"github.com/urfave/cli/v3"
)

func applyItemFlags(cmd *cli.Command, item *models.GroceryListItem) {
	if cmd.IsSet("list") {
		item.GroceryListID = cmd.Int64("list")
	}
	if cmd.IsSet("product") {
		item.ProductID = cmd.Int64("product")
	}
	if cmd.IsSet("amount") {
		item.Amount = cmd.Int("amount")
	}
}

func (r *Runner) itemByID(id int64) (*models.GroceryListItem, error) {
	item, err := r.items.Get(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: id %d", shared.ErrItemNotFound, id)
	}
	return item, nil
}

func (r *Runner) writeItem(cmd *cli.Command, verb string, item *models.GroceryListItem) error {
	if cmd.Bool("json") {
		return r.writeJSON(item, cmd.Bool("pretty"))
	}
	return r.writePlain("%s item %d: list %d, product %d, amount %d\n",
		verb, item.ID, item.GroceryListID, item.ProductID, item.Amount)
}

// groceryList joins the items of one list with the current products.
func (r *Runner) groceryList(id int64) (*models.GroceryList, error) {
	items, err := r.items.GetAllForList(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	products, err := r.products.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return models.NewGroceryList(id, items, products), nil
}

// ItemList prints all items, or a single grocery list with totals when --list is given.
func (r *Runner) ItemList(ctx context.Context, cmd *cli.Command) error {
	if err := r.services(); err != nil {
		return err
	}

	if cmd.IsSet("list") {
		list, err := r.groceryList(cmd.Int64("list"))
		if err != nil {
			return err
		}
		if cmd.Bool("json") {
			return r.writeJSON(list, cmd.Bool("pretty"))
		}
		return r.writePlain("%s\n", formatter.RenderGroceryList(list))
	}

	items, err := r.items.GetAll()
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}
	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	for _, item := range items {
		if err := r.writeItem(cmd, "-", item); err != nil {
			return err
		}
	}
	return nil
}

// ItemGet prints one grocery list item.
func (r *Runner) ItemGet(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}
	if err := r.services(); err != nil {
		return err
	}

	item, err := r.itemByID(id)
	if err != nil {
		return err
	}
	return r.writeItem(cmd, "Found", item)
}

// ItemAdd puts a product on a grocery list.
func (r *Runner) ItemAdd(ctx context.Context, cmd *cli.Command) error {
	item := &models.GroceryListItem{}
	applyItemFlags(cmd, item)
	if err := r.services(); err != nil {
		return err
	}

	added, err := r.items.Add(item)
	if err != nil {
		return err
	}
	r.logger.Debug("grocery list item added", "id", added.ID)
	return r.writeItem(cmd, "Added", added)
}

// ItemUpdate overwrites the fields given on the command line.
func (r *Runner) ItemUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}
	if err := r.services(); err != nil {
		return err
	}

	item, err := r.itemByID(id)
	if err != nil {
		return err
	}
	applyItemFlags(cmd, item)

	updated, err := r.items.Update(item)
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("%w: id %d", shared.ErrItemNotFound, id)
	}
	return r.writeItem(cmd, "Updated", updated)
}

// ItemDelete removes a grocery list item.
func (r *Runner) ItemDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}
	if err := r.services(); err != nil {
		return err
	}

	item, err := r.itemByID(id)
	if err != nil {
		return err
	}

	deleted, err := r.items.Delete(item)
	if err != nil {
		return err
	}
	if deleted == nil {
		return fmt.Errorf("%w: id %d", shared.ErrItemNotFound, id)
	}
	return r.writeItem(cmd, "Deleted", deleted)
}
