package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/grocery/internal/formatter"
	"github.com/desertthunder/grocery/internal/models"
	"github.com/desertthunder/grocery/internal/shared"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"
)

// parseID reads the positional id argument.
func parseID(cmd *cli.Command) (int64, error) {
	raw := strings.TrimSpace(cmd.StringArg("id"))
	if raw == "" {
		return 0, fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q must be a positive integer", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

// applyProductFlags copies every product flag that was set on the command onto p.
func applyProductFlags(cmd *cli.Command, p *models.Product) error {
	if cmd.IsSet("name") {
		p.Name = cmd.String("name")
	}
	if cmd.IsSet("stock") {
		p.Stock = cmd.Int("stock")
	}
	if cmd.IsSet("shelf-life") {
		shelfLife, err := models.ParseDate(cmd.String("shelf-life"))
		if err != nil {
			return fmt.Errorf("%w: shelf-life: %v", shared.ErrInvalidArgument, err)
		}
		p.ShelfLife = shelfLife
	}
	if cmd.IsSet("price") {
		price, err := decimal.NewFromString(cmd.String("price"))
		if err != nil {
			return fmt.Errorf("%w: price %q", shared.ErrInvalidArgument, cmd.String("price"))
		}
		p.Price = price
	}
	return nil
}

func (r *Runner) productByID(id int64) (*models.Product, error) {
	product, err := r.products.Get(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: id %d", shared.ErrProductNotFound, id)
	}
	return product, nil
}

func (r *Runner) writeProduct(cmd *cli.Command, verb string, p *models.Product) error {
	if cmd.Bool("json") {
		return r.writeJSON(p, cmd.Bool("pretty"))
	}
	return r.writePlain("%s product %d: %s (stock %d, shelf life %s, price %s)\n",
		verb, p.ID, p.Name, p.Stock, p.ShelfLife, p.Price.StringFixed(2))
}

// ProductList prints every product.
func (r *Runner) ProductList(ctx context.Context, cmd *cli.Command) error {
	if err := r.services(); err != nil {
		return err
	}

	products, err := r.products.GetAll()
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	switch {
	case cmd.Bool("json"):
		return r.writeJSON(products, cmd.Bool("pretty"))
	case cmd.Bool("csv"):
		data, err := formatter.ProductsToCSV(products)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	default:
		return r.writePlain("%s\n", formatter.RenderProducts(products))
	}
}

// ProductGet prints one product.
func (r *Runner) ProductGet(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}
	if err := r.services(); err != nil {
		return err
	}

	product, err := r.productByID(id)
	if err != nil {
		return err
	}
	return r.writeProduct(cmd, "Found", product)
}

// ProductAdd inserts a product built from the command flags.
func (r *Runner) ProductAdd(ctx context.Context, cmd *cli.Command) error {
	product := &models.Product{}
	if err := applyProductFlags(cmd, product); err != nil {
		return err
	}
	if err := r.services(); err != nil {
		return err
	}

	added, err := r.products.Add(product)
	if err != nil {
		return err
	}
	r.logger.Debug("product added", "id", added.ID, "name", added.Name)
	return r.writeProduct(cmd, "Added", added)
}

// ProductUpdate overwrites the fields given on the command line.
func (r *Runner) ProductUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}
	if err := r.services(); err != nil {
		return err
	}

	product, err := r.productByID(id)
	if err != nil {
		return err
	}
	if err := applyProductFlags(cmd, product); err != nil {
		return err
	}

	updated, err := r.products.Update(product)
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("%w: id %d", shared.ErrProductNotFound, id)
	}
	return r.writeProduct(cmd, "Updated", updated)
}

// ProductDelete removes a product.
func (r *Runner) ProductDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}
	if err := r.services(); err != nil {
		return err
	}

	product, err := r.productByID(id)
	if err != nil {
		return err
	}

	deleted, err := r.products.Delete(product)
	if err != nil {
		return err
	}
	if deleted == nil {
		return fmt.Errorf("%w: id %d", shared.ErrProductNotFound, id)
	}
	return r.writeProduct(cmd, "Deleted", deleted)
}
