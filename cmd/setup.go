package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/grocery/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file when missing and bootstraps both tables.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(r.configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", r.configPath)
		if err := shared.CreateConfigFile(r.configPath); err != nil {
			r.logger.Warn("failed to create config file, using current settings", "error", err)
		} else {
			r.logger.Info("config file created", "path", r.configPath)
		}
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)
	if err := r.services(); err != nil {
		return err
	}

	products, err := r.products.GetAll()
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	items, err := r.items.GetAll()
	if err != nil {
		return fmt.Errorf("failed to count grocery list items: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return r.writePlain("✓ %d products, %d grocery list items in %s\n", len(products), len(items), r.config.Database.Path)
}
