package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/grocery/internal/formatter"
	"github.com/desertthunder/grocery/internal/models"
	"github.com/desertthunder/grocery/internal/shared"
	"github.com/desertthunder/grocery/internal/tasks"
	"github.com/urfave/cli/v3"
)

type exportFunc func(list *models.GroceryList, path string) (string, error)

var exporters = map[string]exportFunc{
	"csv":      formatter.WriteCSVExport,
	"markdown": formatter.WriteMarkdownExport,
	"md":       formatter.WriteMarkdownExport,
	"text":     formatter.WriteTextExport,
	"txt":      formatter.WriteTextExport,
}

// Export writes one grocery list, or all of them with --all, in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format := strings.ToLower(cmd.String("format"))

	if cmd.Bool("all") {
		return r.exportAll(ctx, cmd, format)
	}

	if !cmd.IsSet("list") {
		return fmt.Errorf("%w: either --list or --all must be provided", shared.ErrMissingArgument)
	}
	listID := cmd.Int64("list")
	if listID <= 0 {
		return fmt.Errorf("%w: list %d must be a positive integer", shared.ErrInvalidArgument, listID)
	}

	export, ok := exporters[format]
	if !ok {
		return fmt.Errorf("%w: format %q (want csv, markdown or text)", shared.ErrInvalidArgument, format)
	}

	if err := r.services(); err != nil {
		return err
	}

	list, err := r.groceryList(listID)
	if err != nil {
		return err
	}

	path, err := export(list, cmd.String("output"))
	if err != nil {
		return fmt.Errorf("failed to export grocery list %d: %w", listID, err)
	}

	r.logger.Info("grocery list exported", "list", listID, "format", format, "path", path)
	return r.writePlain("✓ Exported %d items to %s\n", len(list.Lines), path)
}

func (r *Runner) exportAll(ctx context.Context, cmd *cli.Command, format string) error {
	if cmd.IsSet("list") {
		return fmt.Errorf("%w: cannot specify both --list and --all", shared.ErrInvalidArgument)
	}
	switch format {
	case "md":
		format = "markdown"
	case "txt":
		format = "text"
	}

	if err := r.services(); err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase)
		}
	}()

	engine := tasks.NewExportEngine(r.products, r.items)
	result, err := engine.BulkExport(ctx, progress, tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
	})
	close(progress)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("✓ Exported %d of %d grocery lists to %s\n", result.SuccessfulExports, result.TotalLists, result.OutputDirectory)
	for _, res := range result.Results {
		if !res.Success {
			r.writePlain("✗ list %d: %s\n", res.GroceryListID, res.ErrorMessage)
		}
	}
	return r.writePlain("Manifest: %s\n", result.ManifestPath)
}
