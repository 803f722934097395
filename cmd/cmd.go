// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

func productFields(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Aliases:  []string{"n"},
			Usage:    "Product name (unique)",
			Required: required,
		},
		&cli.IntFlag{
			Name:  "stock",
			Usage: "Units in stock",
		},
		&cli.StringFlag{
			Name:     "shelf-life",
			Usage:    "Shelf life date as YYYY-MM-DD",
			Required: required,
		},
		&cli.StringFlag{
			Name:     "price",
			Usage:    "Unit price, e.g. 0.95",
			Required: required,
		},
	}
}

func itemFields(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:     "list",
			Aliases:  []string{"l"},
			Usage:    "Grocery list ID",
			Required: required,
		},
		&cli.Int64Flag{
			Name:     "product",
			Aliases:  []string{"p"},
			Usage:    "Product ID",
			Required: required,
		},
		&cli.IntFlag{
			Name:     "amount",
			Aliases:  []string{"a"},
			Usage:    "Requested amount",
			Required: required,
		},
	}
}

func idArgument() []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: "id"}}
}

// setupCommand writes the config file and initializes the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml if missing and initialize the database with seed data",
		Action: r.Setup,
	}
}

// productCommand handles product CRUD operations
func productCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "product",
		Aliases: []string{"products", "p"},
		Usage:   "Product operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all products",
				Flags: append(outputFlags(), &cli.BoolFlag{
					Name:  "csv",
					Usage: "Output CSV",
				}),
				Action: r.ProductList,
			},
			{
				Name:      "get",
				Usage:     "Show a product by ID",
				Arguments: idArgument(),
				Flags:     outputFlags(),
				Action:    r.ProductGet,
			},
			{
				Name:   "add",
				Usage:  "Add a product",
				Flags:  append(outputFlags(), productFields(true)...),
				Action: r.ProductAdd,
			},
			{
				Name:      "update",
				Usage:     "Update the given fields of a product",
				Arguments: idArgument(),
				Flags:     append(outputFlags(), productFields(false)...),
				Action:    r.ProductUpdate,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a product",
				Arguments: idArgument(),
				Flags:     outputFlags(),
				Action:    r.ProductDelete,
			},
		},
	}
}

// itemCommand handles grocery list item CRUD operations
func itemCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "item",
		Aliases: []string{"items", "i"},
		Usage:   "Grocery list item operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List grocery list items, optionally for a single list",
				Flags: append(outputFlags(), &cli.Int64Flag{
					Name:    "list",
					Aliases: []string{"l"},
					Usage:   "Only show items of this grocery list",
				}),
				Action: r.ItemList,
			},
			{
				Name:      "get",
				Usage:     "Show a grocery list item by ID",
				Arguments: idArgument(),
				Flags:     outputFlags(),
				Action:    r.ItemGet,
			},
			{
				Name:   "add",
				Usage:  "Add a product to a grocery list",
				Flags:  append(outputFlags(), itemFields(true)...),
				Action: r.ItemAdd,
			},
			{
				Name:      "update",
				Usage:     "Update the given fields of a grocery list item",
				Arguments: idArgument(),
				Flags:     append(outputFlags(), itemFields(false)...),
				Action:    r.ItemUpdate,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a grocery list item",
				Arguments: idArgument(),
				Flags:     outputFlags(),
				Action:    r.ItemDelete,
			},
		},
	}
}

// exportCommand writes a grocery list to a file
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export one or all grocery lists to CSV, Markdown, plain text or JSON",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "Grocery list ID to export",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Export every grocery list into --output as a directory",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: csv, markdown or text (json with --all)",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file (csv, text) or directory (markdown, --all)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent workers for --all",
				Value: 4,
			},
		},
		Action: r.Export,
	}
}

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve products and grocery lists over a JSON HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address",
				Value:   "127.0.0.1:8080",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Requests per second allowed across all clients (0 disables limiting)",
				Value: 20,
			},
			&cli.IntFlag{
				Name:  "burst",
				Usage: "Requests allowed in a single burst",
				Value: 40,
			},
		},
		Action: r.Serve,
	}
}
