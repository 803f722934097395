package repositories

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/grocery/internal/shared"
)

// Bootstrap creates one table and seeds it.
//
// Seed statements are resolved before the bootstrap connection is opened, then the table is
// created and seeded on that single connection. When RelaxForeignKeys is set, referential
// integrity is switched off for that connection only, which lets the table declare foreign keys
// to tables that do not exist yet. Later connections fall back to the configured default.
type Bootstrap struct {
	Table            string
	DDL              string
	RelaxForeignKeys bool

	// Seed returns the INSERT OR IGNORE statements for the table's canonical rows.
	// An error skips seeding; it does not fail the bootstrap.
	Seed func() ([]shared.Statement, error)
}

// Run executes the bootstrap against conns.
func (b Bootstrap) Run(conns Connector, logger *log.Logger) error {
	var seeds []shared.Statement
	if b.Seed != nil {
		stmts, err := b.Seed()
		if err != nil {
			logger.Warn("skipping seed data", "table", b.Table, "error", err)
		} else {
			seeds = stmts
		}
	}

	err := conns.WithConnection(func(c *shared.Connection) error {
		if b.RelaxForeignKeys {
			if err := c.SetForeignKeys(false); err != nil {
				return err
			}
		}

		if err := c.CreateTable(b.DDL); err != nil {
			return fmt.Errorf("failed to create %s table: %w", b.Table, err)
		}

		if len(seeds) == 0 {
			return nil
		}

		if err := c.RunInTransaction(seeds); err != nil {
			return fmt.Errorf("failed to seed %s: %w", b.Table, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Debug("table ready", "table", b.Table, "seed_statements", len(seeds))
	return nil
}
