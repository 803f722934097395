package shared

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

const (
	// dirPermissions is the permission mode for the database directory.
	dirPermissions = 0750

	// msPerSecond converts the configured busy timeout to milliseconds.
	msPerSecond = 1000
)

// Statement is a single SQL statement together with its bound arguments.
type Statement struct {
	Query string
	Args  []any
}

// NewStatement builds a [Statement] from a query and its arguments.
func NewStatement(query string, args ...any) Statement {
	return Statement{Query: query, Args: args}
}

// ConnectionManager owns the lifecycle of native connections to a single SQLite database file.
//
// Connections are never held across calls: every [ConnectionManager.WithConnection] opens a
// fresh handle and releases it before returning. A ":memory:" path therefore yields an empty
// database on every call and is only useful inside a single [ConnectionManager.WithConnection].
type ConnectionManager struct {
	path   string
	dsn    string
	logger *log.Logger
}

// NewConnectionManager creates a ConnectionManager for the database described by cfg.
func NewConnectionManager(cfg DatabaseConfig, logger *log.Logger) *ConnectionManager {
	if logger == nil {
		logger = NewLogger(nil)
	}
	return &ConnectionManager{
		path:   cfg.Path,
		dsn:    buildDSN(cfg),
		logger: WithLogger(logger, "component", "database"),
	}
}

// buildDSN renders the mattn/go-sqlite3 connection string for cfg.
// See: https://github.com/mattn/go-sqlite3#connection-string
func buildDSN(cfg DatabaseConfig) string {
	fk := "off"
	if cfg.ForeignKeys {
		fk = "on"
	}
	return fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=%s", cfg.Path, cfg.BusyTimeout*msPerSecond, fk)
}

// Path returns the filesystem path to the database file.
func (m *ConnectionManager) Path() string {
	return m.path
}

// Open acquires one native connection, creating the database file and its directory if absent.
//
// The caller must Close the returned [Connection].
func (m *ConnectionManager) Open() (*Connection, error) {
	if dir := filepath.Dir(m.path); m.path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return nil, fmt.Errorf("%w: creating database directory: %v", ErrDatabaseUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite3", m.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", ErrDatabaseUnavailable, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx := context.Background()
	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to acquire connection: %v", ErrDatabaseUnavailable, err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		db.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %v", ErrDatabaseUnavailable, err)
	}

	id := GenerateID()
	m.logger.Debug("connection opened", "conn", id, "path", m.path)

	return &Connection{ID: id, db: db, conn: conn, logger: m.logger}, nil
}

// WithConnection opens a connection, passes it to fn and closes it on every exit path.
//
// A close failure is joined with the error returned by fn.
func (m *ConnectionManager) WithConnection(fn func(*Connection) error) (err error) {
	conn, err := m.Open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	return fn(conn)
}

// CreateTable opens a connection, executes ddl and closes the connection.
func (m *ConnectionManager) CreateTable(ddl string) error {
	return m.WithConnection(func(c *Connection) error {
		return c.CreateTable(ddl)
	})
}

// RunInTransaction opens a connection and executes stmts in a single transaction.
func (m *ConnectionManager) RunInTransaction(stmts []Statement) error {
	return m.WithConnection(func(c *Connection) error {
		return c.RunInTransaction(stmts)
	})
}

// Connection is a single native SQLite handle.
//
// Connection-scoped settings such as PRAGMA foreign_keys only apply to this handle.
type Connection struct {
	ID     string
	db     *sql.DB
	conn   *sql.Conn
	logger *log.Logger
}

// Exec executes a statement that returns no rows.
func (c *Connection) Exec(query string, args ...any) (sql.Result, error) {
	return c.conn.ExecContext(context.Background(), query, args...)
}

// Query executes a statement that returns rows. The caller must close the rows before the connection.
func (c *Connection) Query(query string, args ...any) (*sql.Rows, error) {
	return c.conn.QueryContext(context.Background(), query, args...)
}

// QueryRow executes a statement that is expected to return at most one row.
func (c *Connection) QueryRow(query string, args ...any) *sql.Row {
	return c.conn.QueryRowContext(context.Background(), query, args...)
}

// SetForeignKeys toggles referential-integrity enforcement for this connection only.
func (c *Connection) SetForeignKeys(enabled bool) error {
	value := "OFF"
	if enabled {
		value = "ON"
	}
	if _, err := c.Exec("PRAGMA foreign_keys = " + value); err != nil {
		return fmt.Errorf("failed to set foreign_keys %s: %w", value, err)
	}
	return nil
}

// ForeignKeys reports whether referential integrity is enforced on this connection.
func (c *Connection) ForeignKeys() (bool, error) {
	var enabled bool
	if err := c.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return false, fmt.Errorf("failed to read foreign_keys: %w", err)
	}
	return enabled, nil
}

// CreateTable executes a CREATE TABLE statement.
func (c *Connection) CreateTable(ddl string) error {
	if _, err := c.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// RunInTransaction executes stmts in order inside one transaction.
//
// Any failure rolls the transaction back and returns the underlying error, leaving the
// database in its pre-transaction state.
func (c *Connection) RunInTransaction(stmts []Statement) error {
	tx, err := c.conn.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range stmts {
		if _, err := tx.Exec(stmt.Query, stmt.Args...); err != nil {
			return fmt.Errorf("statement %d failed: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close releases the native handle.
func (c *Connection) Close() error {
	err := errors.Join(c.conn.Close(), c.db.Close())
	if err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	c.logger.Debug("connection closed", "conn", c.ID)
	return nil
}
