// Package sqlstore implements the relational persistence layer for danceclub.
// A local sqlite file is the default store; the same repositories run on
// PostgreSQL when a database URL is configured.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/mattn/go-sqlite3"

	"github.com/baiana/danceclub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrConnectionClosed indicates the connection is closed.
	ErrConnectionClosed = errors.New("sqlstore: connection is closed")

	// ErrMigrationFailed indicates a migration failure.
	ErrMigrationFailed = errors.New("sqlstore: migration failed")

	// ErrUnsupportedDriver is returned for drivers other than sqlite and postgres.
	ErrUnsupportedDriver = errors.New("sqlstore: unsupported driver")
)

// ══════════════════════════════════════════════════════════════════════════════
// CONNECTION
// ══════════════════════════════════════════════════════════════════════════════

// Dialect identifies the SQL flavour behind a Connection.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Config holds datastore connection configuration.
type Config struct {
	// Driver is "sqlite" or "postgres".
	Driver string

	// Path is the sqlite database file. ":memory:" is accepted for tests.
	Path string

	// URL is the postgres connection string.
	URL string

	// BusyTimeout is passed to sqlite as _busy_timeout.
	BusyTimeout time.Duration

	// ConnMaxLifetime recycles the connection; zero keeps it for the process lifetime.
	ConnMaxLifetime time.Duration

	// LogQueries logs every statement at debug level.
	LogQueries bool
}

// DefaultConfig returns a sqlite configuration for the given file.
func DefaultConfig(path string) Config {
	return Config{
		Driver:      string(DialectSQLite),
		Path:        path,
		BusyTimeout: 5 * time.Second,
	}
}

// Dialect returns the SQL dialect for the configured driver.
func (c Config) Dialect() (Dialect, error) {
	switch strings.ToLower(c.Driver) {
	case "", "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Driver)
	}
}

// DSN returns the data source name for database/sql.
func (c Config) DSN() string {
	d, _ := c.Dialect()
	if d == DialectPostgres {
		return c.URL
	}

	params := url.Values{}
	params.Set("_foreign_keys", "on")
	if c.BusyTimeout > 0 {
		params.Set("_busy_timeout", strconv.FormatInt(c.BusyTimeout.Milliseconds(), 10))
	}
	return "file:" + c.Path + "?" + params.Encode()
}

// sqliteDriver is go-sqlite3 with LOWER replaced by a Unicode-aware version,
// so the case-insensitive unique indexes and searches fold "Ã" like "ã".
const sqliteDriver = "sqlite3_danceclub"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", unicodeLower, true)
		},
	})
}

// unicodeLower lowercases text values and passes NULL and numbers through.
// go-sqlite3 hands NULL to generic functions as a nil []byte.
func unicodeLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		if s == nil {
			return nil
		}
		return []byte(strings.ToLower(string(s)))
	default:
		return v
	}
}

func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return sqliteDriver
}

// Connection wraps the single *sql.DB used for the process lifetime.
type Connection struct {
	db      *sql.DB
	dialect Dialect
	config  Config
	log     *logger.Logger
	closed  bool
	mu      sync.RWMutex
}

// NewConnection opens the datastore, enables foreign keys and pings it.
func NewConnection(ctx context.Context, cfg Config, log *logger.Logger) (*Connection, error) {
	dialect, err := cfg.Dialect()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	db, err := sql.Open(dialect.driverName(), cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("sqlstore: failed to open database: %w", err)
	}

	// Single-user console: one connection, never shared.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: failed to ping database: %w", err)
	}

	if dialect == DialectSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlstore: failed to enable foreign keys: %w", err)
		}
	}

	return &Connection{
		db:      db,
		dialect: dialect,
		config:  cfg,
		log:     log.With(logger.Component("sqlstore")),
	}, nil
}

// DB returns the underlying handle.
func (c *Connection) DB() *sql.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// Dialect returns the SQL dialect of the connection.
func (c *Connection) Dialect() Dialect {
	return c.dialect
}

// Close closes the connection.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	return c.db.Close()
}

// IsClosed returns true if the connection is closed.
func (c *Connection) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Ping checks if the database connection is alive.
func (c *Connection) Ping(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrConnectionClosed
	}

	return c.db.PingContext(ctx)
}

// ══════════════════════════════════════════════════════════════════════════════
// TRANSACTION SUPPORT
// Only schema migrations run inside a transaction; everything else autocommits.
// ══════════════════════════════════════════════════════════════════════════════

// WithTx executes a function within a transaction.
// The transaction is committed if the function returns nil, rolled back otherwise.
func (c *Connection) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return ErrConnectionClosed
	}
	db := c.db
	c.mu.RUnlock()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit error: %w", err)
	}

	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// QUERY HELPERS
// Queries are written with "?" placeholders and rebound per dialect.
// ══════════════════════════════════════════════════════════════════════════════

// Querier is an interface that both *sql.DB and *sql.Tx implement.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Exec executes a query that doesn't return rows.
func (c *Connection) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrConnectionClosed
	}

	defer c.trace(query, time.Now())
	return c.db.ExecContext(ctx, c.Rebind(query), args...)
}

// Query executes a query that returns rows.
func (c *Connection) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrConnectionClosed
	}

	defer c.trace(query, time.Now())
	return c.db.QueryContext(ctx, c.Rebind(query), args...)
}

// QueryRow executes a query that returns a single row.
func (c *Connection) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	c.mu.RLock()
	defer c.mu.RUnlock()

	defer c.trace(query, time.Now())
	return c.db.QueryRowContext(ctx, c.Rebind(query), args...)
}

// Rebind converts "?" placeholders to "$n" for postgres.
func (c *Connection) Rebind(query string) string {
	if c.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (c *Connection) trace(query string, start time.Time) {
	if !c.config.LogQueries {
		return
	}
	c.log.Debug("query",
		logger.String("sql", strings.Join(strings.Fields(query), " ")),
		logger.Latency(time.Since(start)),
	)
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// IsUniqueViolation checks if the error is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// IsForeignKeyViolation checks if the error is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

// IsNoRows checks if the error is a "no rows" error.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// likePattern builds a case-insensitive "contains" pattern, escaping wildcards.
// Use with: LOWER(col) LIKE ? ESCAPE '\'. Both sides fold Unicode case.
func likePattern(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(query))) + "%"
}

// dateArg renders a day in the form stored in DATE columns.
func dateArg(t time.Time) string {
	return t.Format("2006-01-02")
}

// dateFrom normalizes a scanned DATE to midnight UTC.
func dateFrom(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// nullID maps the zero ID to SQL NULL.
func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id > 0}
}

// rowsAffected returns an error for a zero-row update/delete.
func rowsAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
