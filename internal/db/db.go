package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

//go:embed migrations
var migrations embed.FS

// Config selects the store backend. DSN is a file path for sqlite and a
// driver connection string for postgres and mysql.
type Config struct {
	Driver string
	DSN    string
}

var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(ON)",
	"busy_timeout(30000)",
	"synchronous(NORMAL)",
}

// BuildDSN returns a sqlite DSN with pragmas embedded, so every pooled
// connection gets them and not only the first one.
func BuildDSN(path string) string {
	params := url.Values{}
	for _, pragma := range sqlitePragmas {
		params.Add("_pragma", pragma)
	}
	return "file:" + path + "?" + params.Encode()
}

// Open connects to the entry store and applies pending migrations.
func Open(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}

	var (
		conn *sql.DB
		err  error
	)
	switch driver {
	case DriverSQLite:
		conn, err = openSQLite(cfg.DSN)
	case DriverPostgres:
		conn, err = sql.Open("pgx", cfg.DSN)
	case DriverMySQL:
		conn, err = sql.Open("mysql", cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := Migrate(ctx, conn, driver); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return sqlx.NewDb(conn, bindName(driver)), nil
}

// OpenLocal opens the client's local state database (settings only).
func OpenLocal(ctx context.Context, path string) (*sqlx.DB, error) {
	conn, err := openSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open local db: %w", err)
	}
	if err := migrateDir(ctx, conn, goose.DialectSQLite3, "local"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate local schema: %w", err)
	}
	return sqlx.NewDb(conn, bindName(DriverSQLite)), nil
}

// Migrate applies the embedded migrations for the given driver.
func Migrate(ctx context.Context, conn *sql.DB, driver string) error {
	var dialect goose.Dialect
	switch driver {
	case DriverSQLite:
		dialect = goose.DialectSQLite3
	case DriverPostgres:
		dialect = goose.DialectPostgres
	case DriverMySQL:
		dialect = goose.DialectMySQL
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
	if err := migrateDir(ctx, conn, dialect, driver); err != nil {
		return fmt.Errorf("migrate %s schema: %w", driver, err)
	}
	return nil
}

func migrateDir(ctx context.Context, conn *sql.DB, dialect goose.Dialect, dir string) error {
	sub, err := fs.Sub(migrations, "migrations/"+dir)
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(dialect, conn, sub)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

func openSQLite(path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite path is empty")
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	return sql.Open("sqlite", BuildDSN(path))
}

// bindName maps a driver to the name sqlx uses to pick a placeholder style.
func bindName(driver string) string {
	switch driver {
	case DriverPostgres:
		return "pgx"
	case DriverMySQL:
		return "mysql"
	default:
		return "sqlite3"
	}
}
