package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"grammarguide/internal/model"
	"grammarguide/internal/snowflake"
)

var (
	// ErrDuplicateTitle is returned when the title unique constraint rejects an insert.
	ErrDuplicateTitle = errors.New("duplicate title")
	// ErrInvalidEntry is returned when a schema check rejects an insert.
	ErrInvalidEntry = errors.New("invalid entry")
)

//go:generate mockgen -source=entry_repository.go -destination=mock/mock_entry_repository.go -package=mock

type EntryRepository interface {
	Insert(ctx context.Context, entry model.Entry) (model.Entry, error)
	ListAll(ctx context.Context) ([]model.Entry, error)
	Count(ctx context.Context) (int, error)
	ReplaceAll(ctx context.Context, entries []model.Entry) (int, error)
	Ping(ctx context.Context) error
}

type entryRepository struct {
	conn *sqlx.DB
	db   dbtx
}

func NewEntryRepository(conn *sqlx.DB) EntryRepository {
	return &entryRepository{conn: conn, db: conn}
}

type entryRow struct {
	ID         int64          `db:"id"`
	Category   string         `db:"category"`
	Title      string         `db:"title"`
	Definition string         `db:"definition"`
	Examples   string         `db:"examples"`
	Notes      sql.NullString `db:"notes"`
	CreatedAt  string         `db:"created_at"`
}

func (r *entryRepository) Insert(ctx context.Context, entry model.Entry) (model.Entry, error) {
	if entry.Examples == nil {
		entry.Examples = []string{}
	}
	examples, err := json.Marshal(entry.Examples)
	if err != nil {
		return model.Entry{}, fmt.Errorf("encode examples: %w", err)
	}

	id := snowflake.NextID()
	now := time.Now().UTC()
	_, err = r.db.ExecContext(
		ctx,
		r.db.Rebind(`INSERT INTO grammar_entries (id, category, title, definition, examples, notes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		id,
		string(entry.Category),
		entry.Title,
		entry.Definition,
		string(examples),
		nullableString(entry.Notes),
		formatTime(now),
	)
	if err != nil {
		if kind := classifyConstraint(err); kind != nil {
			return model.Entry{}, fmt.Errorf("insert entry: %w: %w", kind, err)
		}
		return model.Entry{}, fmt.Errorf("insert entry: %w", err)
	}

	entry.ID = id
	entry.CreatedAt = now
	return entry, nil
}

// ListAll returns every entry ordered by title, case-insensitively, with a
// case-sensitive tie-break. The collation is applied in Go so that all
// drivers agree on it.
func (r *entryRepository) ListAll(ctx context.Context) ([]model.Entry, error) {
	var rows []entryRow
	err := sqlx.SelectContext(
		ctx,
		r.db,
		&rows,
		`SELECT id, category, title, definition, examples, notes, created_at FROM grammar_entries ORDER BY title`,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	entries := make([]model.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toModel()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	slices.SortStableFunc(entries, model.CompareEntries)

	return entries, nil
}

func (r *entryRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM grammar_entries`); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

// ReplaceAll deletes every entry and inserts the given ones in a single
// transaction. It backs the seeding tool only.
func (r *entryRepository) ReplaceAll(ctx context.Context, entries []model.Entry) (int, error) {
	inserted := 0
	err := withTx(ctx, r.conn, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM grammar_entries`); err != nil {
			return fmt.Errorf("clear entries: %w", err)
		}
		txRepo := &entryRepository{conn: r.conn, db: tx}
		for _, entry := range entries {
			if _, err := txRepo.Insert(ctx, entry); err != nil {
				return fmt.Errorf("seed %q: %w", entry.Title, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *entryRepository) Ping(ctx context.Context) error {
	return r.conn.PingContext(ctx)
}

func (row entryRow) toModel() (model.Entry, error) {
	entry := model.Entry{
		ID:         row.ID,
		Category:   model.Category(row.Category),
		Title:      row.Title,
		Definition: row.Definition,
		Examples:   []string{},
	}
	if row.Examples != "" {
		if err := json.Unmarshal([]byte(row.Examples), &entry.Examples); err != nil {
			return model.Entry{}, fmt.Errorf("decode examples of entry %d: %w", row.ID, err)
		}
	}
	if row.Notes.Valid {
		notes := row.Notes.String
		entry.Notes = &notes
	}
	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return model.Entry{}, fmt.Errorf("parse entry created_at: %w", err)
	}
	entry.CreatedAt = createdAt
	return entry, nil
}

// classifyConstraint maps driver constraint violations onto ErrDuplicateTitle
// or ErrInvalidEntry. It returns nil for every other error.
func classifyConstraint(err error) error {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return ErrDuplicateTitle
		case code == sqlite3.SQLITE_CONSTRAINT_CHECK, code == sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return ErrInvalidEntry
		case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE"):
			return ErrDuplicateTitle
		case code&0xff == sqlite3.SQLITE_CONSTRAINT:
			return ErrInvalidEntry
		}
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicateTitle
		case "23514", "23502", "22001":
			return ErrInvalidEntry
		}
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1062:
			return ErrDuplicateTitle
		case 3819, 1048, 1406:
			return ErrInvalidEntry
		}
	}
	return nil
}
