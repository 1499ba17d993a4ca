package repository_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"grammarguide/internal/model"
	"grammarguide/internal/repository"
	"grammarguide/internal/repository/testutil"
)

func TestEntryRepository_InsertAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewEntryRepository(db)
	ctx := context.Background()

	notes := "Often used with adverbs of frequency."
	stored, err := repo.Insert(ctx, model.Entry{
		Category:   model.CategoryTense,
		Title:      "Simple Present",
		Definition: "Used for habits and general truths.",
		Examples:   []string{"I work in London.", "The sun rises in the east."},
		Notes:      &notes,
	})
	require.NoError(t, err)
	require.NotZero(t, stored.ID)
	require.False(t, stored.CreatedAt.IsZero())

	entries, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, stored.ID, entries[0].ID)
	require.Equal(t, model.CategoryTense, entries[0].Category)
	require.Equal(t, "Simple Present", entries[0].Title)
	require.Equal(t, []string{"I work in London.", "The sun rises in the east."}, entries[0].Examples)
	require.NotNil(t, entries[0].Notes)
	require.Equal(t, notes, *entries[0].Notes)
}

func TestEntryRepository_Insert_NilExamplesAndNotes(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewEntryRepository(db)
	ctx := context.Background()

	stored, err := repo.Insert(ctx, model.Entry{
		Category:   model.CategoryBeVerb,
		Title:      "Am",
		Definition: "First person singular of be.",
	})
	require.NoError(t, err)
	require.Equal(t, []string{}, stored.Examples)

	entries, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, []string{}, entries[0].Examples)
	require.Nil(t, entries[0].Notes)
}

func TestEntryRepository_ListAll_Empty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewEntryRepository(db)

	entries, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestEntryRepository_ListAll_SortedByTitle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewEntryRepository(db)

	testutil.SeedEntry(t, db, model.Entry{Title: "Simple Present"})
	testutil.SeedEntry(t, db, model.Entry{Title: "past perfect"})
	testutil.SeedEntry(t, db, model.Entry{Title: "Present Continuous"})
	testutil.SeedEntry(t, db, model.Entry{Title: "Between", Category: model.CategoryPreposition})

	entries, err := repo.ListAll(context.Background())
	require.NoError(t, err)

	var titles []string
	for _, e := range entries {
		titles = append(titles, e.Title)
	}
	require.Equal(t, []string{"Between", "past perfect", "Present Continuous", "Simple Present"}, titles)
}

func TestEntryRepository_Insert_DuplicateTitle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewEntryRepository(db)
	ctx := context.Background()

	testutil.SeedEntry(t, db, model.Entry{Title: "Simple Present"})

	_, err := repo.Insert(ctx, model.Entry{
		Category:   model.CategoryTense,
		Title:      "Simple Present",
		Definition: "Another definition.",
	})
	require.ErrorIs(t, err, repository.ErrDuplicateTitle)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestEntryRepository_Insert_TitleUniquenessIsCaseSensitive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewEntryRepository(db)
	ctx := context.Background()

	testutil.SeedEntry(t, db, model.Entry{Title: "Simple Present"})
	_, err := repo.Insert(ctx, model.Entry{Category: model.CategoryTense, Title: "simple present", Definition: "d"})
	require.NoError(t, err)
}

func TestEntryRepository_Insert_SchemaChecks(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewEntryRepository(db)
	ctx := context.Background()

	tests := []struct {
		name  string
		entry model.Entry
	}{
		{name: "unknown category", entry: model.Entry{Category: "adverb", Title: "Quickly", Definition: "d"}},
		{name: "blank title", entry: model.Entry{Category: model.CategoryTense, Title: "   ", Definition: "d"}},
		{name: "blank definition", entry: model.Entry{Category: model.CategoryTense, Title: "T", Definition: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Insert(ctx, tt.entry)
			require.ErrorIs(t, err, repository.ErrInvalidEntry)
		})
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestEntryRepository_ReplaceAll(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewEntryRepository(db)
	ctx := context.Background()

	testutil.SeedEntry(t, db, model.Entry{Title: "Old Entry"})

	inserted, err := repo.ReplaceAll(ctx, []model.Entry{
		{Category: model.CategoryTense, Title: "Simple Present", Definition: "d1"},
		{Category: model.CategoryTense, Title: "Present Continuous", Definition: "d2"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, inserted)

	entries, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "Present Continuous", entries[0].Title)
	require.Equal(t, "Simple Present", entries[1].Title)
}

func TestEntryRepository_ReplaceAll_RollsBackOnFailure(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewEntryRepository(db)
	ctx := context.Background()

	testutil.SeedEntry(t, db, model.Entry{Title: "Kept"})

	_, err := repo.ReplaceAll(ctx, []model.Entry{
		{Category: model.CategoryTense, Title: "Dup", Definition: "d"},
		{Category: model.CategoryTense, Title: "Dup", Definition: "d"},
	})
	require.ErrorIs(t, err, repository.ErrDuplicateTitle)

	entries, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Kept", entries[0].Title)
}

func TestEntryRepository_Ping(t *testing.T) {
	db := testutil.NewTestDB(t)
	require.NoError(t, repository.NewEntryRepository(db).Ping(context.Background()))
}

func newMockRepo(t *testing.T, driverName string) (repository.EntryRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return repository.NewEntryRepository(sqlx.NewDb(mockDB, driverName)), mock
}

func TestEntryRepository_Insert_PostgresDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t, "pgx")

	mock.ExpectExec(`INSERT INTO grammar_entries .* VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7\)`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.Insert(context.Background(), model.Entry{Category: model.CategoryTense, Title: "T", Definition: "d"})
	require.ErrorIs(t, err, repository.ErrDuplicateTitle)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_Insert_PostgresCheck(t *testing.T) {
	repo, mock := newMockRepo(t, "pgx")

	mock.ExpectExec(`INSERT INTO grammar_entries`).
		WillReturnError(&pgconn.PgError{Code: "23514"})

	_, err := repo.Insert(context.Background(), model.Entry{Category: "x", Title: "T", Definition: "d"})
	require.ErrorIs(t, err, repository.ErrInvalidEntry)
}

func TestEntryRepository_Insert_MySQLDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t, "mysql")

	mock.ExpectExec(`INSERT INTO grammar_entries .* VALUES \(\?, \?, \?, \?, \?, \?, \?\)`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := repo.Insert(context.Background(), model.Entry{Category: model.CategoryTense, Title: "T", Definition: "d"})
	require.ErrorIs(t, err, repository.ErrDuplicateTitle)
}

func TestEntryRepository_Insert_DataTooLong(t *testing.T) {
	tests := []struct {
		driver string
		err    error
	}{
		{driver: "mysql", err: &mysql.MySQLError{Number: 1406, Message: "Data too long for column 'title' at row 1"}},
		{driver: "pgx", err: &pgconn.PgError{Code: "22001", Message: "value too long for type character varying(255)"}},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			repo, mock := newMockRepo(t, tt.driver)

			mock.ExpectExec(`INSERT INTO grammar_entries`).WillReturnError(tt.err)

			_, err := repo.Insert(context.Background(), model.Entry{Category: model.CategoryTense, Title: strings.Repeat("a", 300), Definition: "d"})
			require.ErrorIs(t, err, repository.ErrInvalidEntry)
			require.NotErrorIs(t, err, repository.ErrDuplicateTitle)
		})
	}
}

func TestEntryRepository_Insert_OtherErrorIsNotClassified(t *testing.T) {
	repo, mock := newMockRepo(t, "pgx")

	mock.ExpectExec(`INSERT INTO grammar_entries`).WillReturnError(errors.New("connection reset"))

	_, err := repo.Insert(context.Background(), model.Entry{Category: model.CategoryTense, Title: "T", Definition: "d"})
	require.Error(t, err)
	require.NotErrorIs(t, err, repository.ErrDuplicateTitle)
	require.NotErrorIs(t, err, repository.ErrInvalidEntry)
}

func TestEntryRepository_ListAll_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t, "pgx")

	mock.ExpectQuery(`SELECT id, category, title, definition, examples, notes, created_at FROM grammar_entries`).
		WillReturnError(errors.New("boom"))

	_, err := repo.ListAll(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "list entries")
}

func TestEntryRepository_ListAll_CorruptExamples(t *testing.T) {
	repo, mock := newMockRepo(t, "pgx")

	rows := sqlmock.NewRows([]string{"id", "category", "title", "definition", "examples", "notes", "created_at"}).
		AddRow(int64(1), "tense", "T", "d", "not-json", nil, "2026-01-02T03:04:05Z")
	mock.ExpectQuery(`SELECT .* FROM grammar_entries`).WillReturnRows(rows)

	_, err := repo.ListAll(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode examples")
}
