package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"grammarguide/internal/model"
)

//go:generate mockgen -source=settings_repository.go -destination=mock/mock_settings_repository.go -package=mock

// SettingsRepository stores client-side key/value state.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	Set(ctx context.Context, key, value string) error
}

type settingsRepository struct {
	db dbtx
}

// NewSettingsRepository creates a settings repository on the local state database.
func NewSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves a setting by key. A missing key yields nil and no error.
func (r *settingsRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	var row struct {
		Key       string `db:"key"`
		Value     string `db:"value"`
		UpdatedAt string `db:"updated_at"`
	}
	err := sqlx.GetContext(ctx, r.db, &row, r.db.Rebind(`SELECT key, value, updated_at FROM settings WHERE key = ?`), key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get setting %s: %w", key, err)
	}

	s := model.Setting{Key: row.Key, Value: row.Value}
	s.UpdatedAt, _ = parseTime(row.UpdatedAt)
	return &s, nil
}

// Set creates or updates a setting.
func (r *settingsRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`), key, value, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}
