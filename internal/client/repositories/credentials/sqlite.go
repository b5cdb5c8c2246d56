package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/visahq/visadesk/internal/client/models"
	"github.com/visahq/visadesk/internal/common"
	"github.com/visahq/visadesk/internal/dbx"
)

// SQLiteRepository stores the credential pair in a two-row key/value table.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func get(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}

// Save writes the token and the serialized user record in one transaction so
// a partial pair is never produced.
func (r *SQLiteRepository) Save(ctx context.Context, token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, common.TokenStorageKey, []byte(token)); err != nil {
			return err
		}
		return set(ctx, tx, common.UserStorageKey, data)
	})
}

// Load returns the persisted pair. Missing either entry reads as
// common.ErrorNotFound; the client only considers a session restorable when
// both are present.
func (r *SQLiteRepository) Load(ctx context.Context) (string, *models.User, error) {
	tokenRaw, err := get(ctx, r.db, common.TokenStorageKey)
	if err != nil {
		return "", nil, err
	}
	userRaw, err := get(ctx, r.db, common.UserStorageKey)
	if err != nil {
		return "", nil, err
	}
	if len(tokenRaw) == 0 || len(userRaw) == 0 {
		return "", nil, common.ErrorNotFound
	}

	var user models.User
	if err := json.Unmarshal(userRaw, &user); err != nil {
		return "", nil, fmt.Errorf("failed to deserialize user: %w", err)
	}
	return string(tokenRaw), &user, nil
}

func (r *SQLiteRepository) Token(ctx context.Context) (string, error) {
	raw, err := get(ctx, r.db, common.TokenStorageKey)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Clear removes both entries in one transaction. Deleting rows that are
// already absent is not an error.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM credentials WHERE key IN (?, ?)`,
			common.TokenStorageKey, common.UserStorageKey)
		if err != nil {
			return fmt.Errorf("failed to clear credentials: %w", err)
		}
		return nil
	})
}
