package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// BlobRepository stores ledger blobs as rows keyed by storage key.
type BlobRepository struct {
	db    *DB
	table string
}

func NewBlobRepository(db *DB, table string) (*BlobRepository, error) {
	if table == "" {
		table = "ledger_blobs"
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &BlobRepository{db: db, table: table}, nil
}

// EnsureSchema creates the blob table when it does not exist yet.
func (r *BlobRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, r.table)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", r.table, err)
	}
	return nil
}

func (r *BlobRepository) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var data string
	query := fmt.Sprintf(`SELECT data FROM %s WHERE key = $1`, r.table)

	err := r.db.GetContext(ctx, &data, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select blob %s: %w", key, err)
	}
	return []byte(data), true, nil
}

func (r *BlobRepository) Save(ctx context.Context, key string, data []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`, r.table)

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query, key, string(data)); err != nil {
			return fmt.Errorf("upsert blob %s: %w", key, err)
		}
		log.Debug().Str("key", key).Int("bytes", len(data)).Msg("ledger blob saved")
		return nil
	})
}

func (r *BlobRepository) Close() error {
	return r.db.Close()
}
