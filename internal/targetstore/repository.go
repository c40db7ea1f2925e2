// Package targetstore archives submitted targets and their thumbnails so
// the directory of what was sent to the judges survives a bridge restart.
package targetstore

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrNotFound = errors.New("target not found")

// Record is one archived target. Image is nil when no thumbnail was
// submitted.
type Record struct {
	ID        int64
	Data      []byte
	Image     []byte
	UpdatedAt time.Time
}

type Repository interface {
	Save(ctx context.Context, id int64, data []byte) error
	SaveImage(ctx context.Context, id int64, png []byte) error
	Delete(ctx context.Context, id int64) error
	DeleteImage(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (Record, error)
	List(ctx context.Context) ([]Record, error)
}

// Schema creates the archive table.
const Schema = `
CREATE TABLE IF NOT EXISTS interop_targets (
	id         BIGINT PRIMARY KEY,
	data       JSONB NOT NULL,
	image      BYTEA,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema applies the archive schema.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}

func (r *PostgresRepository) Save(ctx context.Context, id int64, data []byte) error {
	const q = `
		INSERT INTO interop_targets (id, data)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	_, err := r.db.ExecContext(ctx, q, id, data)
	return err
}

func (r *PostgresRepository) SaveImage(ctx context.Context, id int64, png []byte) error {
	const q = `
		INSERT INTO interop_targets (id, data, image)
		VALUES ($1, '{}'::jsonb, $2)
		ON CONFLICT (id) DO UPDATE SET image = EXCLUDED.image, updated_at = now()`
	_, err := r.db.ExecContext(ctx, q, id, png)
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM interop_targets WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) DeleteImage(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE interop_targets SET image = NULL, updated_at = now() WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (Record, error) {
	const q = `SELECT id, data, image, updated_at FROM interop_targets WHERE id = $1`
	var rec Record
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rec.ID, &rec.Data, &rec.Image, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (r *PostgresRepository) List(ctx context.Context) ([]Record, error) {
	const q = `SELECT id, data, image, updated_at FROM interop_targets ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Data, &rec.Image, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
