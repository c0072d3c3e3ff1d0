package baseline

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/matzehuels/stadump/pkg/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS baselines (
	name       TEXT PRIMARY KEY,
	revision   TEXT NOT NULL,
	hash       TEXT NOT NULL,
	text       TEXT NOT NULL,
	legacy     INTEGER NOT NULL DEFAULT 0,
	sorted     INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);`

// sqliteAddSorted upgrades databases created before the sorted column existed.
const sqliteAddSorted = `ALTER TABLE baselines ADD COLUMN sorted INTEGER NOT NULL DEFAULT 0`

// SQLiteStore keeps baselines in a single SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open sqlite %s", path)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init sqlite schema")
	}
	if err := migrateSQLite(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "migrate sqlite schema")
	}
	return &SQLiteStore{db: db}, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx, `SELECT name FROM pragma_table_info('baselines')`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return err
		}
		if col == "sorted" {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()
	_, err = db.ExecContext(ctx, sqliteAddSorted)
	return err
}

// Get retrieves a baseline.
func (s *SQLiteStore) Get(ctx context.Context, name string) (*Record, error) {
	var (
		rec     Record
		created string
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT name, revision, hash, text, legacy, sorted, created_at FROM baselines WHERE name = ?`, name)
	err := row.Scan(&rec.Name, &rec.Revision, &rec.Hash, &rec.Text, &rec.Legacy, &rec.Sorted, &created)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, err
	}
	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "corrupt baseline %q", name)
	}
	return &rec, nil
}

// Put upserts a baseline.
func (s *SQLiteStore) Put(ctx context.Context, rec *Record) error {
	if err := errors.ValidateBaselineName(rec.Name); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO baselines (name, revision, hash, text, legacy, sorted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			revision = excluded.revision,
			hash = excluded.hash,
			text = excluded.text,
			legacy = excluded.legacy,
			sorted = excluded.sorted,
			created_at = excluded.created_at`,
		rec.Name, rec.Revision, rec.Hash, rec.Text, rec.Legacy, rec.Sorted, rec.CreatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// Delete removes a baseline.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM baselines WHERE name = ?`, name)
	return err
}

// List returns all names in ascending order.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM baselines ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
