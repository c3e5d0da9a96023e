// Package store persists shortest-path tables in SQLite so that a run over
// an unchanged topology can skip the cubic rebuild.
package store

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/idpnet/apsp"
)

// ErrNotFound is returned when no table is stored under a key.
var ErrNotFound = errors.New("store: path table not found")

// Entry describes one stored table.
type Entry struct {
	ID          string `db:"id" json:"id"`
	Fingerprint string `db:"fingerprint" json:"fingerprint"`
	Nodes       int    `db:"nodes" json:"nodes"`
	Bytes       int64  `db:"bytes" json:"bytes"`
	CreatedAt   int64  `db:"created_at" json:"created_at"`
}

// Created returns CreatedAt as a time.
func (e Entry) Created() time.Time { return time.Unix(e.CreatedAt, 0) }

// Store wraps a SQLite connection holding encoded path tables.
type Store struct {
	conn *sqlx.DB
	log  *slog.Logger
}

// Open opens or creates a SQLite database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn, log: logger}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS path_tables (
		id TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL UNIQUE,
		nodes INTEGER NOT NULL,
		bytes INTEGER NOT NULL,
		blob BLOB NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_path_tables_created ON path_tables(created_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Put stores t under key, replacing any previous table with that key.
func (s *Store) Put(key string, t *apsp.Table) error {
	blob, err := t.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	_, err = s.conn.Exec(`INSERT INTO path_tables (id, fingerprint, nodes, bytes, blob, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			nodes = excluded.nodes,
			bytes = excluded.bytes,
			blob = excluded.blob,
			created_at = excluded.created_at`,
		uuid.NewString(), key, t.Order(), len(blob), blob, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save table: %w", err)
	}
	s.log.Debug("path table stored", "key", ShortKey(key), "nodes", t.Order(), "size", humanize.Bytes(uint64(len(blob))))

	return nil
}

// Get loads the table stored under key and checks it has n nodes.
//
// Errors: ErrNotFound, apsp.ErrSizeMismatch / apsp.ErrFormat from decoding.
func (s *Store) Get(key string, n int) (*apsp.Table, error) {
	var blob []byte
	err := s.conn.Get(&blob, "SELECT blob FROM path_tables WHERE fingerprint = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ShortKey(key))
	}
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	t, err := apsp.Load(bytes.NewReader(blob), n)
	if err != nil {
		return nil, fmt.Errorf("decode table %s: %w", ShortKey(key), err)
	}
	s.log.Debug("path table loaded", "key", ShortKey(key), "nodes", n, "size", humanize.Bytes(uint64(len(blob))))

	return t, nil
}

// Delete removes the table stored under key.
func (s *Store) Delete(key string) error {
	res, err := s.conn.Exec("DELETE FROM path_tables WHERE fingerprint = ?", key)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, ShortKey(key))
	}

	return nil
}

// List returns every entry, newest first.
func (s *Store) List() ([]Entry, error) {
	var out []Entry
	err := s.conn.Select(&out,
		"SELECT id, fingerprint, nodes, bytes, created_at FROM path_tables ORDER BY created_at DESC, fingerprint")
	return out, err
}

// TotalBytes sums the encoded size of every stored table.
func (s *Store) TotalBytes() (int64, error) {
	var total sql.NullInt64
	err := s.conn.Get(&total, "SELECT SUM(bytes) FROM path_tables")
	return total.Int64, err
}

// ShortKey abbreviates a fingerprint for logs and listings.
func ShortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
