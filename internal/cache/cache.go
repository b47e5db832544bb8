// Package cache persists (file identity, chunk list) pairs so repeated
// runs against an unchanged file skip re-chunking. It owns exactly one
// SQLite database per run; the caller opens it once and closes it once.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ttl is how long a file row survives without being accessed before
// Prune removes it (and, by cascade, its chunks).
const ttl = 30 * 24 * time.Hour

// Cache is the chunk cache backing store.
type Cache struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at dbPath and initializes its
// schema. Only one session should hold a given dbPath open at a time.
func Open(dbPath string) (*Cache, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// HasFreshChunks reports whether a files row exists for path with
// mtime >= the given mtime, and at least one chunk row exists for it.
// Freshness is gated on mtime alone — the stored content hash is not
// consulted on read, a deliberate speed/simplicity trade (see §9/open
// questions). On a hit, last_accessed is bumped to now.
func (c *Cache) HasFreshChunks(path string, mtime time.Time) (bool, error) {
	var storedMtime int64
	err := c.db.QueryRow(`SELECT mtime FROM files WHERE path = ?`, path).Scan(&storedMtime)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query file row: %w", err)
	}
	if storedMtime < mtime.Unix() {
		return false, nil
	}

	var chunkCount int
	err = c.db.QueryRow(`SELECT COUNT(1) FROM chunks WHERE file_path = ?`, path).Scan(&chunkCount)
	if err != nil {
		return false, fmt.Errorf("count chunk rows: %w", err)
	}
	if chunkCount == 0 {
		return false, nil
	}

	if _, err := c.db.Exec(`UPDATE files SET last_accessed = ? WHERE path = ?`, time.Now().Unix(), path); err != nil {
		return false, fmt.Errorf("bump last_accessed: %w", err)
	}
	return true, nil
}

// GetChunks returns the persisted chunk rows for path, in no particular
// order (the caller re-sorts by start line).
func (c *Cache) GetChunks(path string) ([]ChunkRow, error) {
	rows, err := c.db.Query(
		`SELECT content, start_line, end_line, kind, name FROM chunks WHERE file_path = ?`,
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer rows.Close()

	var out []ChunkRow
	for rows.Next() {
		var r ChunkRow
		if err := rows.Scan(&r.Content, &r.StartLine, &r.EndLine, &r.Kind, &r.Name); err != nil {
			return nil, fmt.Errorf("scan chunk row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PutFile upserts the files row for path, computing its content hash.
func (c *Cache) PutFile(path, content string, mtime time.Time, language string) error {
	hash := sha256.Sum256([]byte(content))
	now := time.Now().Unix()
	_, err := c.db.Exec(`
		INSERT INTO files (path, content_hash, mtime, size, last_accessed, language)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			content_hash = excluded.content_hash,
			mtime = excluded.mtime,
			size = excluded.size,
			last_accessed = excluded.last_accessed,
			language = excluded.language
	`, path, hex.EncodeToString(hash[:]), mtime.Unix(), len(content), now, language)
	if err != nil {
		return fmt.Errorf("upsert file row: %w", err)
	}
	return nil
}

// PutChunks replaces all chunk rows for path atomically.
func (c *Cache) PutChunks(path string, chunks []ChunkRow) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM chunks WHERE file_path = ?`, path); err != nil {
		return fmt.Errorf("delete old chunks: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO chunks (file_path, content, start_line, end_line, kind, name)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, ch := range chunks {
		if _, err := stmt.Exec(path, ch.Content, ch.StartLine, ch.EndLine, ch.Kind, ch.Name); err != nil {
			return fmt.Errorf("insert chunk row: %w", err)
		}
	}

	return tx.Commit()
}

// Prune deletes files rows whose last_accessed predates the TTL,
// cascading to their chunks. Calling it twice in succession is a no-op.
func (c *Cache) Prune() error {
	cutoff := time.Now().Add(-ttl).Unix()
	_, err := c.db.Exec(`DELETE FROM files WHERE last_accessed < ?`, cutoff)
	if err != nil {
		return fmt.Errorf("prune stale files: %w", err)
	}
	return nil
}

// Clear empties both relations.
func (c *Cache) Clear() error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM chunks`); err != nil {
		return fmt.Errorf("clear chunks: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM files`); err != nil {
		return fmt.Errorf("clear files: %w", err)
	}
	return tx.Commit()
}
