package cache

import "database/sql"

const ddl = `
PRAGMA journal_mode=WAL;
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS files (
    path          TEXT PRIMARY KEY,
    content_hash  TEXT NOT NULL,
    mtime         INTEGER NOT NULL,
    size          INTEGER NOT NULL DEFAULT 0,
    last_accessed INTEGER NOT NULL,
    language      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS chunks (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    file_path  TEXT NOT NULL REFERENCES files(path) ON DELETE CASCADE,
    content    TEXT NOT NULL,
    start_line INTEGER NOT NULL,
    end_line   INTEGER NOT NULL,
    kind       TEXT NOT NULL DEFAULT '',
    name       TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_chunks_file_path ON chunks(file_path);
`

// initSchema creates the cache tables if they don't already exist.
func initSchema(db *sql.DB) error {
	_, err := db.Exec(ddl)
	return err
}
