package analyzer

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

// CachedFile is the serialized extraction result stored per file: the nodes
// the plugin emitted plus the symbol facts the relationship pass needs.
// Replaying it on a cache hit must be indistinguishable from re-parsing.
type CachedFile struct {
	Nodes   []graph.Node      `json:"nodes"`
	Symbols graph.FileSymbols `json:"symbols"`
}

// ParseCache is a content-addressed per-file cache backed by SQLite. Lookup
// keys are repo-relative paths; entries are invalidated by comparing the
// stored content hash against the current one.
type ParseCache struct {
	db *sql.DB
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS files (
	path    TEXT PRIMARY KEY,
	hash    TEXT NOT NULL,
	payload BLOB NOT NULL
);
`

// OpenParseCache opens (creating if needed) the cache database at path. Use
// ":memory:" for a throwaway cache.
func OpenParseCache(path string) (*ParseCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &ParseCache{db: db}, nil
}

// ContentHash returns the hex digest used to detect file changes.
func ContentHash(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached extraction for path if the stored hash matches.
func (c *ParseCache) Lookup(path, hash string) (*CachedFile, bool) {
	var storedHash string
	var payload []byte
	row := c.db.QueryRow(`SELECT hash, payload FROM files WHERE path = ?`, path)
	if err := row.Scan(&storedHash, &payload); err != nil {
		return nil, false
	}
	if storedHash != hash {
		return nil, false
	}
	var cached CachedFile
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, false // corrupt entry, treat as miss
	}
	return &cached, true
}

// Store writes or replaces the cache entry for path.
func (c *ParseCache) Store(path, hash string, entry CachedFile) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry %s: %w", path, err)
	}
	_, err = c.db.Exec(
		`INSERT INTO files (path, hash, payload) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET hash = excluded.hash, payload = excluded.payload`,
		path, hash, payload,
	)
	if err != nil {
		return fmt.Errorf("store cache entry %s: %w", path, err)
	}
	return nil
}

// Close closes the underlying database.
func (c *ParseCache) Close() error {
	return c.db.Close()
}
