// Package diagcache implements the on-disk diagnostic cache §4.5 calls for
// ("Errors are hashable, comparable, and serializable for on-disk caches"):
// a pure-Go SQLite table keyed by diagnostics.Error.Key(), storing each
// error's JSON rendering so a second run over an unchanged source can skip
// re-emitting diagnostics the first run already recorded.
package diagcache

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/pyscope/pyscope/internal/diagnostics"
)

// Cache is a SQLite-backed store from a diagnostic's dedup key to its JSON
// rendering.
type Cache struct {
	db *sql.DB
}

// Open creates (or opens) a SQLite database at path and ensures its schema
// exists. Pass ":memory:" for an ephemeral cache, the same convention
// modernc.org/sqlite and database/sql share for in-process use.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening diagnostic cache: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS diagnostics (
			key     TEXT PRIMARY KEY,
			code    INTEGER NOT NULL,
			payload TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating diagnostic cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Put records err's JSON rendering under its dedup key, overwriting any
// previous entry for that key (a diagnostic on the same path and line
// replaces the earlier cached one, whatever either one's code, rather than
// accumulating duplicates).
func (c *Cache) Put(err *diagnostics.Error, showErrorTraces bool) error {
	payload, marshalErr := json.Marshal(err.ToJSON(showErrorTraces))
	if marshalErr != nil {
		return fmt.Errorf("marshaling diagnostic: %w", marshalErr)
	}
	_, execErr := c.db.Exec(`
		INSERT INTO diagnostics (key, code, payload) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET code = excluded.code, payload = excluded.payload
	`, err.Key(), err.Code(), string(payload))
	if execErr != nil {
		return fmt.Errorf("storing diagnostic %s: %w", err.Key(), execErr)
	}
	return nil
}

// Get looks up the cached JSON rendering for key. ok is false when nothing
// has been cached at that key.
func (c *Cache) Get(key string) (payload diagnostics.JSON, ok bool, err error) {
	row := c.db.QueryRow(`SELECT payload FROM diagnostics WHERE key = ?`, key)
	var raw string
	switch scanErr := row.Scan(&raw); scanErr {
	case nil:
	case sql.ErrNoRows:
		return diagnostics.JSON{}, false, nil
	default:
		return diagnostics.JSON{}, false, fmt.Errorf("reading cached diagnostic %s: %w", key, scanErr)
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return diagnostics.JSON{}, false, fmt.Errorf("decoding cached diagnostic %s: %w", key, err)
	}
	return payload, true, nil
}

// Delete removes any cached entry for key. Deleting a key that was never
// cached is not an error.
func (c *Cache) Delete(key string) error {
	_, err := c.db.Exec(`DELETE FROM diagnostics WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting cached diagnostic %s: %w", key, err)
	}
	return nil
}
