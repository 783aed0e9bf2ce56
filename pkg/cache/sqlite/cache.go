// Package sqlite persists answered questions so repeated questions survive
// process restarts.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pario-ai/ragchat/pkg/models"
)

// Cache is an exact-match answer cache backed by SQLite.
type Cache struct {
	db     *sql.DB
	ttl    time.Duration
	now    func() time.Time
	hits   atomic.Int64
	misses atomic.Int64
}

const createCacheTable = `
CREATE TABLE IF NOT EXISTS answer_cache (
	cache_key TEXT PRIMARY KEY,
	response BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_answer_cache_expiry ON answer_cache(expires_at);
`

// New creates a Cache with the given database path and default TTL.
func New(dbPath string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if _, err := db.Exec(createCacheTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	return &Cache{db: db, ttl: ttl, now: time.Now}, nil
}

// Get returns the cached response for key. Expired rows count as misses and
// are removed.
func (c *Cache) Get(key string) (models.SearchResponse, bool) {
	var raw []byte
	var expiresAt int64

	err := c.db.QueryRow(
		`SELECT response, expires_at FROM answer_cache WHERE cache_key = ?`, key,
	).Scan(&raw, &expiresAt)
	if err != nil {
		c.misses.Add(1)
		return models.SearchResponse{}, false
	}

	if c.now().UnixMilli() > expiresAt {
		c.misses.Add(1)
		_, _ = c.db.Exec(`DELETE FROM answer_cache WHERE cache_key = ?`, key)
		return models.SearchResponse{}, false
	}

	var resp models.SearchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.misses.Add(1)
		return models.SearchResponse{}, false
	}

	c.hits.Add(1)
	return resp, true
}

// Put stores a response under key with the default TTL.
func (c *Cache) Put(key string, resp models.SearchResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode cached response: %w", err)
	}
	now := c.now()
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO answer_cache (cache_key, response, created_at, expires_at)
		 VALUES (?, ?, ?, ?)`,
		key, data, now.UnixMilli(), now.Add(c.ttl).UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Set is Put for callers that treat the cache as best-effort.
func (c *Cache) Set(key string, resp models.SearchResponse) {
	if err := c.Put(key, resp); err != nil {
		log.Printf("answer cache: %v", err)
	}
}

// Delete removes key and reports whether it existed.
func (c *Cache) Delete(key string) bool {
	res, err := c.db.Exec(`DELETE FROM answer_cache WHERE cache_key = ?`, key)
	if err != nil {
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

// Stats returns cache performance metrics.
func (c *Cache) Stats() (models.CacheStats, error) {
	var count int64
	err := c.db.QueryRow(`SELECT COUNT(*) FROM answer_cache`).Scan(&count)
	if err != nil {
		return models.CacheStats{}, fmt.Errorf("cache stats: %w", err)
	}
	return models.CacheStats{
		Entries: count,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}, nil
}

// Clear removes cache entries. If expiredOnly is true, only expired entries
// are removed. It returns the number of rows deleted.
func (c *Cache) Clear(expiredOnly bool) (int64, error) {
	var res sql.Result
	var err error
	if expiredOnly {
		res, err = c.db.Exec(`DELETE FROM answer_cache WHERE expires_at < ?`, c.now().UnixMilli())
	} else {
		res, err = c.db.Exec(`DELETE FROM answer_cache`)
	}
	if err != nil {
		return 0, fmt.Errorf("cache clear: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}
