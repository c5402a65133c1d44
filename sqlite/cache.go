package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/c2cgpx"
)

// DefaultTTL is how long a cached response stays valid.
const DefaultTTL = 24 * time.Hour

// Compile-time interface verification.
var _ c2cgpx.ResponseCache = (*ResponseCache)(nil)

// ResponseCache implements c2cgpx.ResponseCache using SQLite.
// Entries are keyed by the xxHash of the request key; the key itself is
// stored alongside so hash collisions read as misses.
type ResponseCache struct {
	db  *DB
	ttl time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewResponseCache creates a new ResponseCache. A ttl of zero or less keeps
// entries forever.
func NewResponseCache(db *DB, ttl time.Duration) *ResponseCache {
	return &ResponseCache{db: db, ttl: ttl, Now: time.Now}
}

// hashKey computes xxHash of key and returns it as hex.
func hashKey(key string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(key))
}

// Get returns the stored body for key.
// Returns ENOTFOUND if there is no entry or it is older than the TTL.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, error) {
	var request, storedAt string
	var body []byte

	err := c.db.QueryRowContext(ctx, `
		SELECT request, body, stored_at
		FROM responses
		WHERE key = ?
	`, hashKey(key)).Scan(&request, &body, &storedAt)

	if err == sql.ErrNoRows {
		return nil, c2cgpx.Errorf(c2cgpx.ENOTFOUND, "cache miss")
	}
	if err != nil {
		return nil, err
	}
	if request != key {
		return nil, c2cgpx.Errorf(c2cgpx.ENOTFOUND, "cache miss")
	}

	stored, err := parseRFC3339(storedAt, "stored_at")
	if err != nil {
		return nil, err
	}
	if c.ttl > 0 && c.Now().Sub(stored) >= c.ttl {
		return nil, c2cgpx.Errorf(c2cgpx.ENOTFOUND, "cache entry expired")
	}

	return body, nil
}

// Set stores body under key, replacing any previous entry.
func (c *ResponseCache) Set(ctx context.Context, key string, body []byte) error {
	if body == nil {
		body = []byte{}
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO responses (key, request, body, stored_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			request = excluded.request,
			body = excluded.body,
			stored_at = excluded.stored_at
	`, hashKey(key), key, body, formatRFC3339(c.Now()))

	return err
}

// DeleteExpired removes entries older than the TTL and returns how many
// were removed.
func (c *ResponseCache) DeleteExpired(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	cutoff := formatRFC3339(c.Now().Add(-c.ttl))

	result, err := c.db.ExecContext(ctx, `DELETE FROM responses WHERE stored_at <= ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
