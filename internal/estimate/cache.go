package estimate

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/healthy-cli/internal/provider/openfoodfacts"
)

// Cache keeps per-100g lookup results in the lookup_cache table, including
// "nothing usable" answers, until they expire.
type Cache struct {
	DB  *sql.DB
	TTL time.Duration
	Now func() time.Time
}

func (c *Cache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Cache) enabled() bool {
	return c != nil && c.DB != nil && c.TTL > 0
}

func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

// Get returns the cached item, whether it was usable, and whether a fresh
// row existed at all.
func (c *Cache) Get(provider, query string) (openfoodfacts.FoodLookup, bool, bool, error) {
	if !c.enabled() {
		return openfoodfacts.FoodLookup{}, false, false, nil
	}
	var found int
	var payload, expiresAtRaw string
	err := c.DB.QueryRow(`
SELECT found, payload_json, expires_at
FROM lookup_cache
WHERE provider = ? AND query_norm = ?
`, provider, normalizeQuery(query)).Scan(&found, &payload, &expiresAtRaw)
	if err == sql.ErrNoRows {
		return openfoodfacts.FoodLookup{}, false, false, nil
	}
	if err != nil {
		return openfoodfacts.FoodLookup{}, false, false, fmt.Errorf("lookup cache: %w", err)
	}
	expiresAt, err := time.Parse(time.RFC3339, expiresAtRaw)
	if err != nil {
		return openfoodfacts.FoodLookup{}, false, false, fmt.Errorf("parse lookup cache expiry: %w", err)
	}
	if c.now().After(expiresAt) {
		return openfoodfacts.FoodLookup{}, false, false, nil
	}
	if found == 0 {
		return openfoodfacts.FoodLookup{}, false, true, nil
	}
	var item openfoodfacts.FoodLookup
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		return openfoodfacts.FoodLookup{}, false, false, fmt.Errorf("decode lookup cache payload: %w", err)
	}
	return item, true, true, nil
}

// Put stores item, or a miss when item is nil.
func (c *Cache) Put(provider, query string, item *openfoodfacts.FoodLookup) error {
	if !c.enabled() {
		return nil
	}
	found := 0
	payload := ""
	if item != nil {
		b, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshal lookup cache payload: %w", err)
		}
		found = 1
		payload = string(b)
	}
	now := c.now()
	_, err := c.DB.Exec(`
INSERT INTO lookup_cache(provider, query_norm, found, payload_json, fetched_at, expires_at)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(provider, query_norm) DO UPDATE SET
  found=excluded.found,
  payload_json=excluded.payload_json,
  fetched_at=excluded.fetched_at,
  expires_at=excluded.expires_at
`, provider, normalizeQuery(query), found, payload, now.Format(time.RFC3339), now.Add(c.TTL).Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert lookup cache: %w", err)
	}
	return nil
}

// Purge drops expired rows and returns how many were removed.
func (c *Cache) Purge() (int64, error) {
	if c == nil || c.DB == nil {
		return 0, nil
	}
	res, err := c.DB.Exec(`DELETE FROM lookup_cache WHERE expires_at < ?`, c.now().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("purge lookup cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge lookup cache rows affected: %w", err)
	}
	return n, nil
}
