// Package cache provides a TTL key-value store used to avoid redundant
// provider calls. Entries are independent by key; concurrent writers race
// last-writer-wins, which is acceptable because every writer derives the same
// value for a given key.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// DefaultTTL is the staleness window applied to every entry this service
// writes.
const DefaultTTL = 24 * time.Hour

// Store is the contract the resolver and fetcher cache through. Get reports
// absent for expired entries and deletes them as a side effect of the read.
// Set overwrites unconditionally.
type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, key string, value json.RawMessage, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// GetJSON reads key and unmarshals the cached value into dest. It returns
// false when the key is absent or expired.
func GetJSON(ctx context.Context, s Store, key string, dest any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals value and writes it under key with the given TTL.
func SetJSON(ctx context.Context, s Store, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw, ttl)
}

// Entry is the persisted representation of one cached value.
type Entry struct {
	Value     json.RawMessage `json:"val"`
	ExpiresAt int64           `json:"exp"` // unix milliseconds
}

// Expired reports whether the entry's deadline has passed at now.
func (e Entry) Expired(now time.Time) bool {
	return now.UnixMilli() > e.ExpiresAt
}
