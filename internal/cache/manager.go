package cache

import (
	"log"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// entryMeta is the bookkeeping kept alongside each cached payload.
type entryMeta struct {
	Records       int
	FetchedAt     time.Time
	ExpiresAt     time.Time
	FetchDuration time.Duration
}

// EntryStats is a read-only freshness snapshot for one cache entry.
type EntryStats struct {
	Key           string    `json:"key"`
	Records       int       `json:"records"`
	FetchedAt     time.Time `json:"fetched_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	FetchDuration string    `json:"fetch_duration"`
	Expired       bool      `json:"expired"`
}

// Stats is a snapshot of the whole cache.
type Stats struct {
	Entries      int          `json:"entries"`
	TotalRecords int          `json:"total_records"`
	Details      []EntryStats `json:"details"`
}

// FetchFunc retrieves, parses and normalizes a dataset. It returns the
// payload and the number of records it holds.
type FetchFunc func() (interface{}, int, error)

// Manager is an in-memory dataset cache with per-entry TTL. Payloads are
// shared across callers and must be treated as read-only once stored.
// Construct one in main and inject it; there is no package-level instance.
type Manager struct {
	store *gocache.Cache
	group singleflight.Group

	mu   sync.RWMutex
	meta map[string]entryMeta
}

// New creates a cache manager. Entries carry their own TTLs; the janitor
// sweep only reclaims memory for entries nobody re-requests.
func New() *Manager {
	return &Manager{
		store: gocache.New(gocache.NoExpiration, 10*time.Minute),
		meta:  make(map[string]entryMeta),
	}
}

// GetOrFetch returns the cached payload for key if present and fresh.
// On a miss it runs fetchFn, stores the result with expiry now+ttl, and
// returns it. Concurrent misses for the same key share a single in-flight
// fetch. A failed fetch stores nothing; the next call retries from scratch.
func (m *Manager) GetOrFetch(key string, ttl time.Duration, fetchFn FetchFunc) (interface{}, error) {
	if payload, ok := m.lookup(key); ok {
		return payload, nil
	}

	payload, err, _ := m.group.Do(key, func() (interface{}, error) {
		// Re-check under the flight: another caller may have just stored it.
		if payload, ok := m.lookup(key); ok {
			return payload, nil
		}

		log.Printf("[CACHE] MISS %s - fetching...", key)
		start := time.Now()

		payload, records, err := fetchFn()
		if err != nil {
			return nil, err
		}

		elapsed := time.Since(start)
		m.store.Set(key, payload, ttl)
		m.mu.Lock()
		m.meta[key] = entryMeta{
			Records:       records,
			FetchedAt:     start,
			ExpiresAt:     start.Add(ttl),
			FetchDuration: elapsed,
		}
		m.mu.Unlock()

		log.Printf("[CACHE] SET %s (%d records, %v)", key, records, elapsed.Round(time.Millisecond))
		return payload, nil
	})
	return payload, err
}

func (m *Manager) lookup(key string) (interface{}, bool) {
	payload, found := m.store.Get(key)
	if !found {
		return nil, false
	}
	m.mu.RLock()
	meta, ok := m.meta[key]
	m.mu.RUnlock()
	if !ok || time.Now().After(meta.ExpiresAt) {
		return nil, false
	}
	log.Printf("[CACHE] HIT %s (%d records)", key, meta.Records)
	return payload, true
}

// Invalidate removes a single entry, forcing the next GetOrFetch to refetch.
func (m *Manager) Invalidate(key string) {
	m.store.Delete(key)
	m.mu.Lock()
	delete(m.meta, key)
	m.mu.Unlock()
	log.Printf("[CACHE] INVALIDATE %s", key)
}

// Clear removes every entry.
func (m *Manager) Clear() {
	m.store.Flush()
	m.mu.Lock()
	m.meta = make(map[string]entryMeta)
	m.mu.Unlock()
	log.Printf("[CACHE] CLEAR all entries")
}

// GetStats returns a snapshot of entry count, aggregate record count and
// per-entry freshness.
func (m *Manager) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := time.Now()
	stats := Stats{Details: make([]EntryStats, 0, len(m.meta))}
	for key, meta := range m.meta {
		if _, found := m.store.Get(key); !found {
			continue
		}
		stats.Entries++
		stats.TotalRecords += meta.Records
		stats.Details = append(stats.Details, EntryStats{
			Key:           key,
			Records:       meta.Records,
			FetchedAt:     meta.FetchedAt,
			ExpiresAt:     meta.ExpiresAt,
			FetchDuration: meta.FetchDuration.Round(time.Millisecond).String(),
			Expired:       now.After(meta.ExpiresAt),
		})
	}
	return stats
}
