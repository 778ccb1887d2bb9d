package models

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrEntryNotFound is returned when deleting a cache entry that was never populated.
var ErrEntryNotFound = fmt.Errorf("cache entry not found")

// InsightCache maps a query string to its most recent generated answer. An entry is
// filled at most once per session; re-requesting a populated query never reaches the
// remote service again. Failed computations leave the entry absent so a later attempt
// can retry.
type InsightCache struct {
	mu      sync.RWMutex
	entries map[string]string
	group   singleflight.Group
}

func NewInsightCache() *InsightCache {
	return &InsightCache{
		entries: make(map[string]string),
	}
}

// GetOrCompute returns the cached response for query, computing and storing it with
// compute if absent. Concurrent requests for the same query share a single compute
// call.
func (c *InsightCache) GetOrCompute(query string, compute func(string) (string, error)) (string, error) {
	c.mu.RLock()
	if response, ok := c.entries[query]; ok {
		c.mu.RUnlock()
		return response, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.group.Do(query, func() (interface{}, error) {
		// Re-check under the write lock path: another caller may have stored the
		// entry between the read above and this flight starting.
		c.mu.RLock()
		response, ok := c.entries[query]
		c.mu.RUnlock()
		if ok {
			return response, nil
		}

		response, err := compute(query)
		if err != nil {
			return "", err
		}

		c.mu.Lock()
		c.entries[query] = response
		c.mu.Unlock()

		return response, nil
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

// Get returns the cached response for query, if present.
func (c *InsightCache) Get(query string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	response, ok := c.entries[query]
	return response, ok
}

// Has reports whether query has a populated entry.
func (c *InsightCache) Has(query string) bool {
	_, ok := c.Get(query)
	return ok
}

// Delete removes exactly one entry. Deleting a key that was never populated returns
// ErrEntryNotFound and leaves all other entries untouched.
func (c *InsightCache) Delete(query string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[query]; !ok {
		return fmt.Errorf("%w: %q", ErrEntryNotFound, query)
	}

	delete(c.entries, query)
	return nil
}

// Clear drops every entry.
func (c *InsightCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]string)
}

// Keys returns the populated query keys in sorted order.
func (c *InsightCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

// Len returns the number of populated entries.
func (c *InsightCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
