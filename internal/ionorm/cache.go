// Package ionorm rewrites node rows with canonical identities from
// the Node Normalization service, batching lookups and caching every
// outcome for the lifetime of the pipeline that owns the cache.
package ionorm

// Result is one normalization outcome returned by the service.
type Result struct {
	ID struct {
		Identifier string `json:"identifier"`
		Label      string `json:"label"`
	} `json:"id"`
	Type                  []string `json:"type"`
	EquivalentIdentifiers []struct {
		Identifier string `json:"identifier"`
	} `json:"equivalent_identifiers"`
}

// Cache maps raw identifiers to normalization results. A present key
// with a nil value is the explicit absent marker: the identifier was
// looked up and the service had nothing for it. Once a key is present
// it is never re-queried during the cache's lifetime, whether or not
// the lookup succeeded.
//
// The cache is owned by exactly one pipeline instance; there is no
// internal locking because the pipelines are single-threaded.
type Cache struct {
	m map[string]*Result
}

// NewCache creates an empty cache. Lifecycle: created per run (or per
// loader instance), grows monotonically, discarded at run end.
func NewCache() *Cache {
	return &Cache{m: make(map[string]*Result)}
}

// Has reports whether the identifier was already looked up, with
// either outcome.
func (c *Cache) Has(id string) bool {
	_, ok := c.m[id]
	return ok
}

// Get returns the cached result for the identifier. A nil result with
// ok == true means the identifier is cached as absent.
func (c *Cache) Get(id string) (*Result, bool) {
	r, ok := c.m[id]
	return r, ok
}

// Set stores a lookup outcome. A nil result records the absent marker.
func (c *Cache) Set(id string, r *Result) {
	c.m[id] = r
}

// MarkAbsent records the absent marker for every identifier, making
// the whole group sticky-failed for the cache's lifetime.
func (c *Cache) MarkAbsent(ids []string) {
	for _, id := range ids {
		c.m[id] = nil
	}
}

// Len returns the number of cached identifiers.
func (c *Cache) Len() int {
	return len(c.m)
}
