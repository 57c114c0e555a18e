package api

import (
	"crypto/sha256"

	"github.com/dmitrymomot/numstr/pkg/cache"
	"github.com/dmitrymomot/numstr/pkg/schema"
)

// DefaultSchemaCacheSize is the number of compiled inline schemas kept.
const DefaultSchemaCacheSize = 128

// schemaCache keeps compiled inline schemas keyed by the SHA-256 of their
// JSON text. A nil cache stores nothing.
type schemaCache struct {
	lru *cache.LRUCache[[sha256.Size]byte, *schema.ObjectSchema]
}

func newSchemaCache(capacity int) *schemaCache {
	if capacity <= 0 {
		return nil
	}
	return &schemaCache{lru: cache.NewLRUCache[[sha256.Size]byte, *schema.ObjectSchema](capacity)}
}

func (c *schemaCache) get(raw []byte) (*schema.ObjectSchema, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(sha256.Sum256(raw))
}

func (c *schemaCache) add(raw []byte, s *schema.ObjectSchema) {
	if c == nil {
		return
	}
	c.lru.Put(sha256.Sum256(raw), s)
}

func (c *schemaCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
