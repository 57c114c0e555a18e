// Package cache provides a generic, thread-safe LRU cache.
//
// The cache holds at most a fixed number of entries. Get and Put mark an entry
// as recently used; when Put exceeds the capacity the least recently used
// entry is dropped.
//
//	compiled := cache.NewLRUCache[[sha256.Size]byte, *schema.ObjectSchema](128)
//	if s, ok := compiled.Get(key); ok {
//		return s
//	}
//	compiled.Put(key, s)
package cache
