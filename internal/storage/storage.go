// Package storage provides the keyed-blob store that backs all persisted
// state. Each well-known key holds one serialized JSON collection; writes
// replace the whole value with last-write-wins semantics and no cross-client
// locking.
package storage

// Store is the persistence boundary for the inventory and order collections.
type Store interface {
	// Get returns the raw value stored under key, if any.
	Get(key string) (string, bool)
	// Set replaces the value stored under key in a single write.
	Set(key, value string) error
	// Remove deletes the value stored under key.
	Remove(key string) error
}
