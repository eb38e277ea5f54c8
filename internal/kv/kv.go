// Package kv is the ordered key-value layer under the task store.
package kv

import "errors"

// ErrKeyNotFound is returned by Get when the key has no value.
var ErrKeyNotFound = errors.New("key not found")

// Store is an ordered byte-keyed store. Every call is synchronous and
// each write is atomic for the single key it touches.
type Store interface {
	// Get returns a copy of the value stored under key, or ErrKeyNotFound.
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key []byte) error
	// DeleteRange removes every key in [start, end). A nil start begins at
	// the first key and a nil end runs to the last one.
	DeleteRange(start, end []byte) error
	// Iterate calls fn for every pair in ascending key order over a single
	// read snapshot. Returning an error from fn stops iteration.
	Iterate(fn func(key, value []byte) error) error
	Close() error
}
