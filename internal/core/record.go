// Package core provides the internal implementation of mimic's mock
// construction and state engine: argument processing, call recording,
// return/panic resolution, and the function/object/class mock cores.
package core

import "fmt"

// Key identifies a slot in a record, object mock, or description.
// Valid keys are ordinary strings and *UniqueKey tokens; both are comparable
// and are enumerated, set, and reset identically.
type Key any

// UniqueKey is an opaque identity key. Two keys created by separate NewKey
// calls are never equal, even with the same description.
type UniqueKey struct {
	description string
}

// NewKey creates a new opaque unique key with a human-readable description.
func NewKey(description string) *UniqueKey {
	return &UniqueKey{description: description}
}

// String returns the key's description for diagnostics.
func (k *UniqueKey) String() string {
	return "#" + k.description
}

// Record is an insertion-ordered key/value mapping. It backs named
// args-records, mock data bags, and slot containers.
type Record struct {
	keys []Key
	vals map[Key]any
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{vals: make(map[Key]any)}
}

// Delete removes the entry for key, if present.
func (r *Record) Delete(key Key) {
	if _, ok := r.vals[key]; !ok {
		return
	}

	delete(r.vals, key)

	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)

			break
		}
	}
}

// Get returns the value for key, or nil if absent.
func (r *Record) Get(key Key) any {
	return r.vals[key]
}

// Has reports whether key is present.
func (r *Record) Has(key Key) bool {
	_, ok := r.vals[key]

	return ok
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []Key {
	out := make([]Key, len(r.keys))
	copy(out, r.keys)

	return out
}

// Len returns the number of entries.
func (r *Record) Len() int {
	return len(r.keys)
}

// Lookup returns the value for key and whether it is present.
func (r *Record) Lookup(key Key) (any, bool) {
	v, ok := r.vals[key]

	return v, ok
}

// Set stores value under key, appending the key if it is new.
func (r *Record) Set(key Key, value any) {
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}

	r.vals[key] = value
}

// keyName renders a key as a display name.
func keyName(key Key) string {
	switch k := key.(type) {
	case string:
		return k
	case *UniqueKey:
		return k.String()
	default:
		return fmt.Sprintf("%v", key)
	}
}
