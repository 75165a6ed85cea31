package store

import "maps"

// Snapshot is an immutable view of one entity table
// A snapshot handed out by the store is never mutated afterwards
type Snapshot[K comparable, V any] struct {
	rows map[K]V
}

// Get returns the row stored under key
func (s Snapshot[K, V]) Get(key K) (V, bool) {
	v, ok := s.rows[key]
	return v, ok
}

// Len returns the number of rows
func (s Snapshot[K, V]) Len() int {
	return len(s.rows)
}

// Range calls fn for every row until fn returns false. Order is unspecified
func (s Snapshot[K, V]) Range(fn func(K, V) bool) {
	for k, v := range s.rows {
		if !fn(k, v) {
			return
		}
	}
}

// Keys returns the key set. Order is unspecified
func (s Snapshot[K, V]) Keys() []K {
	keys := make([]K, 0, len(s.rows))
	for k := range s.rows {
		keys = append(keys, k)
	}
	return keys
}

// SnapshotOf builds a snapshot from rows, copying the map
func SnapshotOf[K comparable, V any](rows map[K]V) Snapshot[K, V] {
	return Snapshot[K, V]{rows: maps.Clone(rows)}
}

// table is a copy-on-write keyed row set
type table[K comparable, V any] struct {
	rows   map[K]V
	shared bool // rows is referenced by an outstanding snapshot
}

func newTable[K comparable, V any]() *table[K, V] {
	return &table[K, V]{rows: make(map[K]V)}
}

// own clones rows if a snapshot still references them
func (t *table[K, V]) own() {
	if t.shared {
		t.rows = maps.Clone(t.rows)
		t.shared = false
	}
}

func (t *table[K, V]) upsert(key K, val V) {
	t.own()
	t.rows[key] = val
}

// remove returns false when key was absent
func (t *table[K, V]) remove(key K) bool {
	if _, ok := t.rows[key]; !ok {
		return false
	}
	t.own()
	delete(t.rows, key)
	return true
}

func (t *table[K, V]) get(key K) (V, bool) {
	v, ok := t.rows[key]
	return v, ok
}

func (t *table[K, V]) snapshot() Snapshot[K, V] {
	t.shared = true
	return Snapshot[K, V]{rows: t.rows}
}
