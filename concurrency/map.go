package concurrency

import "hash/fnv"

// DefaultShardCount is used when a Map is created with a shard count <= 0.
const DefaultShardCount = 16

// Map is a string-keyed concurrent map sharded by FNV-1a hash of the key.
// Each shard owns a plain map guarded by its own RWLock, so operations on
// keys in different shards never contend. Per-key operations are atomic
// within their shard; nothing is guaranteed across shards.
//
// Keys are Go strings and therefore copied on insert — the map never aliases
// caller-side buffers.
type Map[V any] struct {
	shards []*mapShard[V]
}

type mapShard[V any] struct {
	lock  *RWLock
	items map[string]V
}

// NewMap creates a map with the given shard count, or DefaultShardCount if
// shards <= 0. Write-heavy workloads against few distinct keys serialize on
// their shard; raise the shard count rather than piling writes onto one.
func NewMap[V any](shards int) *Map[V] {
	if shards <= 0 {
		shards = DefaultShardCount
	}
	m := &Map[V]{shards: make([]*mapShard[V], shards)}
	for i := range m.shards {
		m.shards[i] = &mapShard[V]{
			lock:  NewRWLock(),
			items: make(map[string]V),
		}
	}
	return m
}

func (m *Map[V]) shard(key string) *mapShard[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return m.shards[h.Sum32()%uint32(len(m.shards))]
}

// Put stores value under key, replacing any previous value.
func (m *Map[V]) Put(key string, value V) {
	s := m.shard(key)
	s.lock.LockWrite()
	s.items[key] = value
	s.lock.UnlockWrite()
}

// PutIfAbsent stores value under key only if the key is not already present.
// Returns true if the value was stored.
func (m *Map[V]) PutIfAbsent(key string, value V) bool {
	s := m.shard(key)
	s.lock.LockWrite()
	_, exists := s.items[key]
	if !exists {
		s.items[key] = value
	}
	s.lock.UnlockWrite()
	return !exists
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	s := m.shard(key)
	s.lock.LockRead()
	v, ok := s.items[key]
	s.lock.UnlockRead()
	return v, ok
}

// Remove deletes key, reporting whether it was present.
func (m *Map[V]) Remove(key string) bool {
	s := m.shard(key)
	s.lock.LockWrite()
	_, ok := s.items[key]
	if ok {
		delete(s.items, key)
	}
	s.lock.UnlockWrite()
	return ok
}

// Count sums the shard sizes without a global snapshot lock. The result is
// exact only in the absence of concurrent mutation; under concurrent use it
// is advisory.
func (m *Map[V]) Count() int {
	total := 0
	for _, s := range m.shards {
		s.lock.LockRead()
		total += len(s.items)
		s.lock.UnlockRead()
	}
	return total
}

// Keys returns a snapshot of all keys. Like Count, the snapshot is
// shard-by-shard, not a global freeze.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, m.Count())
	for _, s := range m.shards {
		s.lock.LockRead()
		for k := range s.items {
			keys = append(keys, k)
		}
		s.lock.UnlockRead()
	}
	return keys
}
