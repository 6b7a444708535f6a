package session

import "sync"

// DefaultMaxSessions bounds the number of sessions a Map keeps.
const DefaultMaxSessions = 10000

type entry[T any] struct {
	value    T
	lastUsed uint64
}

// Map 按会话标识保存状态, 首次访问时通过 newFn 创建.
// 超过容量时淘汰最久未使用的会话.
type Map[T any] struct {
	mu    sync.Mutex
	limit int
	tick  uint64
	items map[string]*entry[T]
	newFn func() T
}

// New creates a Map holding at most limit sessions. limit <= 0 uses DefaultMaxSessions.
func New[T any](limit int, newFn func() T) *Map[T] {
	if limit <= 0 {
		limit = DefaultMaxSessions
	}
	return &Map[T]{
		limit: limit,
		items: make(map[string]*entry[T]),
		newFn: newFn,
	}
}

// Get returns the state of key, creating it when absent.
func (m *Map[T]) Get(key string) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tick++
	if e, ok := m.items[key]; ok {
		e.lastUsed = m.tick
		return e.value
	}
	if len(m.items) >= m.limit {
		m.evictOldest()
	}
	e := &entry[T]{value: m.newFn(), lastUsed: m.tick}
	m.items[key] = e
	return e.value
}

// Len returns the number of sessions held.
func (m *Map[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Map[T]) evictOldest() {
	var (
		oldest     string
		oldestTick uint64
		found      bool
	)
	for k, e := range m.items {
		if !found || e.lastUsed < oldestTick {
			oldest, oldestTick, found = k, e.lastUsed, true
		}
	}
	if found {
		delete(m.items, oldest)
	}
}
