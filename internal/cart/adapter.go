package cart

import "sync"

// Adapter persists a cart per browsing session, the server-side counterpart
// of the browser's per-origin local storage. Load on a session with no saved
// cart returns an empty cart, not an error.
type Adapter interface {
	Load(sessionID string) (Cart, error)
	Save(sessionID string, c Cart) error
}

// MemoryAdapter keeps carts in a process-local map. Used in tests and as a
// fallback when no store is wired.
type MemoryAdapter struct {
	mu    sync.Mutex
	carts map[string]Cart
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{carts: make(map[string]Cart)}
}

func (m *MemoryAdapter) Load(sessionID string) (Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.carts[sessionID]
	// copy lines so callers never mutate the stored slice in place
	out := Cart{Items: make([]Item, len(c.Items))}
	copy(out.Items, c.Items)
	return out, nil
}

func (m *MemoryAdapter) Save(sessionID string, c Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := Cart{Items: make([]Item, len(c.Items))}
	copy(saved.Items, c.Items)
	m.carts[sessionID] = saved
	return nil
}
