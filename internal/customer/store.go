package customer

import (
	"context"
	"sync"
)

// Store holds the registry in insertion order. Implementations serialize
// mutations so an Update cannot interleave with a Delete of the same CPF.
type Store interface {
	// List returns every record in insertion order.
	List(ctx context.Context) ([]Customer, error)
	// Get returns the first record with the given CPF or ErrNotFound.
	Get(ctx context.Context, cpf string) (*Customer, error)
	// Insert appends c. Duplicate CPFs are accepted.
	Insert(ctx context.Context, c *Customer) error
	// Update merges p into the first record with the given CPF and returns
	// the stored result, or ErrNotFound.
	Update(ctx context.Context, cpf string, p Patch) (*Customer, error)
	// Delete removes every record with the given CPF and reports how many
	// were removed.
	Delete(ctx context.Context, cpf string) (int64, error)
}

// MemoryStore keeps the registry in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	items  []Customer
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) List(_ context.Context) ([]Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Customer, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, cpf string) (*Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.index(cpf)
	if i < 0 {
		return nil, ErrNotFound
	}
	c := m.items[i]
	return &c, nil
}

func (m *MemoryStore) Insert(_ context.Context, c *Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	c.ID = m.nextID
	m.items = append(m.items, *c)
	return nil
}

func (m *MemoryStore) Update(_ context.Context, cpf string, p Patch) (*Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(cpf)
	if i < 0 {
		return nil, ErrNotFound
	}
	m.items[i] = m.items[i].Merge(p)
	c := m.items[i]
	return &c, nil
}

func (m *MemoryStore) Delete(_ context.Context, cpf string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.items[:0]
	for _, c := range m.items {
		if c.CPF != cpf {
			kept = append(kept, c)
		}
	}
	removed := int64(len(m.items) - len(kept))
	clear(m.items[len(kept):])
	m.items = kept
	return removed, nil
}

// index must be called with mu held.
func (m *MemoryStore) index(cpf string) int {
	for i := range m.items {
		if m.items[i].CPF == cpf {
			return i
		}
	}
	return -1
}
