// Package selection tracks the rows a user has picked for a bulk operation.
package selection

import (
	"context"
	"slices"
	"sync"
)

// Set of selected row ids. The zero value is not usable, call New.
type Set struct {
	ids map[uint]struct{}
}

// New returns a Set holding ids.
func New(ids ...uint) *Set {
	s := &Set{ids: make(map[uint]struct{}, len(ids))}
	s.SelectAll(ids)
	return s
}

// Add is a no-op for an id already present.
func (s *Set) Add(id uint) { s.ids[id] = struct{}{} }

// Remove is a no-op for an id not present.
func (s *Set) Remove(id uint) { delete(s.ids, id) }

// Toggle flips membership of id and reports whether it is now selected.
func (s *Set) Toggle(id uint) bool {
	if s.Has(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return true
}

// SelectAll adds every id in ids.
func (s *Set) SelectAll(ids []uint) {
	for _, id := range ids {
		s.Add(id)
	}
}

// Clear drops every member.
func (s *Set) Clear() { clear(s.ids) }

// Has reports whether id is selected.
func (s *Set) Has(id uint) bool {
	_, ok := s.ids[id]
	return ok
}

// Len is the number of selected ids.
func (s *Set) Len() int { return len(s.ids) }

// IDs returns the members in ascending order.
func (s *Set) IDs() []uint {
	out := make([]uint, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Store keeps one Set per user and scope (for example "courses").
type Store interface {
	Selected(ctx context.Context, userID uint, scope string) ([]uint, error)
	Add(ctx context.Context, userID uint, scope string, ids ...uint) error
	Remove(ctx context.Context, userID uint, scope string, ids ...uint) error
	Toggle(ctx context.Context, userID uint, scope string, id uint) (bool, error)
	Clear(ctx context.Context, userID uint, scope string) error
	// Replace swaps the whole selection for ids in one step; readers never
	// observe an empty set in between.
	Replace(ctx context.Context, userID uint, scope string, ids ...uint) error
}

type key struct {
	userID uint
	scope  string
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu   sync.Mutex
	sets map[key]*Set
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[key]*Set)}
}

func (m *MemoryStore) set(userID uint, scope string) *Set {
	k := key{userID, scope}
	s, ok := m.sets[k]
	if !ok {
		s = New()
		m.sets[k] = s
	}
	return s
}

func (m *MemoryStore) Selected(_ context.Context, userID uint, scope string) ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set(userID, scope).IDs(), nil
}

func (m *MemoryStore) Add(_ context.Context, userID uint, scope string, ids ...uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(userID, scope).SelectAll(ids)
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, userID uint, scope string, ids ...uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.set(userID, scope)
	for _, id := range ids {
		s.Remove(id)
	}
	return nil
}

func (m *MemoryStore) Toggle(_ context.Context, userID uint, scope string, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set(userID, scope).Toggle(id), nil
}

func (m *MemoryStore) Clear(_ context.Context, userID uint, scope string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sets, key{userID, scope})
	return nil
}

func (m *MemoryStore) Replace(_ context.Context, userID uint, scope string, ids ...uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[key{userID, scope}] = New(ids...)
	return nil
}
