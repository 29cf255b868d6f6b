package store

import (
	"context"
	"sync"

	"github.com/serroba/recipe-links/internal/shortlink"
)

// MemoryStore is an in-memory implementation of shortlink.Repository.
type MemoryStore struct {
	mu     sync.RWMutex
	links  map[shortlink.Code]shortlink.Link
	hashes map[shortlink.URLHash]shortlink.Code
}

// NewMemoryStore creates a new in-memory link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links:  make(map[shortlink.Code]shortlink.Link),
		hashes: make(map[shortlink.URLHash]shortlink.Code),
	}
}

// Insert stores link unless its code or target is already present.
func (m *MemoryStore) Insert(_ context.Context, link *shortlink.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.hashes[link.URLHash]; ok {
		return shortlink.ErrTargetTaken
	}

	if _, ok := m.links[link.Code]; ok {
		return shortlink.ErrCodeTaken
	}

	m.links[link.Code] = *link
	m.hashes[link.URLHash] = link.Code

	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code shortlink.Code) (*shortlink.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[code]
	if !ok {
		return nil, shortlink.ErrNotFound
	}

	return &link, nil
}

func (m *MemoryStore) GetByHash(_ context.Context, hash shortlink.URLHash) (*shortlink.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	code, ok := m.hashes[hash]
	if !ok {
		return nil, shortlink.ErrNotFound
	}

	link := m.links[code]

	return &link, nil
}

// Len returns the number of stored links.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.links)
}

var _ shortlink.Repository = (*MemoryStore)(nil)
