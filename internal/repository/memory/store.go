// Package memory implements the repositories on top of process memory.
// State is lost on restart.
package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"helpcenter/internal/domain/models/kb"
	"helpcenter/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Store  *Store
	Logger *slog.Logger
}

// Store is the shared, concurrency-safe backing state of all repositories.
type Store struct {
	mu         sync.RWMutex
	articles   []kb.Article
	updates    []kb.UpdateEntry
	trash      []kb.TrashItem
	categories []string
	tags       []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// lock acquires the store unless ctx is already inside one of its transactions.
func (s *Store) lock(ctx context.Context, write bool) (unlock func()) {
	if owner, ok := repositories.GetTx(ctx).(*Store); ok && owner == s {
		return func() {}
	}
	if write {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

type snapshot struct {
	articles   []kb.Article
	updates    []kb.UpdateEntry
	trash      []kb.TrashItem
	categories []string
	tags       []string
}

// snapshot deep-copies the state. Caller holds the write lock.
func (s *Store) snapshot() snapshot {
	snap := snapshot{
		articles:   make([]kb.Article, len(s.articles)),
		updates:    slices.Clone(s.updates),
		trash:      make([]kb.TrashItem, len(s.trash)),
		categories: slices.Clone(s.categories),
		tags:       slices.Clone(s.tags),
	}
	for i, a := range s.articles {
		snap.articles[i] = a.Clone()
	}
	for i, t := range s.trash {
		snap.trash[i] = t.Clone()
	}
	return snap
}

// restore rolls the state back. Caller holds the write lock.
func (s *Store) restore(snap snapshot) {
	s.articles = snap.articles
	s.updates = snap.updates
	s.trash = snap.trash
	s.categories = snap.categories
	s.tags = snap.tags
}
