// Package remotetest runs an in-process recipe collection server for
// tests. It speaks the same wire format as the real endpoint.
package remotetest

import (
	"encoding/hex"
	"sync"

	"github.com/google/uuid"

	"github.com/hammamikhairi/ottoshelf/internal/domain"
	"github.com/hammamikhairi/ottoshelf/internal/logger"
)

// MemoryStore is the server's backing collection. Safe for concurrent
// access.
type MemoryStore struct {
	mu      sync.RWMutex
	order   []string
	recipes map[string]domain.Recipe
	log     *logger.Logger
}

// NewMemoryStore creates a store holding the given recipes. Recipes
// without an ID get one.
func NewMemoryStore(log *logger.Logger, seed ...domain.Recipe) *MemoryStore {
	s := &MemoryStore{
		recipes: make(map[string]domain.Recipe),
		log:     log,
	}
	for _, r := range seed {
		if r.ID == "" {
			r.ID = newID()
		}
		s.order = append(s.order, r.ID)
		s.recipes[r.ID] = r
	}
	s.log.Debug("remotetest: seeded %d recipes", len(seed))
	return s
}

// List returns all recipes in insertion order.
func (s *MemoryStore) List() []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Recipe, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.recipes[id])
	}
	return out
}

// Get returns a recipe by ID.
func (s *MemoryStore) Get(id string) (domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		return domain.Recipe{}, domain.ErrNotFound
	}
	return r, nil
}

// Create stores a new recipe. Names are unique.
func (s *MemoryStore) Create(d domain.Draft) (domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(d.Name, "") {
		s.log.Debug("remotetest: duplicate name %q", d.Name)
		return domain.Recipe{}, domain.ErrAlreadyExists
	}
	r := d.WithID(newID())
	s.order = append(s.order, r.ID)
	s.recipes[r.ID] = r
	s.log.Debug("remotetest: created %s (%s)", r.ID, r.Name)
	return r, nil
}

// Update replaces an existing recipe.
func (s *MemoryStore) Update(id string, d domain.Draft) (domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return domain.Recipe{}, domain.ErrNotFound
	}
	if s.nameTaken(d.Name, id) {
		return domain.Recipe{}, domain.ErrAlreadyExists
	}
	r := d.WithID(id)
	s.recipes[id] = r
	s.log.Debug("remotetest: updated %s", id)
	return r, nil
}

// Delete removes a recipe by ID.
func (s *MemoryStore) Delete(id string) (domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return domain.Recipe{}, domain.ErrNotFound
	}
	delete(s.recipes, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.log.Debug("remotetest: deleted %s", id)
	return r, nil
}

func (s *MemoryStore) nameTaken(name, except string) bool {
	for id, r := range s.recipes {
		if id != except && r.Name == name {
			return true
		}
	}
	return false
}

// newID mimics the 24-hex-digit ids of document stores.
func newID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:12])
}
