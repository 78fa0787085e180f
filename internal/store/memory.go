package store

// memory.go is the in-memory entity store. It mirrors the mock backend of
// the admin application: records live in process memory, IDs are UUIDs,
// and creating a second entity with the same natural key (a user's email,
// a category's name) is rejected the way a unique index would.

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/elias3446/reportes-ciudadanos/internal/schema"
	"github.com/google/uuid"
)

// MemoryStore keeps created entities in memory. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.Mutex
	entities map[schema.EntityType]map[string]map[string]schema.Value
	byKey    map[schema.EntityType]map[string]string // natural key -> id
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entities: make(map[schema.EntityType]map[string]map[string]schema.Value),
		byKey:    make(map[schema.EntityType]map[string]string),
	}
}

// Create stores a new entity and returns its generated ID. A record whose
// natural key collides with an existing entity is rejected with a message
// suitable for the per-record failure annotation.
func (s *MemoryStore) Create(ctx context.Context, entity schema.EntityType, values map[string]schema.Value) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := schema.Fields(entity); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := ""
	if kf := naturalKey(entity); kf != "" {
		key = strings.ToLower(values[kf].String())
		if key != "" {
			if _, exists := s.byKey[entity][key]; exists {
				return "", fmt.Errorf("ya existe un registro de %s con %s %q", entity, kf, values[kf].String())
			}
		}
	}

	id := uuid.New().String()

	if s.entities[entity] == nil {
		s.entities[entity] = make(map[string]map[string]schema.Value)
	}
	stored := make(map[string]schema.Value, len(values))
	for k, v := range values {
		stored[k] = v
	}
	s.entities[entity][id] = stored

	if key != "" {
		if s.byKey[entity] == nil {
			s.byKey[entity] = make(map[string]string)
		}
		s.byKey[entity][key] = id
	}

	return id, nil
}

// Get returns a stored entity by ID.
func (s *MemoryStore) Get(entity schema.EntityType, id string) (map[string]schema.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, ok := s.entities[entity][id]
	return values, ok
}

// Count returns how many entities of a type have been created.
func (s *MemoryStore) Count(entity schema.EntityType) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entities[entity])
}
