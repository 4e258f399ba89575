package phonebook

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu      sync.RWMutex
	persons []Person
}

func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) List(context.Context) ([]Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Person, len(s.persons))
	copy(out, s.persons)
	return out, nil
}

func (s *memoryStore) Add(_ context.Context, p Person) (Person, error) {
	p, err := normalize(p)
	if err != nil {
		return Person{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if containsName(s.persons, p.Name) {
		return Person{}, ErrDuplicateEntry
	}
	p.ID = uuid.NewString()
	s.persons = append(s.persons, p)
	return p, nil
}
