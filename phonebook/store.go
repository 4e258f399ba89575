package phonebook

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrDuplicateEntry is returned when a person with the same name exists.
	ErrDuplicateEntry = errors.New("person already exists")
	// ErrInvalidPerson is returned for records that fail validation.
	ErrInvalidPerson = errors.New("invalid person")
)

// Store persists persons.
type Store interface {
	// List returns all persons in insertion order
	List(ctx context.Context) ([]Person, error)
	// Add inserts p and returns it with its assigned ID. A name that is
	// already present yields ErrDuplicateEntry and leaves the store unchanged.
	Add(ctx context.Context, p Person) (Person, error)
}

// SeedPersons is the initial phonebook content.
var SeedPersons = []Person{
	{Name: "Arto Hellas"},
	{Name: "Ada Lovelace"},
	{Name: "Dan Abramov"},
	{Name: "Mary Poppendieck"},
}

// Seed adds SeedPersons, skipping names that already exist.
func Seed(ctx context.Context, s Store) error {
	for _, p := range SeedPersons {
		if _, err := s.Add(ctx, p); err != nil && !errors.Is(err, ErrDuplicateEntry) {
			return err
		}
	}
	return nil
}

// Filter returns persons whose name contains query, ignoring case. An empty
// query returns every person.
func Filter(persons []Person, query string) []Person {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Person, 0, len(persons))
	for _, p := range persons {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

func containsName(persons []Person, name string) bool {
	for _, p := range persons {
		if p.Name == name {
			return true
		}
	}
	return false
}
