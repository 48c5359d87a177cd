package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/xraph/relief"
	"github.com/xraph/relief/person"
	"github.com/xraph/relief/service"
	"github.com/xraph/relief/supply"
)

type Store struct {
	mu sync.RWMutex

	// Person storage, keyed by name
	persons map[string]*person.Person

	// Append-only service log
	services []service.Record

	// Supply storage, keyed by location+year
	supplies map[supplyKey]*supply.Entry
}

type supplyKey struct {
	location string
	year     int
}

func New() *Store {
	return &Store{
		persons:  make(map[string]*person.Person),
		services: make([]service.Record, 0),
		supplies: make(map[supplyKey]*supply.Entry),
	}
}

// Person Store implementation
func (s *Store) CreatePerson(_ context.Context, p *person.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.persons[p.Name]; exists {
		return relief.ErrDuplicateIdentity
	}
	s.persons[p.Name] = p
	return nil
}

func (s *Store) GetPerson(_ context.Context, name string) (*person.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.persons[name]; ok {
		return p, nil
	}
	return nil, relief.ErrPersonNotFound
}

func (s *Store) ListPersons(_ context.Context) ([]*person.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*person.Person, 0, len(s.persons))
	for _, p := range s.persons {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Service Store implementation
func (s *Store) AppendService(_ context.Context, r *service.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.services = append(s.services, *r)
	return nil
}

func (s *Store) ListServices(_ context.Context, opts service.ListOpts) ([]*service.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*service.Record, 0)
	for i := range s.services {
		r := s.services[i]
		if opts.User != "" && r.User != opts.User {
			continue
		}
		if opts.Location != "" && !strings.EqualFold(r.Location, opts.Location) {
			continue
		}
		result = append(result, &r)
	}
	return result, nil
}

// Supply Store implementation
func (s *Store) GetSupply(_ context.Context, location string, year int) (*supply.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.supplies[supplyKey{location, year}]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, relief.ErrNoSupplyRecord
}

func (s *Store) UpsertSupply(_ context.Context, e *supply.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *e
	s.supplies[supplyKey{e.Location, e.Year}] = &clone
	return nil
}

func (s *Store) UpdateSupplyGiven(_ context.Context, e *supply.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.supplies[supplyKey{e.Location, e.Year}]
	if !ok {
		return relief.ErrNoSupplyRecord
	}
	existing.GivenFood = e.GivenFood
	existing.GivenMed = e.GivenMed
	existing.UpdatedAt = e.UpdatedAt
	return nil
}

func (s *Store) ResetSupplies(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.supplies = make(map[supplyKey]*supply.Entry)
	return nil
}

// Store management
func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	return nil // Always available
}

func (s *Store) Close() error {
	return nil // Nothing to close
}
