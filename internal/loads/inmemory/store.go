// Package inmemory keeps the load-cycle history in process memory.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dvloznov/bankview/internal/loads"
)

// DefaultRetention is how many cycles NewStore keeps. A refresh schedule
// adds a cycle per tick, so history is bounded.
const DefaultRetention = 500

// Store holds cycles ordered by start sequence, newest first. Once more
// than the retention limit are held, the oldest-started cycles are
// dropped. Callers only ever see copies.
type Store struct {
	mu        sync.RWMutex
	retention int
	byID      map[string]*loads.Cycle
	order     []*loads.Cycle // Seq descending
}

// NewStore returns a store keeping the newest DefaultRetention cycles.
func NewStore() *Store {
	return NewStoreWithRetention(DefaultRetention)
}

// NewStoreWithRetention returns a store keeping the newest n cycles; n <= 0
// keeps everything.
func NewStoreWithRetention(n int) *Store {
	return &Store{
		retention: n,
		byID:      make(map[string]*loads.Cycle),
	}
}

// Save records a cycle, replacing the entry with the same ID. The manager
// saves each cycle twice: when it starts running and when it finishes.
func (s *Store) Save(ctx context.Context, cycle *loads.Cycle) error {
	if cycle.ID == "" {
		return fmt.Errorf("Save: cycle ID is required")
	}

	c := *cycle

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byID[c.ID]; ok {
		*existing = c
		return nil
	}

	s.byID[c.ID] = &c
	i := sort.Search(len(s.order), func(i int) bool { return s.order[i].Seq < c.Seq })
	s.order = append(s.order, nil)
	copy(s.order[i+1:], s.order[i:])
	s.order[i] = &c

	if s.retention > 0 && len(s.order) > s.retention {
		for _, old := range s.order[s.retention:] {
			delete(s.byID, old.ID)
		}
		s.order = s.order[:s.retention:s.retention]
	}
	return nil
}

// Get returns the cycle with the given ID, or ErrCycleNotFound if it was
// never saved or has aged out.
func (s *Store) Get(ctx context.Context, id string) (*loads.Cycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cycle, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("Get: %s: %w", id, loads.ErrCycleNotFound)
	}
	c := *cycle
	return &c, nil
}

// List returns cycles newest first. Offset and Limit apply after the status
// and applied filters.
func (s *Store) List(ctx context.Context, filter loads.Filter) ([]*loads.Cycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*loads.Cycle{}
	skip := filter.Offset
	for _, cycle := range s.order {
		if filter.Status != "" && cycle.Status != filter.Status {
			continue
		}
		if filter.AppliedOnly && !cycle.Applied {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
		c := *cycle
		result = append(result, &c)
	}
	return result, nil
}

var _ loads.Store = (*Store)(nil)
