package loads

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dvloznov/bankview/internal/catalog"
	"github.com/dvloznov/bankview/internal/logger"
	"github.com/google/uuid"
)

// Loader builds a catalog from the configured sources.
type Loader interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (*catalog.Catalog, error)

func (f LoaderFunc) Load(ctx context.Context) (*catalog.Catalog, error) { return f(ctx) }

// State is what readers see: either a catalog or the reason there is none.
type State struct {
	Catalog *catalog.Catalog
	Err     error

	// Cycle is the applied cycle the state came from, nil before the first
	// cycle finishes.
	Cycle *Cycle
}

// Manager runs load cycles and holds the current state. Cycles may overlap;
// a finishing cycle only replaces the state when no later-started cycle has
// been applied already.
type Manager struct {
	loader Loader
	store  Store

	mu      sync.RWMutex
	seq     uint64
	applied uint64
	state   State
}

// NewManager creates a manager. Until the first cycle completes, Current
// reports ErrNoCatalog.
func NewManager(loader Loader, store Store) *Manager {
	return &Manager{
		loader: loader,
		store:  store,
		state:  State{Err: ErrNoCatalog},
	}
}

// Reload runs one load cycle to completion and returns its record. The
// returned error is the load failure, if any; the cycle is recorded either
// way.
func (m *Manager) Reload(ctx context.Context, trigger Trigger) (*Cycle, error) {
	m.mu.Lock()
	m.seq++
	cycle := &Cycle{
		ID:        uuid.New().String(),
		Seq:       m.seq,
		Trigger:   trigger,
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
	m.mu.Unlock()

	log := logger.WithFields(logger.FromContext(ctx), map[string]interface{}{
		"cycle_id": cycle.ID,
		"trigger":  string(trigger),
	})
	ctx = logger.WithContext(ctx, log)

	m.save(ctx, cycle)
	log.Info().Uint64("seq", cycle.Seq).Msg("Load cycle started")

	cat, loadErr := m.loader.Load(ctx)

	completedAt := time.Now()
	cycle.CompletedAt = &completedAt
	if loadErr != nil {
		cycle.Status = StatusFailed
		cycle.Error = loadErr.Error()
	} else {
		cycle.Status = StatusCompleted
		cat.CycleID = cycle.ID
		cat.LoadedAt = completedAt
		cycle.Clients = len(cat.Clients)
		cycle.Accounts = len(cat.Accounts)
		cycle.Branches = len(cat.Branches)
	}

	m.mu.Lock()
	if cycle.Seq > m.applied {
		m.applied = cycle.Seq
		cycle.Applied = true
		snapshot := *cycle
		if loadErr != nil {
			m.state = State{Err: fmt.Errorf("%w: %w", ErrLoadFailed, loadErr), Cycle: &snapshot}
		} else {
			m.state = State{Catalog: cat, Cycle: &snapshot}
		}
	}
	m.mu.Unlock()

	m.save(ctx, cycle)

	event := log.Info()
	if loadErr != nil {
		event = log.Error().Err(loadErr)
	}
	event.
		Str("status", string(cycle.Status)).
		Bool("applied", cycle.Applied).
		Dur("duration", cycle.Duration()).
		Msg("Load cycle finished")

	out := *cycle
	if loadErr != nil {
		return &out, fmt.Errorf("Reload: %w", loadErr)
	}
	return &out, nil
}

// Current returns the current catalog. Before any cycle has been applied
// the error is ErrNoCatalog; after a failed cycle it wraps ErrLoadFailed and
// the cause. A failed cycle discards the previous catalog.
func (m *Manager) Current() (*catalog.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Catalog, m.state.Err
}

// State returns the full current state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.state
	if s.Cycle != nil {
		c := *s.Cycle
		s.Cycle = &c
	}
	return s
}

// Store exposes the cycle history.
func (m *Manager) Store() Store {
	return m.store
}

func (m *Manager) save(ctx context.Context, cycle *Cycle) {
	if m.store == nil {
		return
	}
	if err := m.store.Save(ctx, cycle); err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Msg("Failed to record load cycle")
	}
}
