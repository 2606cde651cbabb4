package memory

import (
	"context"
	"sync"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
)

// Store keeps the ledger in process memory. A single mutex is held for the
// whole transaction and the state is restored from a snapshot when fn fails.
type Store struct {
	mu    sync.Mutex
	state *state
}

func NewStore() *Store {
	return &Store{
		state: newState(),
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repo domain.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(ctx, &repository{state: s.state}); err != nil {
		s.state = snapshot
		return err
	}

	return nil
}

type state struct {
	medications map[string]*domain.Medication
	packages    map[string]*domain.PillPackage
	transitions map[string]*domain.PackageTransition
	intakes     map[string]*domain.Intake
	settings    *domain.Settings
}

func newState() *state {
	return &state{
		medications: make(map[string]*domain.Medication),
		packages:    make(map[string]*domain.PillPackage),
		transitions: make(map[string]*domain.PackageTransition),
		intakes:     make(map[string]*domain.Intake),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.medications {
		c.medications[k] = copyMedication(v)
	}
	for k, v := range s.packages {
		p := *v
		c.packages[k] = &p
	}
	for k, v := range s.transitions {
		t := *v
		c.transitions[k] = &t
	}
	for k, v := range s.intakes {
		i := *v
		c.intakes[k] = &i
	}
	if s.settings != nil {
		st := *s.settings
		c.settings = &st
	}
	return c
}

func copyMedication(m *domain.Medication) *domain.Medication {
	c := *m
	c.Recurrence.Anchors = append([]domain.Anchor(nil), m.Recurrence.Anchors...)
	if m.Duration.Cycles != nil {
		cycles := *m.Duration.Cycles
		c.Duration.Cycles = &cycles
	}
	return &c
}
