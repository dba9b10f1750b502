package encounter

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/mauv0809/tt-encounter/internal/match"
)

// ErrMockNotFound is returned by MockStore for unknown ids.
var ErrMockNotFound = errors.New("not found")

// MockStore is an in-memory Store for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	Encounters map[string]*Encounter
	Matches    map[string]*match.Match

	// Spies for method calls
	CancelWaitingMatchFunc    func(matchID string) error
	UpdateEncounterStatusFunc func(encounterID string, status Status) error

	// Call records
	CancelWaitingMatchCalls    []string
	UpdateEncounterStatusCalls []struct {
		EncounterID string
		Status      Status
	}
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		Encounters: make(map[string]*Encounter),
		Matches:    make(map[string]*match.Match),
	}
}

// Put stores copies of the given encounter and matches.
func (m *MockStore) Put(enc Encounter, matches ...match.Match) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Encounters[enc.ID] = &enc
	for i := range matches {
		mm := matches[i]
		m.Matches[mm.ID] = &mm
	}
}

// Match returns a copy of the stored match.
func (m *MockStore) Match(id string) match.Match {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.Matches[id]
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancelWaitingMatchCalls = nil
	m.UpdateEncounterStatusCalls = nil
}

func (m *MockStore) GetEncounter(ctx context.Context, encounterID string) (*Encounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	enc, ok := m.Encounters[encounterID]
	if !ok {
		return nil, ErrMockNotFound
	}
	cp := *enc
	return &cp, nil
}

func (m *MockStore) GetMatches(ctx context.Context, encounterID string) ([]match.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []match.Match
	for _, mm := range m.Matches {
		if mm.EncounterID == encounterID {
			out = append(out, *mm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchNumber < out[j].MatchNumber })
	return out, nil
}

func (m *MockStore) CancelWaitingMatch(ctx context.Context, matchID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancelWaitingMatchCalls = append(m.CancelWaitingMatchCalls, matchID)
	if m.CancelWaitingMatchFunc != nil {
		if err := m.CancelWaitingMatchFunc(matchID); err != nil {
			return err
		}
	}
	mm, ok := m.Matches[matchID]
	if !ok {
		return ErrMockNotFound
	}
	if mm.Status == match.StatusWaiting {
		mm.Status = match.StatusCancelled
	}
	return nil
}

func (m *MockStore) UpdateEncounterStatus(ctx context.Context, encounterID string, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateEncounterStatusCalls = append(m.UpdateEncounterStatusCalls, struct {
		EncounterID string
		Status      Status
	}{encounterID, status})
	if m.UpdateEncounterStatusFunc != nil {
		if err := m.UpdateEncounterStatusFunc(encounterID, status); err != nil {
			return err
		}
	}
	enc, ok := m.Encounters[encounterID]
	if !ok {
		return ErrMockNotFound
	}
	enc.Status = status
	return nil
}
