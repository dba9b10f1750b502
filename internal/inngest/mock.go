package inngest

import (
	"context"
	"net/http"
	"sync"
)

// Mock is a mock implementation of InngestClient for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	RequestReconcileFunc func(ctx context.Context, encounterID, reason string) error

	// Call records
	RequestReconcileCalls []ReconcileData
	Reconciler            Reconciler
}

var _ InngestClient = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Serve() http.Handler {
	return http.NotFoundHandler()
}

func (m *Mock) RequestReconcile(ctx context.Context, encounterID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestReconcileCalls = append(m.RequestReconcileCalls, ReconcileData{EncounterID: encounterID, Reason: reason})
	if m.RequestReconcileFunc != nil {
		return m.RequestReconcileFunc(ctx, encounterID, reason)
	}
	return nil
}

func (m *Mock) RegisterReconciler(r Reconciler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reconciler = r
}

// Calls returns a copy of the recorded RequestReconcile calls.
func (m *Mock) Calls() []ReconcileData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ReconcileData(nil), m.RequestReconcileCalls...)
}
