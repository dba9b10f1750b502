package inngest

import (
	"context"
	"net/http"

	"github.com/mauv0809/tt-encounter/internal/encounter"
)

type InngestClient interface {
	Serve() http.Handler
	RequestReconcile(ctx context.Context, encounterID, reason string) error
	RegisterReconciler(r Reconciler)
}

// Reconciler performs the steps of the reconcile function.
type Reconciler interface {
	ReconcileTeamWins(ctx context.Context, encounterID string) (encounter.Tally, error)
	CheckEncounter(ctx context.Context, encounterID string) (*encounter.Progress, error)
}
