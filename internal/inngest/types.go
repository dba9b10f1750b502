package inngest

import (
	"sync"

	"github.com/inngest/inngestgo"
)

// EventReconcileRequested asks for the team counters and status of an
// encounter to be rebuilt from its matches.
const EventReconcileRequested = "encounter/reconcile.requested"

type client struct {
	inngestClient inngestgo.Client

	mu         sync.RWMutex
	reconciler Reconciler
}

// ReconcileData is the payload of EventReconcileRequested.
type ReconcileData struct {
	EncounterID string `json:"encounterId"`
	Reason      string `json:"reason,omitempty"`
}
