package inngest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"
	"github.com/mauv0809/tt-encounter/internal/encounter"
)

var errNoReconciler = errors.New("no reconciler registered")

// New registers the reconcile function on inngestClient.
func New(inngestClient inngestgo.Client) InngestClient {
	c := &client{
		inngestClient: inngestClient,
	}
	c.createReconcileFunction()
	return c
}

// RegisterReconciler sets the component the reconcile steps run against.
func (i *client) RegisterReconciler(r Reconciler) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.reconciler = r
}

func (i *client) getReconciler() (Reconciler, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.reconciler == nil {
		return nil, errNoReconciler
	}
	return i.reconciler, nil
}

func (i *client) createReconcileFunction() inngestgo.ServableFunction {
	config := inngestgo.FunctionOpts{
		ID:   "encounter-reconciler",
		Name: "Reconcile encounter progression",
	}
	f, err := inngestgo.CreateFunction(
		i.inngestClient,
		config,
		inngestgo.EventTrigger(EventReconcileRequested, nil),
		func(ctx context.Context, input inngestgo.Input[ReconcileData]) (any, error) {
			encounterID := input.Event.Data.EncounterID
			log.Info("Reconciling encounter", "encounterID", encounterID, "reason", input.Event.Data.Reason)

			// Each step is retried by inngest on failure.
			tally, err := step.Run(ctx, "reconcile-team-wins", func(ctx context.Context) (encounter.Tally, error) {
				r, err := i.getReconciler()
				if err != nil {
					return encounter.Tally{}, err
				}
				return r.ReconcileTeamWins(ctx, encounterID)
			})
			if err != nil {
				return nil, err
			}

			status, err := step.Run(ctx, "check-encounter", func(ctx context.Context) (encounter.Status, error) {
				r, err := i.getReconciler()
				if err != nil {
					return "", err
				}
				progress, err := r.CheckEncounter(ctx, encounterID)
				if err != nil {
					return "", err
				}
				return progress.Status, nil
			})
			if err != nil {
				return nil, err
			}

			return map[string]any{
				"encounterId": encounterID,
				"side1Wins":   tally.Side1Wins,
				"side2Wins":   tally.Side2Wins,
				"status":      status,
			}, nil
		},
	)
	if err != nil {
		log.Fatal("Failed to create function", "error", err)
	}
	return f
}

func (i *client) Serve() http.Handler {
	return i.inngestClient.Serve()
}

// RequestReconcile sends EventReconcileRequested for encounterID.
func (i *client) RequestReconcile(ctx context.Context, encounterID, reason string) error {
	if encounterID == "" {
		return errors.New("encounter id is required")
	}
	id, err := i.inngestClient.Send(ctx, inngestgo.Event{
		Name: EventReconcileRequested,
		Data: map[string]any{"encounterId": encounterID, "reason": reason},
	})
	if err != nil {
		return fmt.Errorf("failed to send reconcile event: %w", err)
	}
	log.Info("Requested encounter reconciliation", "encounterID", encounterID, "eventID", id)
	return nil
}
