package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tt-encounter/internal/club"
	"github.com/mauv0809/tt-encounter/internal/fixtures"
	"github.com/mauv0809/tt-encounter/internal/processor"
	"github.com/mauv0809/tt-encounter/internal/scheduling"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, processor.ErrInvalidInput),
		errors.Is(err, fixtures.ErrInvalidRoster),
		errors.Is(err, fixtures.ErrInvalidFormat),
		errors.Is(err, fixtures.ErrInvalidCount),
		errors.Is(err, scheduling.ErrTableOutOfRange),
		errors.Is(err, scheduling.ErrInvalidComposition):
		return http.StatusBadRequest
	case errors.Is(err, club.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, club.ErrVersionConflict),
		errors.Is(err, club.ErrTableTaken),
		errors.Is(err, scheduling.ErrTableBusy):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(msg, "error", err)
		http.Error(w, msg, status)
		return
	}
	log.Warn(msg, "error", err, "status", status)
	http.Error(w, err.Error(), status)
}

// encounterIDParam returns the encounterID query parameter, falling back to
// the current encounter.
func encounterIDParam(ctx context.Context, r *http.Request, store club.ClubStore) (string, error) {
	if id := r.URL.Query().Get("encounterID"); id != "" {
		return id, nil
	}
	enc, err := store.GetCurrentEncounter(ctx)
	if err != nil {
		return "", err
	}
	return enc.ID, nil
}
