package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tt-encounter/internal/club"
	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/notifier"
	"github.com/mauv0809/tt-encounter/internal/processor"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(slackMsg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// TallyCommandHandler answers /tally [encounterID] with the running score.
// Without an id the current encounter is used.
func TallyCommandHandler(store club.ClubStore, proc *processor.Processor, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		ctx := r.Context()

		var enc *encounter.Encounter
		var err error
		if id := strings.TrimSpace(r.FormValue("text")); id != "" {
			enc, err = store.GetEncounter(ctx, id)
		} else {
			enc, err = store.GetCurrentEncounter(ctx)
		}
		if errors.Is(err, club.ErrNotFound) {
			log.Warn("No encounter for tally command", "text", r.FormValue("text"))
			msg, ferr := notifier.FormatNoEncounterResponse()
			if ferr != nil {
				http.Error(w, "Failed to format response", http.StatusInternalServerError)
				return
			}
			respondWithSlackMsg(w, msg)
			return
		}
		if err != nil {
			http.Error(w, "Failed to get encounter", http.StatusInternalServerError)
			log.Error("Failed to get encounter from store", "error", err)
			return
		}

		tally, err := proc.Tally(ctx, enc.ID)
		if err != nil {
			http.Error(w, "Failed to compute tally", http.StatusInternalServerError)
			log.Error("Failed to compute tally", "error", err, "encounterID", enc.ID)
			return
		}
		msg, err := notifier.FormatTallyResponse(enc, tally)
		if err != nil {
			http.Error(w, "Failed to format tally", http.StatusInternalServerError)
			log.Error("Failed to format tally", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}
