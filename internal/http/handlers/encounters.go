package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tt-encounter/internal/club"
	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/processor"
	"github.com/mauv0809/tt-encounter/internal/scheduling"
)

func CreateEncounterHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req processor.EncounterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		prepared, err := proc.PrepareEncounter(r.Context(), req)
		if err != nil {
			writeError(w, "Failed to prepare encounter", err)
			return
		}
		writeJSON(w, http.StatusCreated, prepared)
	}
}

// GetEncountersHandler returns one encounter when encounterID is set and all
// of them otherwise.
func GetEncountersHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id := r.URL.Query().Get("encounterID"); id != "" {
			enc, err := store.GetEncounter(r.Context(), id)
			if err != nil {
				writeError(w, "Failed to get encounter", err)
				return
			}
			writeJSON(w, http.StatusOK, enc)
			return
		}
		encounters, err := store.ListEncounters(r.Context())
		if err != nil {
			writeError(w, "Failed to list encounters", err)
			return
		}
		if encounters == nil {
			encounters = []encounter.Encounter{}
		}
		writeJSON(w, http.StatusOK, encounters)
	}
}

func ListMatchesHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		encounterID, err := encounterIDParam(r.Context(), r, store)
		if err != nil {
			writeError(w, "Failed to resolve encounter", err)
			return
		}
		matches, err := store.GetMatches(r.Context(), encounterID)
		if err != nil {
			writeError(w, "Failed to get matches", err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func TallyHandler(store club.ClubStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		encounterID, err := encounterIDParam(r.Context(), r, store)
		if err != nil {
			writeError(w, "Failed to resolve encounter", err)
			return
		}
		tally, err := proc.Tally(r.Context(), encounterID)
		if err != nil {
			writeError(w, "Failed to compute tally", err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			EncounterID string `json:"encounter_id"`
			encounter.Tally
			Completion encounter.Completion `json:"completion"`
		}{encounterID, tally, encounter.IsComplete(tally)})
	}
}

func NextFixturesHandler(store club.ClubStore, scheduler *scheduling.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		encounterID, err := encounterIDParam(r.Context(), r, store)
		if err != nil {
			writeError(w, "Failed to resolve encounter", err)
			return
		}
		next, err := scheduler.NextFixtures(r.Context(), encounterID)
		if err != nil {
			writeError(w, "Failed to select next fixtures", err)
			return
		}
		writeJSON(w, http.StatusOK, next)
	}
}

func CheckEncounterHandler(store club.ClubStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		encounterID, err := encounterIDParam(r.Context(), r, store)
		if err != nil {
			writeError(w, "Failed to resolve encounter", err)
			return
		}
		progress, err := proc.CheckEncounter(r.Context(), encounterID)
		if err != nil {
			writeError(w, "Failed to check encounter", err)
			return
		}
		writeJSON(w, http.StatusOK, progress)
	}
}

// ReconcileHandler rebuilds the team counters and the encounter status from
// the stored matches.
func ReconcileHandler(store club.ClubStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		encounterID, err := encounterIDParam(r.Context(), r, store)
		if err != nil {
			writeError(w, "Failed to resolve encounter", err)
			return
		}
		if _, err := proc.ReconcileTeamWins(r.Context(), encounterID); err != nil {
			writeError(w, "Failed to reconcile team wins", err)
			return
		}
		progress, err := proc.CheckEncounter(r.Context(), encounterID)
		if err != nil {
			writeError(w, "Failed to check encounter", err)
			return
		}
		log.Info("Encounter reconciled", "encounterID", encounterID, "status", progress.Status)
		writeJSON(w, http.StatusOK, progress)
	}
}

func ArchiveEncounterHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		encounterID := r.URL.Query().Get("encounterID")
		if encounterID == "" {
			http.Error(w, "encounterID is required", http.StatusBadRequest)
			return
		}
		if err := proc.ArchiveEncounter(r.Context(), encounterID); err != nil {
			writeError(w, "Failed to archive encounter", err)
			return
		}
		fmt.Fprintf(w, "Encounter %s archived", encounterID)
	}
}

func SetCurrentEncounterHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		encounterID := r.URL.Query().Get("encounterID")
		if encounterID == "" {
			http.Error(w, "encounterID is required", http.StatusBadRequest)
			return
		}
		if err := proc.SetCurrentEncounter(r.Context(), encounterID); err != nil {
			writeError(w, "Failed to set current encounter", err)
			return
		}
		fmt.Fprintf(w, "Encounter %s is now current", encounterID)
	}
}
