package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tt-encounter/internal/processor"
	"github.com/mauv0809/tt-encounter/internal/scheduling"
	"github.com/mauv0809/tt-encounter/internal/scoring"
)

// matchCommand runs a processor command for the matchID query parameter.
type matchCommand func(ctx context.Context, r *http.Request, matchID string) (*processor.Result, error)

func matchCommandHandler(name string, cmd matchCommand) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID == "" {
			http.Error(w, "matchID is required", http.StatusBadRequest)
			return
		}
		res, err := cmd(r.Context(), r, matchID)
		if errors.Is(err, processor.ErrProgressionPending) && res != nil {
			log.Warn("Match stored, encounter progression pending", "command", name, "matchID", matchID, "error", err)
			writeJSON(w, http.StatusAccepted, res)
			return
		}
		if err != nil {
			writeError(w, "Failed to "+name+" match", err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func LaunchMatchHandler(proc *processor.Processor) http.HandlerFunc {
	return matchCommandHandler("launch", func(ctx context.Context, r *http.Request, matchID string) (*processor.Result, error) {
		return proc.LaunchMatch(ctx, matchID)
	})
}

// UpdateScoreHandler expects side=side1|side2 and delta=1|-1, which defaults to 1.
func UpdateScoreHandler(proc *processor.Processor) http.HandlerFunc {
	return matchCommandHandler("score", func(ctx context.Context, r *http.Request, matchID string) (*processor.Result, error) {
		delta := 1
		if raw := r.URL.Query().Get("delta"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return nil, errors.Join(processor.ErrInvalidInput, err)
			}
			delta = parsed
		}
		return proc.UpdateScore(ctx, matchID, scoring.Side(r.URL.Query().Get("side")), delta)
	})
}

func LaunchSetHandler(proc *processor.Processor) http.HandlerFunc {
	return matchCommandHandler("launch set of", func(ctx context.Context, r *http.Request, matchID string) (*processor.Result, error) {
		return proc.LaunchSet(ctx, matchID)
	})
}

func TerminateMatchHandler(proc *processor.Processor) http.HandlerFunc {
	return matchCommandHandler("terminate", func(ctx context.Context, r *http.Request, matchID string) (*processor.Result, error) {
		return proc.TerminateMatch(ctx, matchID)
	})
}

func ResetMatchHandler(proc *processor.Processor) http.HandlerFunc {
	return matchCommandHandler("reset", func(ctx context.Context, r *http.Request, matchID string) (*processor.Result, error) {
		return proc.ResetMatch(ctx, matchID)
	})
}

func CancelMatchHandler(proc *processor.Processor) http.HandlerFunc {
	return matchCommandHandler("cancel", func(ctx context.Context, r *http.Request, matchID string) (*processor.Result, error) {
		return proc.CancelMatch(ctx, matchID)
	})
}

// AssignTableHandler starts the match on the table query parameter.
func AssignTableHandler(scheduler *scheduling.Scheduler) http.HandlerFunc {
	return matchCommandHandler("assign table to", func(ctx context.Context, r *http.Request, matchID string) (*processor.Result, error) {
		table, err := strconv.Atoi(r.URL.Query().Get("table"))
		if err != nil {
			return nil, errors.Join(processor.ErrInvalidInput, err)
		}
		m, applied, err := scheduler.AssignTable(ctx, matchID, table)
		if err != nil {
			return nil, err
		}
		return &processor.Result{Match: m, Applied: applied}, nil
	})
}

type doublesRequest struct {
	Side1 []string `json:"side1"`
	Side2 []string `json:"side2"`
}

func DoublesCompositionHandler(scheduler *scheduling.Scheduler) http.HandlerFunc {
	return matchCommandHandler("compose", func(ctx context.Context, r *http.Request, matchID string) (*processor.Result, error) {
		var req doublesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, errors.Join(processor.ErrInvalidInput, err)
		}
		m, err := scheduler.SetDoublesComposition(ctx, matchID, req.Side1, req.Side2)
		if err != nil {
			return nil, err
		}
		return &processor.Result{Match: m, Applied: true}, nil
	})
}
