package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tt-encounter/internal/notifier"
	"github.com/mauv0809/tt-encounter/internal/pubsub"
)

// decodePushMessage unwraps a Pub/Sub push request into its raw payload.
func decodePushMessage(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return nil, false
	}
	log.Debug("Received pubsub message", "path", r.URL.Path, "body", string(bodyBytes))

	var pubsubMsg struct {
		Subscription string `json:"subscription"`
		Message      struct {
			Data string `json:"data"`
		} `json:"message"`
	}

	if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
		log.Error("Failed to unmarshal wrapper JSON", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return nil, false
	}

	rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
	if err != nil {
		log.Error("Failed to decode base64 data", "error", err)
		http.Error(w, "Invalid base64 data", http.StatusBadRequest)
		return nil, false
	}
	return rawData, true
}

func MatchFinishedHandler(notifier notifier.Notifier, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, ok := decodePushMessage(w, r)
		if !ok {
			return
		}
		var event pubsub.MatchEvent
		if err := pubsubClient.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		if err := notifier.SendMatchResult(event, IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to notify match result", "error", err, "matchID", event.Match.ID)
			http.Error(w, "Failed to notify match result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func EncounterCompletedHandler(notifier notifier.Notifier, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, ok := decodePushMessage(w, r)
		if !ok {
			return
		}
		var event pubsub.EncounterEvent
		if err := pubsubClient.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		if err := notifier.SendEncounterCompleted(event, IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to notify encounter result", "error", err, "encounterID", event.EncounterID)
			http.Error(w, "Failed to notify encounter result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
