// Package ingest implements two collectors over the protocols a matcher
// daemon typically fields alongside its own framed socket transport: a
// webhook HTTP collector and a syslog UDP collector, each turning raw
// input into an event.Event the matcher can process.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/corvidsec/matchengine/event"
)

// Publisher receives one decoded event. The daemon wires this to
// matcher.Process plus whatever audit/executor plumbing follows it.
type Publisher func(event.Event)

// WebhookCollector is an http.Handler that accepts a single JSON event
// body per POST, the same wire shape event.DecodeJSON expects.
type WebhookCollector struct {
	Publish Publisher
}

func NewWebhookCollector(publish Publisher) *WebhookCollector {
	return &WebhookCollector{Publish: publish}
}

func (c *WebhookCollector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeWebhookError(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}
	ev, err := event.DecodeJSON(body)
	if err != nil {
		writeWebhookError(w, http.StatusBadRequest, fmt.Errorf("decode event: %w", err))
		return
	}
	c.Publish(ev)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "accepted"}); err != nil {
		log.Printf("ingest/webhook: write response: %v", err)
	}
}

func writeWebhookError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
