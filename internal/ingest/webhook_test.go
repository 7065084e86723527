package ingest

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corvidsec/matchengine/event"
)

func TestWebhookCollectorPublishesDecodedEvent(t *testing.T) {
	var got event.Event
	c := NewWebhookCollector(func(ev event.Event) { got = ev })

	body := []byte(`{"type":"email","created_ms":5,"payload":{"body":"hi"}}`)
	req := httptest.NewRequest(http.MethodPost, "/ingest", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	c.ServeHTTP(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rr.Code)
	}
	if got.Type != "email" || got.CreatedMs != 5 {
		t.Fatalf("got event = %+v", got)
	}
}

func TestWebhookCollectorRejectsMalformedBody(t *testing.T) {
	called := false
	c := NewWebhookCollector(func(event.Event) { called = true })

	req := httptest.NewRequest(http.MethodPost, "/ingest", bytes.NewReader([]byte("not json")))
	rr := httptest.NewRecorder()

	c.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if called {
		t.Fatal("publish must not run on decode failure")
	}
}

func TestWebhookCollectorRejectsNonPost(t *testing.T) {
	c := NewWebhookCollector(func(event.Event) {})
	req := httptest.NewRequest(http.MethodGet, "/ingest", nil)
	rr := httptest.NewRecorder()

	c.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rr.Code)
	}
}
