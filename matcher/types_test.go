package matcher

import (
	"encoding/json"
	"testing"

	"github.com/corvidsec/matchengine/event"
	"github.com/corvidsec/matchengine/value"
)

func TestProcessedNodeJSONSelectsVariant(t *testing.T) {
	node := ProcessedNode{
		Kind: NodeRuleset,
		Ruleset: ProcessedRuleset{
			Name:  "r",
			Rules: []ProcessedRule{{Name: "r1", Status: Matched}},
		},
	}
	b, err := json.Marshal(node)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["kind"] != "Ruleset" {
		t.Fatalf("kind = %v", decoded["kind"])
	}
	if _, ok := decoded["filter"]; ok {
		t.Fatal("a ruleset node must not carry a filter key")
	}
}

func TestProcessedEventRoundTrips(t *testing.T) {
	pe := ProcessedEvent{
		Event: event.New("email", 1, map[string]any{"body": "x"}),
		Result: ProcessedNode{
			Kind:    NodeRuleset,
			Ruleset: ProcessedRuleset{Name: "r", Rules: []ProcessedRule{{Name: "r1", Status: NotMatched}}},
		},
	}
	b, err := json.Marshal(pe)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out struct {
		Event struct {
			Type    string      `json:"type"`
			Payload value.Value `json:"payload"`
		} `json:"event"`
		Result struct {
			Kind    string `json:"kind"`
			Ruleset struct {
				Rules []struct {
					Status string `json:"status"`
				} `json:"rules"`
			} `json:"ruleset"`
		} `json:"result"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Event.Type != "email" {
		t.Fatalf("event.type = %q", out.Event.Type)
	}
	if out.Result.Ruleset.Rules[0].Status != "NotMatched" {
		t.Fatalf("status = %q", out.Result.Ruleset.Rules[0].Status)
	}
}
