package executor

import (
	"context"
	"testing"

	"github.com/corvidsec/matchengine/matcher"
	"github.com/corvidsec/matchengine/value"
)

func TestCollectActionsWalksFilterAndRuleset(t *testing.T) {
	leaf := matcher.ProcessedNode{
		Kind: matcher.NodeRuleset,
		Ruleset: matcher.ProcessedRuleset{
			Name: "r",
			Rules: []matcher.ProcessedRule{
				{Name: "r1", Status: matcher.Matched, Actions: []matcher.ProcessedAction{{ID: "archive:a"}}},
				{Name: "r2", Status: matcher.Matched, Actions: []matcher.ProcessedAction{{ID: "script:b"}}},
			},
		},
	}
	root := matcher.ProcessedNode{
		Kind:   matcher.NodeFilter,
		Filter: matcher.ProcessedFilter{Name: "F", Status: matcher.FilterMatched, Nodes: []matcher.ProcessedNode{leaf}},
	}

	actions := CollectActions(root)
	if len(actions) != 2 {
		t.Fatalf("got %d actions", len(actions))
	}
}

func TestDispatchRoutesByPrefixAndCountsAttempts(t *testing.T) {
	var got []string
	d := NewDispatcher()
	d.Register("archive", func(_ context.Context, a matcher.ProcessedAction) error {
		got = append(got, a.ID)
		return nil
	})

	result := matcher.ProcessedNode{
		Kind: matcher.NodeRuleset,
		Ruleset: matcher.ProcessedRuleset{
			Name: "r",
			Rules: []matcher.ProcessedRule{{
				Name:   "r1",
				Status: matcher.Matched,
				Actions: []matcher.ProcessedAction{
					{ID: "archive:a", Payload: value.String("x")},
					{ID: "unrouted:z"},
				},
			}},
		},
	}

	n := d.Dispatch(context.Background(), result)
	if n != 2 {
		t.Fatalf("dispatched count = %d", n)
	}
	if len(got) != 1 || got[0] != "archive:a" {
		t.Fatalf("archive handler calls = %v", got)
	}
}
