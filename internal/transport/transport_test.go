package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"testing"

	"github.com/corvidsec/matchengine/accessor"
	"github.com/corvidsec/matchengine/operator"
	"github.com/corvidsec/matchengine/rule"
	"github.com/corvidsec/matchengine/tree"
	"github.com/corvidsec/matchengine/value"
)

func buildTestTree() *tree.Node {
	where := operator.Equal(
		operator.AccessorOperand(accessor.NewEventField([]string{"type"})),
		operator.ConstantOperand(value.String("email")),
	)
	return func() *tree.Node {
		n := tree.NewRulesetNode(tree.RulesetNode{
			Name:  "r",
			Rules: []rule.Rule{{Name: "r1", Active: true, Where: &where}},
		})
		return &n
	}()
}

func TestHandleConnRoundTripsOneLine(t *testing.T) {
	root := buildTestTree()
	s := NewServer(root, nil, nil)

	client, srv := net.Pipe()
	done := make(chan struct{})
	go func() {
		s.handleConn(context.Background(), srv)
		close(done)
	}()

	enc := json.NewEncoder(client)
	if err := enc.Encode(map[string]any{"type": "email", "created_ms": 1, "payload": map[string]any{}}); err != nil {
		t.Fatalf("encode request: %v", err)
	}

	reader := bufio.NewReader(client)
	line, err := reader.ReadBytes('\n')
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	var resp struct {
		Result struct {
			Kind    string `json:"kind"`
			Ruleset struct {
				Rules []struct {
					Status string `json:"status"`
				} `json:"rules"`
			} `json:"ruleset"`
		} `json:"result"`
	}
	if err := json.Unmarshal(line, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result.Kind != "Ruleset" {
		t.Fatalf("kind = %q", resp.Result.Kind)
	}
	if len(resp.Result.Ruleset.Rules) != 1 || resp.Result.Ruleset.Rules[0].Status != "Matched" {
		t.Fatalf("rules = %+v", resp.Result.Ruleset.Rules)
	}

	client.Close()
	<-done
}

func TestReloadSwapsTreeAtomically(t *testing.T) {
	root := buildTestTree()
	s := NewServer(root, nil, nil)

	replacement := buildTestTree()
	s.Reload(replacement)

	if s.currentTree() != replacement {
		t.Fatal("Reload must swap the tree pointer")
	}
}
