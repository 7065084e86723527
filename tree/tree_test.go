package tree

import (
	"testing"

	"github.com/corvidsec/matchengine/rule"
)

func TestStatsCountsNodesAndDepth(t *testing.T) {
	leaf := NewRulesetNode(RulesetNode{
		Name:  "r",
		Rules: []rule.Rule{{Name: "a"}, {Name: "b"}},
	})
	inner := NewFilterNode(FilterNode{
		Name:     "inner",
		Active:   true,
		Children: []Node{leaf},
	})
	root := NewFilterNode(FilterNode{
		Name:     "root",
		Active:   true,
		Children: []Node{inner},
	})

	s := Stats(root)
	if s.FilterNodes != 2 {
		t.Fatalf("filter nodes = %d", s.FilterNodes)
	}
	if s.RulesetNodes != 1 {
		t.Fatalf("ruleset nodes = %d", s.RulesetNodes)
	}
	if s.RuleCount != 2 {
		t.Fatalf("rule count = %d", s.RuleCount)
	}
	if s.MaxDepth != 3 {
		t.Fatalf("max depth = %d", s.MaxDepth)
	}
}
