// Package tree implements the compiled processing tree: the immutable
// filter/ruleset hierarchy that the matcher walks per event.
package tree

import (
	"fmt"

	"github.com/corvidsec/matchengine/operator"
	"github.com/corvidsec/matchengine/rule"
)

// Kind discriminates a Node's shape.
type Kind int

const (
	KindFilter Kind = iota
	KindRuleset
)

func (k Kind) String() string {
	switch k {
	case KindFilter:
		return "Filter"
	case KindRuleset:
		return "Ruleset"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is one element of the processing tree: either a Filter (a gating
// predicate over a list of children) or a Ruleset (a leaf holding an
// ordered list of rules). Exactly one of Filter/Ruleset is populated,
// selected by Kind.
type Node struct {
	Kind    Kind
	Filter  FilterNode
	Ruleset RulesetNode
}

// FilterNode gates a subtree by an optional operator. A nil Filter is an
// implicit filter and matches all events.
type FilterNode struct {
	Name        string
	Description string
	Active      bool
	Filter      *operator.Operator
	Children    []Node
}

// RulesetNode is a leaf holding the rules that share one variable
// environment during evaluation.
type RulesetNode struct {
	Name  string
	Rules []rule.Rule
}

// NewFilterNode constructs a Filter-kind Node.
func NewFilterNode(f FilterNode) Node {
	return Node{Kind: KindFilter, Filter: f}
}

// NewRulesetNode constructs a Ruleset-kind Node.
func NewRulesetNode(r RulesetNode) Node {
	return Node{Kind: KindRuleset, Ruleset: r}
}

// Statistics summarizes the shape of a compiled tree, mirroring the kind
// of structural counters a compiled DAG exposes for capacity planning.
type Statistics struct {
	FilterNodes  int
	RulesetNodes int
	RuleCount    int
	MaxDepth     int
}

// Stats walks the tree once and reports its Statistics.
func Stats(root Node) Statistics {
	var s Statistics
	walkStats(root, 1, &s)
	return s
}

func walkStats(n Node, depth int, s *Statistics) {
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	switch n.Kind {
	case KindFilter:
		s.FilterNodes++
		for _, c := range n.Filter.Children {
			walkStats(c, depth+1, s)
		}
	case KindRuleset:
		s.RulesetNodes++
		s.RuleCount += len(n.Ruleset.Rules)
	}
}
