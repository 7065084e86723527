// Package matcher implements the stateless matching entry point: it
// walks a compiled processing tree against one event and accumulates a
// ProcessedNode result tree.
package matcher

import (
	"encoding/json"

	"github.com/corvidsec/matchengine/event"
	"github.com/corvidsec/matchengine/value"
)

// ProcessedEvent pairs an event with the result of matching it, the unit
// the transport layer and the audit store exchange.
type ProcessedEvent struct {
	Event  event.Event   `json:"event"`
	Result ProcessedNode `json:"result"`
}

// ProcessType selects how much work Process is allowed to skip.
type ProcessType int

const (
	// Full renders action payloads and returns them.
	Full ProcessType = iota
	// SkipActions performs matching only; actions are never rendered,
	// used for dry-run/validation callers that only need rule statuses.
	SkipActions
)

// RuleStatus is one of the four outcomes of evaluating a rule.
type RuleStatus int

const (
	NotProcessed RuleStatus = iota
	NotMatched
	PartiallyMatched
	Matched
)

func (s RuleStatus) String() string {
	switch s {
	case NotProcessed:
		return "NotProcessed"
	case NotMatched:
		return "NotMatched"
	case PartiallyMatched:
		return "PartiallyMatched"
	case Matched:
		return "Matched"
	default:
		return "Unknown"
	}
}

func (s RuleStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// FilterStatus is the outcome of evaluating a filter node's predicate.
type FilterStatus int

const (
	FilterMatched FilterStatus = iota
	FilterNotMatched
	FilterInactive
)

func (s FilterStatus) String() string {
	switch s {
	case FilterMatched:
		return "Matched"
	case FilterNotMatched:
		return "NotMatched"
	case FilterInactive:
		return "Inactive"
	default:
		return "Unknown"
	}
}

func (s FilterStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// ProcessedAction is one successfully-rendered action.
type ProcessedAction struct {
	ID      string      `json:"id"`
	Payload value.Value `json:"payload"`
}

// ProcessedRule is the per-rule record of one Process call. Message is
// non-empty whenever one or more actions were dropped due to an
// interpolation failure, or the rule ended PartiallyMatched due to a
// failed extractor.
type ProcessedRule struct {
	Name    string            `json:"name"`
	Status  RuleStatus        `json:"status"`
	Actions []ProcessedAction `json:"actions,omitempty"`
	Message string            `json:"message,omitempty"`
}

// ProcessedFilter is the Filter-node record of one Process call.
type ProcessedFilter struct {
	Name   string          `json:"name"`
	Status FilterStatus    `json:"status"`
	Nodes  []ProcessedNode `json:"nodes,omitempty"`
}

// ProcessedRuleset is the Ruleset-node record of one Process call.
type ProcessedRuleset struct {
	Name          string                 `json:"name"`
	Rules         []ProcessedRule        `json:"rules"`
	ExtractedVars map[string]value.Value `json:"extracted_vars,omitempty"`
}

// NodeKind discriminates a ProcessedNode's shape, mirroring tree.Kind.
type NodeKind int

const (
	NodeFilter NodeKind = iota
	NodeRuleset
)

func (k NodeKind) String() string {
	if k == NodeRuleset {
		return "Ruleset"
	}
	return "Filter"
}

// ProcessedNode is the per-event result of walking one tree.Node.
// Exactly one of Filter/Ruleset is populated, selected by Kind.
type ProcessedNode struct {
	Kind    NodeKind         `json:"kind"`
	Filter  ProcessedFilter  `json:"filter"`
	Ruleset ProcessedRuleset `json:"ruleset"`
}

// MarshalJSON renders only the variant selected by Kind: a "kind" string
// plus a single "filter" or "ruleset" object.
func (n ProcessedNode) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case NodeRuleset:
		return json.Marshal(struct {
			Kind    string           `json:"kind"`
			Ruleset ProcessedRuleset `json:"ruleset"`
		}{n.Kind.String(), n.Ruleset})
	default:
		return json.Marshal(struct {
			Kind   string          `json:"kind"`
			Filter ProcessedFilter `json:"filter"`
		}{n.Kind.String(), n.Filter})
	}
}
