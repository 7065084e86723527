// Package executor dispatches the actions a matched rule emitted to one
// of a small set of stub handlers, selected by the action id's prefix.
// Real execution (writing an archive, running a script, pinging a
// monitor) is out of scope here, but the dispatch plumbing and its
// logging are not.
package executor

import (
	"context"
	"log"
	"strings"

	"github.com/corvidsec/matchengine/matcher"
)

// Handler executes one action. Errors are logged by Dispatcher, never
// propagated back into the match path.
type Handler func(ctx context.Context, action matcher.ProcessedAction) error

// Dispatcher routes actions by the prefix of their ID, e.g. "archive:foo"
// dispatches to the archive handler with the full ID intact.
type Dispatcher struct {
	handlers map[string]Handler
}

// NewDispatcher builds a Dispatcher with the three built-in stub handlers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: map[string]Handler{
			"archive": archiveExecute,
			"script":  scriptExecute,
			"monitor": monitorExecute,
		},
	}
}

// Register overrides or adds a handler for a prefix.
func (d *Dispatcher) Register(prefix string, h Handler) {
	d.handlers[prefix] = h
}

// Dispatch walks every action reachable from result and runs the handler
// matching its id prefix, logging anything it can't route or that fails.
// It returns how many actions it attempted.
func (d *Dispatcher) Dispatch(ctx context.Context, result matcher.ProcessedNode) int {
	actions := CollectActions(result)
	for _, a := range actions {
		prefix, _, _ := strings.Cut(a.ID, ":")
		h, ok := d.handlers[prefix]
		if !ok {
			log.Printf("executor: no handler for action %q", a.ID)
			continue
		}
		if err := h(ctx, a); err != nil {
			log.Printf("executor: action %q failed: %v", a.ID, err)
		}
	}
	return len(actions)
}

// CollectActions flattens every ProcessedAction reachable from a
// ProcessedNode tree, in the order its rules ran.
func CollectActions(n matcher.ProcessedNode) []matcher.ProcessedAction {
	var out []matcher.ProcessedAction
	switch n.Kind {
	case matcher.NodeFilter:
		for _, child := range n.Filter.Nodes {
			out = append(out, CollectActions(child)...)
		}
	case matcher.NodeRuleset:
		for _, r := range n.Ruleset.Rules {
			out = append(out, r.Actions...)
		}
	}
	return out
}

func archiveExecute(_ context.Context, a matcher.ProcessedAction) error {
	log.Printf("executor/archive: id=%s payload=%s", a.ID, a.Payload)
	return nil
}

func scriptExecute(_ context.Context, a matcher.ProcessedAction) error {
	log.Printf("executor/script: id=%s payload=%s", a.ID, a.Payload)
	return nil
}

func monitorExecute(_ context.Context, a matcher.ProcessedAction) error {
	log.Printf("executor/monitor: id=%s payload=%s", a.ID, a.Payload)
	return nil
}
