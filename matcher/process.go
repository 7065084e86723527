package matcher

import (
	"fmt"

	"github.com/corvidsec/matchengine/accessor"
	"github.com/corvidsec/matchengine/event"
	"github.com/corvidsec/matchengine/rule"
	"github.com/corvidsec/matchengine/tree"
	"github.com/corvidsec/matchengine/value"
)

// Process walks root against ev and returns the ProcessedNode describing
// every filter/ruleset/rule outcome. It never fails: malformed or sparse
// events simply surface as NotMatched / PartiallyMatched statuses.
//
// root is taken by pointer (rather than copied) so the matcher's
// literalPrefilter cache can key off the identity of the compiled
// RulesetNode it was built for, across any number of concurrent calls
// against the same immutable tree.
func Process(ev event.Event, root *tree.Node, mode ProcessType) ProcessedNode {
	eventValue := ev.AsValue()
	return processNode(eventValue, root, mode)
}

func processNode(eventValue value.Value, n *tree.Node, mode ProcessType) ProcessedNode {
	switch n.Kind {
	case tree.KindFilter:
		return ProcessedNode{Kind: NodeFilter, Filter: processFilter(eventValue, &n.Filter, mode)}
	case tree.KindRuleset:
		return ProcessedNode{Kind: NodeRuleset, Ruleset: processRuleset(eventValue, &n.Ruleset, mode)}
	default:
		return ProcessedNode{}
	}
}

func processFilter(eventValue value.Value, f *tree.FilterNode, mode ProcessType) ProcessedFilter {
	if !f.Active {
		return ProcessedFilter{Name: f.Name, Status: FilterInactive}
	}

	matched := true
	if f.Filter != nil {
		matched = f.Filter.Eval(eventValue, nil, "")
	}
	if !matched {
		return ProcessedFilter{Name: f.Name, Status: FilterNotMatched}
	}

	nodes := make([]ProcessedNode, len(f.Children))
	for i := range f.Children {
		nodes[i] = processNode(eventValue, &f.Children[i], mode)
	}
	return ProcessedFilter{Name: f.Name, Status: FilterMatched, Nodes: nodes}
}

func processRuleset(eventValue value.Value, rs *tree.RulesetNode, mode ProcessType) ProcessedRuleset {
	env := newEnvironment()
	var matchedRuleNames []string
	var ruleStop bool

	prefilter := prefilterFor(rs)
	present := prefilter.scanPresence(eventValue)

	processed := make([]ProcessedRule, len(rs.Rules))
	for i, r := range rs.Rules {
		if ruleStop || !r.Active {
			processed[i] = ProcessedRule{Name: r.Name, Status: NotProcessed}
			continue
		}
		if !prefilter.allows(r.Name, present) {
			processed[i] = ProcessedRule{Name: r.Name, Status: NotMatched}
			continue
		}

		pr, extracted, stop := processRule(eventValue, env, r, mode)
		processed[i] = pr
		if extracted != nil {
			matchedRuleNames = append(matchedRuleNames, r.Name)
		}
		if stop {
			ruleStop = true
		}
	}

	return ProcessedRuleset{
		Name:          rs.Name,
		Rules:         processed,
		ExtractedVars: env.snapshot(matchedRuleNames),
	}
}

// processRule evaluates one rule and reports its record, the variables it
// extracted (nil if none should be published), and whether it should stop
// the ruleset (continue_on_match = false and it matched).
func processRule(eventValue value.Value, env *environment, r rule.Rule, mode ProcessType) (ProcessedRule, map[string]value.Value, bool) {
	if r.Where != nil && !r.Where.Eval(eventValue, env, r.Name) {
		return ProcessedRule{Name: r.Name, Status: NotMatched}, nil, false
	}

	extracted := make(map[string]value.Value, len(r.With))
	for _, w := range r.With {
		v, ok := w.Extractor.Extract(eventValue, env, r.Name)
		if !ok {
			return ProcessedRule{Name: r.Name, Status: PartiallyMatched, Message: fmt.Sprintf("extractor %q failed", w.Name)}, nil, false
		}
		extracted[w.Name] = v
	}

	// Publish before rendering actions so "_variables.X", which resolves
	// under this rule's name, is visible to this rule's own action templates.
	env.publish(r.Name, extracted)

	var actions []ProcessedAction
	var message string
	actionFailed := false
	if mode == Full {
		for _, a := range r.Actions {
			payload, err := a.Payload.Render(eventValue, env, r.Name)
			if err != nil {
				message = fmt.Sprintf("action %q dropped: %v", a.ID, err)
				actionFailed = true
				continue
			}
			actions = append(actions, ProcessedAction{ID: a.ID, Payload: payload})
		}
	}

	if actionFailed {
		return ProcessedRule{Name: r.Name, Status: PartiallyMatched, Actions: actions, Message: message}, extracted, false
	}

	stop := !r.ContinueOnMatch
	return ProcessedRule{Name: r.Name, Status: Matched, Actions: actions, Message: message}, extracted, stop
}

var _ accessor.Environment = (*environment)(nil)
