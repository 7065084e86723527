package matcher

import "github.com/corvidsec/matchengine/value"

// environment is the per-ruleset variable store: a two-level map (rule
// name -> var name -> Value), populated in declared order as rules
// match. It implements accessor.Environment so operators/extractors/
// interpolators can resolve "_variables.RULE_NAME.NAME" and
// "_variables.NAME" (the latter with RuleName resolved to the current
// rule by the accessor layer) against it.
type environment struct {
	byRule map[string]map[string]value.Value
}

func newEnvironment() *environment {
	return &environment{byRule: make(map[string]map[string]value.Value)}
}

// Get implements accessor.Environment.
func (e *environment) Get(ruleName, varName string) (value.Value, bool) {
	vars, ok := e.byRule[ruleName]
	if !ok {
		return value.Value{}, false
	}
	v, ok := vars[varName]
	return v, ok
}

// publish records the variables extracted by a successfully-matched rule,
// making them visible to later rules via "_variables.<ruleName>.<name>".
func (e *environment) publish(ruleName string, vars map[string]value.Value) {
	dst := make(map[string]value.Value, len(vars))
	for k, v := range vars {
		dst[k] = v
	}
	e.byRule[ruleName] = dst
}

// snapshot flattens the environment to var_name -> Value for the
// extracted_vars field of a ProcessedRuleset. If two rules declare the
// same variable name, the later rule's value wins, matching declared-
// order evaluation.
func (e *environment) snapshot(rules []string) map[string]value.Value {
	out := make(map[string]value.Value)
	for _, ruleName := range rules {
		for k, v := range e.byRule[ruleName] {
			out[k] = v
		}
	}
	return out
}
