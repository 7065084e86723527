// Package accessor implements the compiled form of the "${…}" DSL used to
// reference event fields and previously-extracted ruleset variables.
package accessor

import "github.com/corvidsec/matchengine/value"

// Kind discriminates the four accessor variants.
type Kind int

const (
	KindConstant Kind = iota
	KindEvent
	KindEventField
	KindExtractedVar
)

// Accessor is a compiled reference into the event or the current
// extraction environment. The zero Accessor is an invalid placeholder;
// always construct one via Parse or the New* helpers.
type Accessor struct {
	Kind     Kind
	Constant value.Value
	Path     []string // EventField: dot-path segments, already unquoted
	RuleName string   // ExtractedVar: "" means the current rule
	VarName  string   // ExtractedVar
}

func NewConstant(v value.Value) Accessor { return Accessor{Kind: KindConstant, Constant: v} }
func NewEvent() Accessor                 { return Accessor{Kind: KindEvent} }
func NewEventField(path []string) Accessor {
	return Accessor{Kind: KindEventField, Path: append([]string(nil), path...)}
}
func NewExtractedVar(ruleName, varName string) Accessor {
	return Accessor{Kind: KindExtractedVar, RuleName: ruleName, VarName: varName}
}

// Environment resolves a ruleset-scoped variable by the name of the rule
// that published it and its variable name. Implemented by the matcher
// package's per-evaluation environment; kept as an interface here so the
// compiled IR packages never import the evaluator.
type Environment interface {
	Get(ruleName, varName string) (value.Value, bool)
}

// Resolve evaluates the accessor against the event (already projected to a
// Value via event.Event.AsValue) and the current rule's environment.
// currentRuleName is substituted for accessors of the two-segment
// "_variables.NAME" form, which always refer to the rule being evaluated.
func (a Accessor) Resolve(eventValue value.Value, env Environment, currentRuleName string) (value.Value, bool) {
	switch a.Kind {
	case KindConstant:
		return a.Constant, true
	case KindEvent:
		return eventValue, true
	case KindEventField:
		return walkPath(eventValue, a.Path)
	case KindExtractedVar:
		ruleName := a.RuleName
		if ruleName == "" {
			ruleName = currentRuleName
		}
		if env == nil {
			return value.Value{}, false
		}
		return env.Get(ruleName, a.VarName)
	default:
		return value.Value{}, false
	}
}

func walkPath(v value.Value, path []string) (value.Value, bool) {
	current := v
	for _, seg := range path {
		m, ok := current.AsMap()
		if !ok {
			return value.Value{}, false
		}
		next, ok := m[seg]
		if !ok {
			return value.Value{}, false
		}
		current = next
	}
	return current, true
}
