package operator

import (
	"github.com/corvidsec/matchengine/accessor"
	"github.com/corvidsec/matchengine/value"
)

// Eval walks the compiled tree against the event and the current rule's
// variable environment. And/Or short-circuit; any comparison whose
// operand resolves missing yields false; Regex with a non-string or
// missing target yields false.
func (o *Operator) Eval(eventValue value.Value, env accessor.Environment, currentRuleName string) bool {
	switch o.Kind {
	case KindAnd:
		for i := range o.Children {
			if !o.Children[i].Eval(eventValue, env, currentRuleName) {
				return false
			}
		}
		return true
	case KindOr:
		for i := range o.Children {
			if o.Children[i].Eval(eventValue, env, currentRuleName) {
				return true
			}
		}
		return false
	case KindContain:
		a, aok := o.First.Resolve(eventValue, env, currentRuleName)
		b, bok := o.Second.Resolve(eventValue, env, currentRuleName)
		if !aok || !bok {
			return false
		}
		return value.Contain(a, b)
	case KindEqual:
		a, aok := o.First.Resolve(eventValue, env, currentRuleName)
		b, bok := o.Second.Resolve(eventValue, env, currentRuleName)
		if !aok || !bok {
			return false
		}
		return value.Equal(a, b)
	case KindGe, KindGt, KindLe, KindLt:
		a, aok := o.First.Resolve(eventValue, env, currentRuleName)
		b, bok := o.Second.Resolve(eventValue, env, currentRuleName)
		if !aok || !bok {
			return false
		}
		cmp, ok := value.Compare(a, b)
		if !ok {
			return false
		}
		switch o.Kind {
		case KindGe:
			return cmp >= 0
		case KindGt:
			return cmp > 0
		case KindLe:
			return cmp <= 0
		default:
			return cmp < 0
		}
	case KindRegex:
		target, ok := o.Target.Resolve(eventValue, env, currentRuleName)
		if !ok {
			return false
		}
		s, ok := target.AsString()
		if !ok {
			return false
		}
		return o.Regex.MatchString(s)
	default:
		return false
	}
}
