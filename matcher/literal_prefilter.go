package matcher

import (
	"sync"

	ac "github.com/petar-dambovaliev/aho-corasick"

	"github.com/corvidsec/matchengine/accessor"
	"github.com/corvidsec/matchengine/operator"
	"github.com/corvidsec/matchengine/tree"
	"github.com/corvidsec/matchengine/value"
)

// literalPrefilter lets processRuleset skip a rule's WHERE/WITH evaluation
// entirely when the event provably cannot satisfy it, without changing
// any observable outcome. The gate is computed per rule from a
// conservative structural analysis and is provably sound: it only ever
// skips a rule whose WHERE cannot possibly be true for the event. A gate
// built from the union of every rule's literals instead would be cheaper
// to build but could produce false negatives for events that only
// satisfy a rule through a non-literal primitive such as Regex, so this
// one stays scoped to a single rule's recognized literal requirements.
type literalPrefilter struct {
	ac           *ac.AhoCorasick
	patternIndex map[string]int
	requirements map[string][]int // rule name -> required pattern indices (all must be present)
}

var prefilterCache sync.Map // *tree.RulesetNode -> *literalPrefilter

func prefilterFor(rs *tree.RulesetNode) *literalPrefilter {
	if cached, ok := prefilterCache.Load(rs); ok {
		return cached.(*literalPrefilter)
	}
	lp := buildLiteralPrefilter(rs)
	actual, _ := prefilterCache.LoadOrStore(rs, lp)
	return actual.(*literalPrefilter)
}

func buildLiteralPrefilter(rs *tree.RulesetNode) *literalPrefilter {
	lp := &literalPrefilter{
		patternIndex: make(map[string]int),
		requirements: make(map[string][]int),
	}
	var patterns []string

	intern := func(s string) int {
		if idx, ok := lp.patternIndex[s]; ok {
			return idx
		}
		idx := len(patterns)
		patterns = append(patterns, s)
		lp.patternIndex[s] = idx
		return idx
	}

	for _, r := range rs.Rules {
		if !r.Active || r.Where == nil {
			continue
		}
		literals := necessaryLiterals(r.Where)
		if len(literals) == 0 {
			continue
		}
		indices := make([]int, len(literals))
		for i, lit := range literals {
			indices[i] = intern(lit)
		}
		lp.requirements[r.Name] = indices
	}

	if len(patterns) == 0 {
		return lp
	}
	builder := ac.NewAhoCorasickBuilder(ac.Opts{MatchKind: ac.LeftMostLongestMatch})
	built := builder.Build(patterns)
	lp.ac = &built
	return lp
}

// necessaryLiterals returns literal strings that must appear verbatim
// somewhere in the event for op to evaluate true. It only recognizes the
// patterns it can prove sound: an Equal leaf between an EventField accessor
// and a string constant (the field's resolved value, if it equals the
// literal, is itself a scalar leaf of the event and so will be found by
// scanPresence), and the And of any mix of such leaves and other subtrees
// (unrecognized subtrees simply contribute no literals, never a false
// requirement). Anything else — Or, Regex, Contain, comparisons, accessors
// outside the event (e.g. extracted variables) — contributes nothing,
// which keeps the result sound even though it may be incomplete.
func necessaryLiterals(op *operator.Operator) []string {
	if op == nil {
		return nil
	}
	switch op.Kind {
	case operator.KindAnd:
		var out []string
		for i := range op.Children {
			out = append(out, necessaryLiterals(&op.Children[i])...)
		}
		return out
	case operator.KindEqual:
		if lit, ok := equalLiteral(op.First, op.Second); ok {
			return []string{lit}
		}
		if lit, ok := equalLiteral(op.Second, op.First); ok {
			return []string{lit}
		}
		return nil
	default:
		return nil
	}
}

func equalLiteral(fieldSide, literalSide operator.Operand) (string, bool) {
	if fieldSide.Accessor == nil || fieldSide.Accessor.Kind != accessor.KindEventField {
		return "", false
	}
	if literalSide.Constant == nil {
		return "", false
	}
	s, ok := literalSide.Constant.AsString()
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// allows reports whether ruleName's necessary literals (if any were found)
// are all present in the event. A rule with no recorded requirement is
// always allowed through — it means the analysis found nothing provable,
// not that the rule is unconditionally satisfied.
func (lp *literalPrefilter) allows(ruleName string, present map[int]bool) bool {
	indices, ok := lp.requirements[ruleName]
	if !ok {
		return true
	}
	for _, idx := range indices {
		if !present[idx] {
			return false
		}
	}
	return true
}

// scanPresence walks the event's scalar leaves and reports which
// interned pattern indices appear verbatim somewhere in the event.
func (lp *literalPrefilter) scanPresence(eventValue value.Value) map[int]bool {
	present := make(map[int]bool)
	if lp.ac == nil {
		return present
	}
	walkScalarLeaves(eventValue, func(text string) {
		for _, m := range lp.ac.FindAll(text) {
			present[m.Pattern()] = true
		}
	})
	return present
}

func walkScalarLeaves(v value.Value, visit func(string)) {
	switch v.Kind() {
	case value.KindString:
		s, _ := v.AsString()
		visit(s)
	case value.KindNumber:
		if s, ok := value.FormatNumber(v); ok {
			visit(s)
		}
	case value.KindBool:
		b, _ := v.AsBool()
		if b {
			visit("true")
		} else {
			visit("false")
		}
	case value.KindArray:
		arr, _ := v.AsArray()
		for _, e := range arr {
			walkScalarLeaves(e, visit)
		}
	case value.KindMap:
		m, _ := v.AsMap()
		for _, e := range m {
			walkScalarLeaves(e, visit)
		}
	}
}
