package matcher

import (
	"regexp"
	"testing"

	"github.com/corvidsec/matchengine/accessor"
	"github.com/corvidsec/matchengine/event"
	"github.com/corvidsec/matchengine/operator"
	"github.com/corvidsec/matchengine/rule"
	"github.com/corvidsec/matchengine/tree"
	"github.com/corvidsec/matchengine/value"
)

func TestLiteralPrefilterSkipsProvablyFalseRule(t *testing.T) {
	where := operator.Equal(
		operator.AccessorOperand(accessor.NewEventField([]string{"type"})),
		operator.ConstantOperand(value.String("email")),
	)
	rs := tree.RulesetNode{
		Name:  "r",
		Rules: []rule.Rule{{Name: "r1", Active: true, Where: &where}},
	}
	ev := event.New("trap", 1, nil)

	result := processRuleset(ev.AsValue(), &rs, Full)
	if result.Rules[0].Status != NotMatched {
		t.Fatalf("status = %s", result.Rules[0].Status)
	}
}

func TestLiteralPrefilterDoesNotMaskARealMatch(t *testing.T) {
	where := operator.Equal(
		operator.AccessorOperand(accessor.NewEventField([]string{"type"})),
		operator.ConstantOperand(value.String("email")),
	)
	rs := tree.RulesetNode{
		Name:  "r",
		Rules: []rule.Rule{{Name: "r1", Active: true, Where: &where}},
	}
	ev := event.New("email", 1, nil)

	result := processRuleset(ev.AsValue(), &rs, Full)
	if result.Rules[0].Status != Matched {
		t.Fatalf("status = %s", result.Rules[0].Status)
	}
}

func TestLiteralPrefilterNeverShortCircuitsUnrecognizedSubtrees(t *testing.T) {
	// A regex-based WHERE has no recognized literal requirement; the
	// prefilter must never prevent it from matching.
	re := regexp.MustCompile(`^em.*l$`)
	where := operator.Regex(re, operator.AccessorOperand(accessor.NewEventField([]string{"type"})))
	rs := tree.RulesetNode{
		Name:  "r",
		Rules: []rule.Rule{{Name: "r1", Active: true, Where: &where}},
	}
	ev := event.New("email", 1, nil)

	result := processRuleset(ev.AsValue(), &rs, Full)
	if result.Rules[0].Status != Matched {
		t.Fatalf("status = %s", result.Rules[0].Status)
	}
}

func TestNecessaryLiteralsUnionsAndChildren(t *testing.T) {
	where := operator.And(
		operator.Equal(operator.AccessorOperand(accessor.NewEventField([]string{"type"})), operator.ConstantOperand(value.String("email"))),
		operator.Equal(operator.AccessorOperand(accessor.NewEventField([]string{"payload", "body"})), operator.ConstantOperand(value.String("other"))),
	)
	got := necessaryLiterals(&where)
	if len(got) != 2 {
		t.Fatalf("got %v", got)
	}
}
