package operator

import (
	"regexp"
	"testing"

	"github.com/corvidsec/matchengine/accessor"
	"github.com/corvidsec/matchengine/value"
)

func fieldOperand(path ...string) Operand {
	a := accessor.NewEventField(path)
	return AccessorOperand(a)
}

func lit(v value.Value) Operand { return ConstantOperand(v) }

func TestAndOrShortCircuit(t *testing.T) {
	ev := value.Map(map[string]value.Value{
		"type":    value.String("email"),
		"payload": value.Map(map[string]value.Value{"body": value.String("other")}),
	})
	typeAccessor := AccessorOperand(accessor.NewEventField([]string{"type"}))
	op := And(
		Equal(typeAccessor, lit(value.String("email"))),
		Or(
			Equal(fieldOperand("payload", "body"), lit(value.String("something"))),
			Equal(fieldOperand("payload", "body"), lit(value.String("other"))),
		),
	)
	if !op.Eval(ev, nil, "") {
		t.Fatal("expected match")
	}
}

func TestEqualNumericCoercion(t *testing.T) {
	op := Equal(lit(value.Int(1)), lit(value.Float(1.0)))
	if !op.Eval(value.Null(), nil, "") {
		t.Fatal("1 should equal 1.0")
	}
}

func TestMissingOperandIsFalse(t *testing.T) {
	ev := value.Map(map[string]value.Value{"type": value.String("email")})
	op := Equal(fieldOperand("payload", "body"), lit(value.String("x")))
	if op.Eval(ev, nil, "") {
		t.Fatal("missing operand must yield false")
	}
}

func TestCrossTypeOrderingFalse(t *testing.T) {
	op := Gt(lit(value.Int(1)), lit(value.String("a")))
	if op.Eval(value.Null(), nil, "") {
		t.Fatal("cross-type ordering must yield false")
	}
}

func TestRegexOperator(t *testing.T) {
	re := regexp.MustCompile(`^[0-9]+$`)
	ev := value.Map(map[string]value.Value{"payload": value.Map(map[string]value.Value{"n": value.String("123")})})
	op := Regex(re, fieldOperand("payload", "n"))
	if !op.Eval(ev, nil, "") {
		t.Fatal("expected regex match")
	}
}

func TestRegexNonStringTargetIsFalse(t *testing.T) {
	re := regexp.MustCompile(`.*`)
	op := Regex(re, lit(value.Int(1)))
	if op.Eval(value.Null(), nil, "") {
		t.Fatal("non-string target must yield false")
	}
}

func TestContainOperator(t *testing.T) {
	op := Contain(lit(value.Array([]value.Value{value.Int(1), value.Int(2)})), lit(value.Int(2)))
	if !op.Eval(value.Null(), nil, "") {
		t.Fatal("expected containment")
	}
}
