package compiler

import (
	"strings"

	"github.com/corvidsec/matchengine/accessor"
	"github.com/corvidsec/matchengine/operator"
	"github.com/corvidsec/matchengine/value"
)

// compileOperand resolves one OperatorDto.first/second/target slot: a
// string of the exact form "${…}" compiles to a single accessor; anything
// else, including a plain string, is a literal Value. A string containing
// "${" that isn't a single bare accessor is rejected rather than taken as
// a literal — the operand form has no template interpolation step, so a
// multi-accessor or mixed-text string here is an authoring mistake, not a
// literal that happens to contain braces.
func compileOperand(raw any, path string) (operator.Operand, error) {
	if s, ok := raw.(string); ok {
		if body, isBare := accessor.BareBody(s); isBare {
			acc, err := accessor.Parse(body)
			if err != nil {
				return operator.Operand{}, newError(InvalidAccessor, path, "%v", err)
			}
			return operator.AccessorOperand(acc), nil
		}
		if strings.Contains(s, "${") {
			return operator.Operand{}, newError(InvalidAccessor, path,
				"%q is not a single bare \"${…}\" accessor; operands do not support multi-accessor templates", s)
		}
	}
	return operator.ConstantOperand(value.FromAny(raw)), nil
}

// compileBareAccessor parses a string that must be exactly one "${…}"
// accessor with no surrounding text, used for extractor sources and
// regex operator targets.
func compileBareAccessor(raw any, path string) (accessor.Accessor, error) {
	s, ok := raw.(string)
	if !ok {
		return accessor.Accessor{}, newError(InvalidAccessor, path, "expected a bare \"${…}\" accessor string, got %T", raw)
	}
	body, isBare := accessor.BareBody(s)
	if !isBare {
		return accessor.Accessor{}, newError(InvalidAccessor, path, "expected a single bare \"${…}\" accessor, got %q", s)
	}
	acc, err := accessor.Parse(body)
	if err != nil {
		return accessor.Accessor{}, newError(InvalidAccessor, path, "%v", err)
	}
	return acc, nil
}
