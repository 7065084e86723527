package rule

import (
	"fmt"

	"github.com/corvidsec/matchengine/accessor"
	"github.com/corvidsec/matchengine/interpolator"
	"github.com/corvidsec/matchengine/value"
)

// PayloadKind discriminates a PayloadNode's shape.
type PayloadKind int

const (
	PayloadNull PayloadKind = iota
	PayloadBool
	PayloadNumber
	PayloadString
	PayloadArray
	PayloadMap
)

// PayloadNode is one node of a compiled action payload template: a literal
// null/bool/number leaf, a compiled interpolator.Template for every string
// leaf (only string *values* are interpolated; map keys are literal), or
// an Array/Map of child nodes.
type PayloadNode struct {
	Kind     PayloadKind
	Bool     bool
	Number   value.Value
	Template interpolator.Template
	Array    []PayloadNode
	Map      map[string]PayloadNode
}

// Render walks the template, producing a Value. Any string-leaf
// interpolation failure fails the whole node (and so the whole action).
func (n PayloadNode) Render(eventValue value.Value, env accessor.Environment, currentRuleName string) (value.Value, error) {
	switch n.Kind {
	case PayloadNull:
		return value.Null(), nil
	case PayloadBool:
		return value.Bool(n.Bool), nil
	case PayloadNumber:
		return n.Number, nil
	case PayloadString:
		return n.Template.Render(eventValue, env, currentRuleName)
	case PayloadArray:
		out := make([]value.Value, len(n.Array))
		for i, c := range n.Array {
			v, err := c.Render(eventValue, env, currentRuleName)
			if err != nil {
				return value.Value{}, fmt.Errorf("array[%d]: %w", i, err)
			}
			out[i] = v
		}
		return value.Array(out), nil
	case PayloadMap:
		out := make(map[string]value.Value, len(n.Map))
		for k, c := range n.Map {
			v, err := c.Render(eventValue, env, currentRuleName)
			if err != nil {
				return value.Value{}, fmt.Errorf("field %q: %w", k, err)
			}
			out[k] = v
		}
		return value.Map(out), nil
	default:
		return value.Value{}, fmt.Errorf("invalid payload node kind %d", n.Kind)
	}
}
