package compiler

import (
	"fmt"

	"github.com/corvidsec/matchengine/interpolator"
	"github.com/corvidsec/matchengine/rule"
	"github.com/corvidsec/matchengine/value"
)

// compilePayloadNode turns a generic decoded JSON/YAML value into a
// rule.PayloadNode, compiling every string leaf into an interpolator
// template.
func compilePayloadNode(raw any, path string) (rule.PayloadNode, error) {
	switch v := raw.(type) {
	case nil:
		return rule.PayloadNode{Kind: rule.PayloadNull}, nil
	case bool:
		return rule.PayloadNode{Kind: rule.PayloadBool, Bool: v}, nil
	case string:
		tpl, err := interpolator.Compile(v)
		if err != nil {
			return rule.PayloadNode{}, newError(InvalidAccessor, path, "%v", err)
		}
		return rule.PayloadNode{Kind: rule.PayloadString, Template: tpl}, nil
	case float64, int, int64:
		return rule.PayloadNode{Kind: rule.PayloadNumber, Number: value.FromAny(v)}, nil
	case []any:
		children := make([]rule.PayloadNode, len(v))
		for i, elem := range v {
			c, err := compilePayloadNode(elem, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return rule.PayloadNode{}, err
			}
			children[i] = c
		}
		return rule.PayloadNode{Kind: rule.PayloadArray, Array: children}, nil
	case map[string]any:
		children := make(map[string]rule.PayloadNode, len(v))
		for k, elem := range v {
			c, err := compilePayloadNode(elem, fmt.Sprintf("%s.%s", path, k))
			if err != nil {
				return rule.PayloadNode{}, err
			}
			children[k] = c
		}
		return rule.PayloadNode{Kind: rule.PayloadMap, Map: children}, nil
	case map[interface{}]interface{}:
		children := make(map[string]rule.PayloadNode, len(v))
		for k, elem := range v {
			ks := fmt.Sprintf("%v", k)
			c, err := compilePayloadNode(elem, fmt.Sprintf("%s.%s", path, ks))
			if err != nil {
				return rule.PayloadNode{}, err
			}
			children[ks] = c
		}
		return rule.PayloadNode{Kind: rule.PayloadMap, Map: children}, nil
	default:
		return rule.PayloadNode{}, newError(MissingField, path, "unsupported payload leaf type %T", raw)
	}
}
