// Package value implements the tagged runtime value used throughout the
// matcher: null, bool, number, string, array and map, plus the structural
// equality, ordering and containment rules the engine evaluates against.
package value

import (
	"fmt"
	"sort"
	"strconv"
)

// Kind discriminates the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a tagged union over the six variants of the data model. The zero
// Value is Null.
type Value struct {
	kind  Kind
	b     bool
	n     float64
	isInt bool // true when n was constructed from an integral source
	s     string
	arr   []Value
	m     map[string]Value
}

func Null() Value                 { return Value{kind: KindNull} }
func Bool(b bool) Value            { return Value{kind: KindBool, b: b} }
func String(s string) Value        { return Value{kind: KindString, s: s} }

// Int builds a Number that round-trips through interpolation without a
// decimal point, preserving its integer shape.
func Int(i int64) Value { return Value{kind: KindNumber, n: float64(i), isInt: true} }

// Float builds a Number from a floating-point source value.
func Float(f float64) Value {
	v := Value{kind: KindNumber, n: f}
	if f == float64(int64(f)) {
		v.isInt = true
	}
	return v
}

func Array(vs []Value) Value {
	cp := make([]Value, len(vs))
	copy(cp, vs)
	return Value{kind: KindArray, arr: cp}
}

func Map(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindMap, m: cp}
}

func (v Value) Kind() Kind    { return v.kind }
func (v Value) IsNull() bool  { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.n, true
}

// IsIntegral reports whether a Number's source value was integral.
func (v Value) IsIntegral() bool { return v.kind == KindNumber && v.isInt }

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// Get performs a single-segment lookup on a Map value; present is false for
// any other Kind or a missing key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	child, ok := v.m[key]
	return child, ok
}

// FromAny converts a generically-decoded JSON/YAML value (as produced by
// encoding/json or gopkg.in/yaml.v3 unmarshaling into interface{}) into a
// Value. Unrecognized types become Null.
func FromAny(a any) Value {
	switch t := a.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case float64:
		return Float(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case []any:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = FromAny(e)
		}
		return Array(out)
	case map[string]any:
		out := make(map[string]Value, len(t))
		for k, e := range t {
			out[k] = FromAny(e)
		}
		return Map(out)
	// gopkg.in/yaml.v3 decodes mapping nodes into map[string]interface{}
	// when the target is interface{}, but guard map[interface{}]interface{}
	// from older decoders too.
	case map[interface{}]interface{}:
		out := make(map[string]Value, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = FromAny(e)
		}
		return Map(out)
	default:
		return Null()
	}
}

// ToAny converts a Value back into a generic tree of bool/float64/string/
// []any/map[string]any suitable for json.Marshal.
func ToAny(v Value) any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = ToAny(e)
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, e := range v.m {
			out[k] = ToAny(e)
		}
		return out
	default:
		return nil
	}
}

// FormatNumber renders a Number preserving its integral shape.
func FormatNumber(v Value) (string, bool) {
	n, ok := v.AsNumber()
	if !ok {
		return "", false
	}
	if v.isInt {
		return strconv.FormatInt(int64(n), 10), true
	}
	return strconv.FormatFloat(n, 'g', -1, 64), true
}

// sortedKeys is used by String() for deterministic debug output; map
// iteration order is otherwise irrelevant.
func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		s, _ := FormatNumber(v)
		return s
	case KindString:
		return strconv.Quote(v.s)
	case KindArray:
		s := "["
		for i, e := range v.arr {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + "]"
	case KindMap:
		s := "{"
		for i, k := range sortedKeys(v.m) {
			if i > 0 {
				s += ", "
			}
			s += strconv.Quote(k) + ": " + v.m[k].String()
		}
		return s + "}"
	default:
		return "<invalid value>"
	}
}
