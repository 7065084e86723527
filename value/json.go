package value

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON renders a Value the way the rest of the engine's wire format
// does: numbers, strings, bools, arrays and maps collapse to their plain
// JSON equivalents, and Null becomes JSON null. This lets ProcessedNode and
// the other result types carrying Value fields round-trip through
// encoding/json without a bespoke DTO layer.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToAny(v))
}

// UnmarshalJSON is the inverse of MarshalJSON, built on the same FromAny
// conversion the YAML/JSON rule loaders use.
func (v *Value) UnmarshalJSON(b []byte) error {
	var a any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&a); err != nil {
		return err
	}
	*v = FromAny(normalizeJSONNumbers(a))
	return nil
}

// normalizeJSONNumbers converts the json.Number leaves produced by a
// UseNumber decode into int64/float64 so FromAny sees the same shapes it
// sees from a plain decode, while still distinguishing integral literals
// (so IsIntegral/FormatNumber round-trip "42" rather than "42.0").
func normalizeJSONNumbers(a any) any {
	switch t := a.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeJSONNumbers(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeJSONNumbers(e)
		}
		return out
	default:
		return a
	}
}
