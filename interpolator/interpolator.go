// Package interpolator compiles a string literal containing "${…}"
// placeholders into a renderer. A template that is exactly one bare
// accessor preserves the accessor's Value type instead of coercing to
// string.
package interpolator

import (
	"fmt"
	"strings"

	"github.com/corvidsec/matchengine/accessor"
	"github.com/corvidsec/matchengine/value"
)

type chunkKind int

const (
	chunkLiteral chunkKind = iota
	chunkAccessor
)

type chunk struct {
	kind chunkKind
	text string
	acc  accessor.Accessor
}

// Template is a compiled interpolation template.
type Template struct {
	bare   *accessor.Accessor
	chunks []chunk
}

// Compile parses s into a Template. Accessor bodies are parsed with
// accessor.Parse; a malformed "${…}" expression is a build-time error.
func Compile(s string) (Template, error) {
	if body, ok := accessor.BareBody(s); ok {
		acc, err := accessor.Parse(body)
		if err != nil {
			return Template{}, err
		}
		return Template{bare: &acc}, nil
	}

	var chunks []chunk
	i := 0
	for i < len(s) {
		start := strings.Index(s[i:], "${")
		if start < 0 {
			chunks = append(chunks, chunk{kind: chunkLiteral, text: s[i:]})
			break
		}
		start += i
		if start > i {
			chunks = append(chunks, chunk{kind: chunkLiteral, text: s[i:start]})
		}
		end := strings.IndexByte(s[start+2:], '}')
		if end < 0 {
			return Template{}, fmt.Errorf("unterminated accessor expression in %q", s)
		}
		end += start + 2
		body := s[start+2 : end]
		acc, err := accessor.Parse(body)
		if err != nil {
			return Template{}, err
		}
		chunks = append(chunks, chunk{kind: chunkAccessor, acc: acc})
		i = end + 1
	}
	return Template{chunks: chunks}, nil
}

// Render evaluates the template against the event and current rule's
// environment. A bare single-accessor template returns the resolved value
// unchanged and fails only when it is missing; in any other template a
// Null/Array/Map resolution or a missing accessor fails the whole template.
func (t Template) Render(eventValue value.Value, env accessor.Environment, currentRuleName string) (value.Value, error) {
	if t.bare != nil {
		v, ok := t.bare.Resolve(eventValue, env, currentRuleName)
		if !ok {
			return value.Value{}, fmt.Errorf("accessor resolved to missing")
		}
		return v, nil
	}

	var sb strings.Builder
	for _, c := range t.chunks {
		if c.kind == chunkLiteral {
			sb.WriteString(c.text)
			continue
		}
		v, ok := c.acc.Resolve(eventValue, env, currentRuleName)
		if !ok {
			return value.Value{}, fmt.Errorf("accessor resolved to missing")
		}
		s, err := stringifyScalar(v)
		if err != nil {
			return value.Value{}, err
		}
		sb.WriteString(s)
	}
	return value.String(sb.String()), nil
}

// Accessors reports every accessor referenced by the template, in the
// order they appear, for build-time reference validation (e.g. checking
// "_variables.RULE.NAME" against the rules declared so far).
func (t Template) Accessors() []accessor.Accessor {
	if t.bare != nil {
		return []accessor.Accessor{*t.bare}
	}
	var out []accessor.Accessor
	for _, c := range t.chunks {
		if c.kind == chunkAccessor {
			out = append(out, c.acc)
		}
	}
	return out
}

func stringifyScalar(v value.Value) (string, error) {
	switch v.Kind() {
	case value.KindString:
		s, _ := v.AsString()
		return s, nil
	case value.KindNumber:
		s, _ := value.FormatNumber(v)
		return s, nil
	case value.KindBool:
		b, _ := v.AsBool()
		if b {
			return "true", nil
		}
		return "false", nil
	default:
		return "", fmt.Errorf("cannot interpolate a %s value", v.Kind())
	}
}
