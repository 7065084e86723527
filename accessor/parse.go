package accessor

import (
	"fmt"
	"strings"
)

// Parse compiles the body of a "${…}" expression (the text between the
// braces, exclusive) into an Accessor, per the grammar:
//
//	event               -> the whole event
//	event.a.b           -> EventField(["a","b"])
//	_variables.NAME     -> current rule's variable NAME
//	_variables.R.NAME   -> variable NAME published by rule R
//
// Path segments are separated by '.'; a segment containing a dot must be
// wrapped in double quotes, and '"' is not permitted inside a quoted
// segment.
func Parse(body string) (Accessor, error) {
	segs, err := splitSegments(body)
	if err != nil {
		return Accessor{}, err
	}
	if len(segs) == 0 {
		return Accessor{}, fmt.Errorf("empty accessor expression")
	}
	switch segs[0] {
	case "event":
		if len(segs) == 1 {
			return NewEvent(), nil
		}
		return NewEventField(segs[1:]), nil
	case "_variables":
		switch len(segs) {
		case 2:
			return NewExtractedVar("", segs[1]), nil
		case 3:
			return NewExtractedVar(segs[1], segs[2]), nil
		default:
			return Accessor{}, fmt.Errorf("invalid _variables accessor %q: expected _variables.NAME or _variables.RULE.NAME", body)
		}
	default:
		return Accessor{}, fmt.Errorf("unknown accessor root %q in %q: must start with \"event\" or \"_variables\"", segs[0], body)
	}
}

// splitSegments splits a dot path, honoring double-quoted segments that may
// themselves contain literal dots.
func splitSegments(body string) ([]string, error) {
	var segs []string
	var cur strings.Builder
	inQuote := false
	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case c == '"':
			if !inQuote && cur.Len() == 0 {
				inQuote = true
				i++
				continue
			}
			if inQuote {
				inQuote = false
				i++
				continue
			}
			return nil, fmt.Errorf("unexpected quote at position %d in %q", i, body)
		case c == '.' && !inQuote:
			segs = append(segs, cur.String())
			cur.Reset()
			i++
		default:
			cur.WriteByte(c)
			i++
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quoted segment in %q", body)
	}
	segs = append(segs, cur.String())
	for _, s := range segs {
		if s == "" {
			return nil, fmt.Errorf("empty path segment in %q", body)
		}
	}
	return segs, nil
}

// BareBody reports whether s is exactly one "${…}" expression with no
// surrounding literal text, returning its inner body. Used by operator
// operand parsing, which (per the "Accessor/template compilation" design
// note) accepts only a bare literal or a single accessor — never a
// multi-accessor template.
func BareBody(s string) (body string, ok bool) {
	if !strings.HasPrefix(s, "${") || !strings.HasSuffix(s, "}") {
		return "", false
	}
	if strings.Count(s, "${") != 1 || strings.Count(s, "}") != 1 {
		return "", false
	}
	return s[2 : len(s)-1], true
}
