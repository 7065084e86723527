// Package extractor implements the regex-based value producers bound to
// WITH-clause variables.
package extractor

import (
	"regexp"

	"github.com/corvidsec/matchengine/accessor"
	"github.com/corvidsec/matchengine/value"
)

// Extractor binds a single named extraction: resolve Source to a string,
// search for the first match of Regex, and select the capture at
// GroupIndex (0 = whole match).
type Extractor struct {
	Source     accessor.Accessor
	Regex      *regexp.Regexp
	GroupIndex int
}

// Extract resolves Source, matches Regex against it, and returns the
// captured substring at GroupIndex (tagged as a String Value), or
// ok=false if any step fails: the source doesn't resolve to a string, the
// regex doesn't match, or the requested group didn't participate in the
// match.
func (e Extractor) Extract(eventValue value.Value, env accessor.Environment, currentRuleName string) (value.Value, bool) {
	v, ok := e.Source.Resolve(eventValue, env, currentRuleName)
	if !ok {
		return value.Value{}, false
	}
	s, ok := v.AsString()
	if !ok {
		return value.Value{}, false
	}

	loc := e.Regex.FindStringSubmatchIndex(s)
	if loc == nil {
		return value.Value{}, false
	}
	idx := e.GroupIndex
	if idx < 0 || idx*2+1 >= len(loc) {
		return value.Value{}, false
	}
	start, end := loc[idx*2], loc[idx*2+1]
	if start < 0 || end < 0 {
		// The group exists in the pattern but did not participate in this match.
		return value.Value{}, false
	}
	return value.String(s[start:end]), true
}
