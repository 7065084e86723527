// Package rule implements the compiled Rule and its action payload
// templates.
package rule

import (
	"github.com/corvidsec/matchengine/extractor"
	"github.com/corvidsec/matchengine/operator"
)

// With is one named entry of the WITH clause. A slice (rather than a Go
// map) preserves declared order, since the wire format's maps don't
// guarantee one.
type With struct {
	Name      string
	Extractor extractor.Extractor
}

// Rule is the compiled (WHERE, WITH, actions) triple plus metadata.
type Rule struct {
	Name            string
	Description     string
	ContinueOnMatch bool
	Active          bool
	Where           *operator.Operator // nil means "always true"
	With            []With
	Actions         []ActionTemplate
}

// ActionTemplate is the compiled {id, payload} action: every string leaf
// of Payload is a compiled interpolator.Template.
type ActionTemplate struct {
	ID      string
	Payload PayloadNode
}

// VariableNames reports the WITH variable names this rule declares, in
// declared order — used by the compiler to validate later rules'
// "_variables.RULE_NAME.NAME" references.
func (r Rule) VariableNames() []string {
	names := make([]string, len(r.With))
	for i, w := range r.With {
		names[i] = w.Name
	}
	return names
}
