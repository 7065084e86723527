// Package config defines the wire-format configuration DTOs: the
// JSON/YAML shapes a loader decodes before handing them to the compiler.
// Nothing in this package validates or compiles; it only describes shape.
package config

// Value is the tagged-value wire shape: any JSON/YAML scalar, array, or
// object, decoded generically and interpreted by the compiler against the
// typed value.Value model.
type Value = any

// OperatorDto is the tagged union of a WHERE/filter condition tree,
// discriminated by Type.
type OperatorDto struct {
	Type string `json:"type" yaml:"type"`

	// AND / OR
	Operators []OperatorDto `json:"operators,omitempty" yaml:"operators,omitempty"`

	// contain | equal | ge | gt | le | lt
	First  Value `json:"first,omitempty" yaml:"first,omitempty"`
	Second Value `json:"second,omitempty" yaml:"second,omitempty"`

	// regex
	Regex  string `json:"regex,omitempty" yaml:"regex,omitempty"`
	Target Value  `json:"target,omitempty" yaml:"target,omitempty"`
}

// ExtractorRegexDto is the nested {match, group_match_idx} of an
// ExtractorDto.
type ExtractorRegexDto struct {
	Match        string `json:"match" yaml:"match"`
	GroupMatchIdx int    `json:"group_match_idx" yaml:"group_match_idx"`
}

// ExtractorDto is a single named entry of a rule's WITH clause.
type ExtractorDto struct {
	From  string            `json:"from" yaml:"from"`
	Regex ExtractorRegexDto `json:"regex" yaml:"regex"`
}

// NamedExtractorDto pairs a WITH entry with its declared name. The
// compiler assembles these into an ordered slice (never a Go map) so the
// declared order survives decoding, since a plain map loses it.
type NamedExtractorDto struct {
	Name      string       `json:"name" yaml:"name"`
	Extractor ExtractorDto `json:"extractor" yaml:"extractor"`
}

// ConstraintDto is a rule's {WHERE, WITH} pair.
type ConstraintDto struct {
	Where *OperatorDto        `json:"WHERE" yaml:"WHERE"`
	With  []NamedExtractorDto `json:"WITH" yaml:"WITH"`
}

// ActionDto is one {id, payload} entry of RuleDto.Actions.
type ActionDto struct {
	ID      string `json:"id" yaml:"id"`
	Payload Value  `json:"payload" yaml:"payload"`
}

// RuleDto is one entry of a RulesetDto. Continue is a pointer so a rule
// authored without a "continue" field can be told apart from one that
// explicitly sets it to false; the compiler defaults an absent Continue
// to true.
type RuleDto struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	Continue    *bool         `json:"continue,omitempty" yaml:"continue,omitempty"`
	Active      bool          `json:"active" yaml:"active"`
	Constraint  ConstraintDto `json:"constraint" yaml:"constraint"`
	Actions     []ActionDto   `json:"actions" yaml:"actions"`
}

// FilterDto is the filter-specific payload of a MatcherConfigDto node.
type FilterDto struct {
	Description string       `json:"description" yaml:"description"`
	Active      bool         `json:"active" yaml:"active"`
	Filter      *OperatorDto `json:"filter" yaml:"filter"`
}

// MatcherConfigDto is the tagged union of a processing-tree node,
// discriminated by Type ("Filter" or "Ruleset").
type MatcherConfigDto struct {
	Type string `json:"type" yaml:"type"`

	// Filter
	Name   string             `json:"name" yaml:"name"`
	Filter FilterDto          `json:"filter,omitempty" yaml:"filter,omitempty"`
	Nodes  []MatcherConfigDto `json:"nodes,omitempty" yaml:"nodes,omitempty"`

	// Ruleset
	Rules []RuleDto `json:"rules,omitempty" yaml:"rules,omitempty"`
}
