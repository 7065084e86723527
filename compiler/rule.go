package compiler

import (
	"fmt"
	"regexp"

	"github.com/corvidsec/matchengine/accessor"
	"github.com/corvidsec/matchengine/config"
	"github.com/corvidsec/matchengine/extractor"
	"github.com/corvidsec/matchengine/rule"
)

// compileRule builds one rule.Rule from its RuleDto. declared is the set
// of (rule name -> declared variable names) for every rule already
// compiled earlier in the same ruleset, used to validate
// "_variables.RULE_NAME.NAME" references.
func compileRule(dto config.RuleDto, path string, declared map[string][]string) (rule.Rule, error) {
	if !isValidName(dto.Name) {
		return rule.Rule{}, newError(InvalidName, path, "rule name %q must match [A-Za-z0-9_]+", dto.Name)
	}

	where, err := compileOperator(dto.Constraint.Where, path+"/WHERE")
	if err != nil {
		return rule.Rule{}, err
	}

	with := make([]rule.With, len(dto.Constraint.With))
	for i, entry := range dto.Constraint.With {
		w, err := compileExtractor(entry, fmt.Sprintf("%s/WITH/%s", path, entry.Name))
		if err != nil {
			return rule.Rule{}, err
		}
		with[i] = w
	}

	actions := make([]rule.ActionTemplate, len(dto.Actions))
	for i, a := range dto.Actions {
		payload, err := compilePayloadNode(a.Payload, fmt.Sprintf("%s/actions[%d]", path, i))
		if err != nil {
			return rule.Rule{}, err
		}
		actions[i] = rule.ActionTemplate{ID: a.ID, Payload: payload}
	}

	continueOnMatch := true
	if dto.Continue != nil {
		continueOnMatch = *dto.Continue
	}

	r := rule.Rule{
		Name:            dto.Name,
		Description:     dto.Description,
		ContinueOnMatch: continueOnMatch,
		Active:          dto.Active,
		Where:           where,
		With:            with,
		Actions:         actions,
	}

	if err := validateVariableReferences(r, path, declared); err != nil {
		return rule.Rule{}, err
	}
	return r, nil
}

func compileExtractor(entry config.NamedExtractorDto, path string) (rule.With, error) {
	if !isValidName(entry.Name) {
		return rule.With{}, newError(InvalidName, path, "variable name %q must match [A-Za-z0-9_]+", entry.Name)
	}
	src, err := compileBareAccessor(entry.Extractor.From, path+"/from")
	if err != nil {
		return rule.With{}, err
	}
	re, err := regexp.Compile(entry.Extractor.Regex.Match)
	if err != nil {
		return rule.With{}, newError(InvalidRegex, path+"/regex", "%v", err)
	}
	return rule.With{
		Name: entry.Name,
		Extractor: extractor.Extractor{
			Source:     src,
			Regex:      re,
			GroupIndex: entry.Extractor.Regex.GroupMatchIdx,
		},
	}, nil
}

// validateVariableReferences checks every "_variables.RULE_NAME.NAME"
// accessor reachable from r against declared. The two-segment
// "_variables.NAME" form is always syntactically valid here — it refers
// to the current rule's own WITH clause, whose runtime presence is a
// per-event concern, not a build-time one.
func validateVariableReferences(r rule.Rule, path string, declared map[string][]string) error {
	var accessors []accessor.Accessor
	if r.Where != nil {
		accessors = append(accessors, r.Where.Accessors()...)
	}
	for _, w := range r.With {
		accessors = append(accessors, w.Extractor.Source)
	}
	for _, a := range r.Actions {
		accessors = append(accessors, collectPayloadAccessors(a.Payload)...)
	}

	for _, acc := range accessors {
		if acc.Kind != accessor.KindExtractedVar || acc.RuleName == "" {
			continue
		}
		names, ok := declared[acc.RuleName]
		if !ok {
			return newError(UnknownVariableReference, path,
				"\"_variables.%s.%s\" references rule %q, which has not been declared earlier in this ruleset",
				acc.RuleName, acc.VarName, acc.RuleName)
		}
		found := false
		for _, n := range names {
			if n == acc.VarName {
				found = true
				break
			}
		}
		if !found {
			return newError(UnknownVariableReference, path,
				"\"_variables.%s.%s\" references a variable rule %q does not declare",
				acc.RuleName, acc.VarName, acc.RuleName)
		}
	}
	return nil
}

func collectPayloadAccessors(n rule.PayloadNode) []accessor.Accessor {
	switch n.Kind {
	case rule.PayloadString:
		return n.Template.Accessors()
	case rule.PayloadArray:
		var out []accessor.Accessor
		for _, c := range n.Array {
			out = append(out, collectPayloadAccessors(c)...)
		}
		return out
	case rule.PayloadMap:
		var out []accessor.Accessor
		for _, c := range n.Map {
			out = append(out, collectPayloadAccessors(c)...)
		}
		return out
	default:
		return nil
	}
}
