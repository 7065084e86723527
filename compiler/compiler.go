// Package compiler builds an immutable tree.Node from the wire-format
// config.MatcherConfigDto, validating names, regexes, accessors, and
// cross-rule variable references along the way. A successful Compile
// yields a tree ready to be evaluated any number of times, concurrently,
// by the matcher package.
package compiler

import (
	"fmt"

	"github.com/corvidsec/matchengine/config"
	"github.com/corvidsec/matchengine/rule"
	"github.com/corvidsec/matchengine/tree"
)

// Compile builds the processing tree rooted at dto. The root may be an
// implicit filter at the caller's discretion; this function compiles
// exactly the node it is given.
func Compile(dto config.MatcherConfigDto) (tree.Node, error) {
	return compileNode(dto, "root")
}

func compileNode(dto config.MatcherConfigDto, path string) (tree.Node, error) {
	switch dto.Type {
	case "Filter":
		return compileFilter(dto, path)
	case "Ruleset":
		return compileRuleset(dto, path)
	default:
		return tree.Node{}, newError(MissingField, path, "unknown processing tree node type %q", dto.Type)
	}
}

func compileFilter(dto config.MatcherConfigDto, path string) (tree.Node, error) {
	if dto.Name != "" && !isValidName(dto.Name) {
		return tree.Node{}, newError(InvalidName, path, "filter name %q must match [A-Za-z0-9_]+", dto.Name)
	}

	filterOp, err := compileOperator(dto.Filter.Filter, path+"/filter")
	if err != nil {
		return tree.Node{}, err
	}

	children := make([]tree.Node, len(dto.Nodes))
	seen := make(map[string]bool, len(dto.Nodes))
	for i, childDto := range dto.Nodes {
		childPath := fmt.Sprintf("%s/%s", path, nodeLabel(childDto, i))
		if childDto.Name != "" {
			if seen[childDto.Name] {
				return tree.Node{}, newError(InvalidName, childPath, "sibling name %q is not unique", childDto.Name)
			}
			seen[childDto.Name] = true
		}
		child, err := compileNode(childDto, childPath)
		if err != nil {
			return tree.Node{}, err
		}
		children[i] = child
	}

	return tree.NewFilterNode(tree.FilterNode{
		Name:        dto.Name,
		Description: dto.Filter.Description,
		Active:      dto.Filter.Active,
		Filter:      filterOp,
		Children:    children,
	}), nil
}

func compileRuleset(dto config.MatcherConfigDto, path string) (tree.Node, error) {
	if !isValidName(dto.Name) {
		return tree.Node{}, newError(InvalidName, path, "ruleset name %q must match [A-Za-z0-9_]+", dto.Name)
	}

	rules := make([]rule.Rule, len(dto.Rules))
	declared := make(map[string][]string, len(dto.Rules))
	seen := make(map[string]bool, len(dto.Rules))
	for i, ruleDto := range dto.Rules {
		rulePath := fmt.Sprintf("%s/%s", path, ruleDto.Name)
		if seen[ruleDto.Name] {
			return tree.Node{}, newError(InvalidName, rulePath, "rule name %q is not unique within ruleset %q", ruleDto.Name, dto.Name)
		}
		seen[ruleDto.Name] = true

		compiled, err := compileRule(ruleDto, rulePath, declared)
		if err != nil {
			return tree.Node{}, err
		}
		rules[i] = compiled
		declared[compiled.Name] = compiled.VariableNames()
	}

	return tree.NewRulesetNode(tree.RulesetNode{Name: dto.Name, Rules: rules}), nil
}

func nodeLabel(dto config.MatcherConfigDto, i int) string {
	if dto.Name != "" {
		return dto.Name
	}
	return fmt.Sprintf("nodes[%d]", i)
}
