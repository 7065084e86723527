package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadJSON decodes a processing-tree root node from a JSON document.
func LoadJSON(b []byte) (MatcherConfigDto, error) {
	var dto MatcherConfigDto
	if err := json.Unmarshal(b, &dto); err != nil {
		return MatcherConfigDto{}, fmt.Errorf("decode matcher config: %w", err)
	}
	return dto, nil
}

// LoadYAML decodes a processing-tree root node from a YAML rule file, the
// on-disk authoring format loaders hand to the compiler.
func LoadYAML(b []byte) (MatcherConfigDto, error) {
	var dto MatcherConfigDto
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return MatcherConfigDto{}, fmt.Errorf("decode matcher config: %w", err)
	}
	return dto, nil
}
