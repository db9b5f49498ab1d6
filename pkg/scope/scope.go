// Package scope carries the per-operator binding-structure metadata a
// scope-resolution pass consumes. The rewriting engine itself never
// inspects it; it only loads, validates and hands it on.
package scope

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BindPair declares that the importer child evaluates within the scope of
// the bindings exported by the exporter child.
type BindPair struct {
	Exporter int `yaml:"exporter"`
	Importer int `yaml:"importer"`
}

// ScopeRule is the static binding declaration for one operator: which
// child positions export their bindings outward, and which children see
// which other child's bindings.
type ScopeRule struct {
	Exports []int      `yaml:"exports,omitempty"`
	Binds   []BindPair `yaml:"binds,omitempty"`
}

// ScopeRuleset maps an operator name to its scope rule.
type ScopeRuleset map[string]ScopeRule

func (r ScopeRule) Validate(op string) error {
	for _, i := range r.Exports {
		if i < 0 {
			return fmt.Errorf("scope rule %q: export position %d is negative", op, i)
		}
	}
	for _, pair := range r.Binds {
		if pair.Exporter < 0 || pair.Importer < 0 {
			return fmt.Errorf("scope rule %q: bind pair (%d, %d) has a negative position", op, pair.Exporter, pair.Importer)
		}
		if pair.Exporter == pair.Importer {
			return fmt.Errorf("scope rule %q: child %d cannot be in its own scope", op, pair.Exporter)
		}
	}
	return nil
}

// ScopeConfig represents the top-level structure of a YAML scope ruleset.
type ScopeConfig struct {
	Name  string               `yaml:"name,omitempty"`
	Rules map[string]ScopeRule `yaml:"rules"`
}

// ToRuleset validates the configuration and returns the ruleset.
func (sc *ScopeConfig) ToRuleset() (ScopeRuleset, error) {
	ruleset := make(ScopeRuleset, len(sc.Rules))
	for op, rule := range sc.Rules {
		if err := rule.Validate(op); err != nil {
			return nil, err
		}
		ruleset[op] = rule
	}
	return ruleset, nil
}

// LoadScopeConfig loads a scope ruleset configuration from a YAML file.
func LoadScopeConfig(filename string) (*ScopeConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return LoadScopeConfigFromString(string(data))
}

// LoadScopeConfigFromString loads a ScopeConfig from a YAML string.
func LoadScopeConfigFromString(yamlContent string) (*ScopeConfig, error) {
	var scopeConfig ScopeConfig
	if err := yaml.Unmarshal([]byte(yamlContent), &scopeConfig); err != nil {
		return nil, err
	}
	return &scopeConfig, nil
}
