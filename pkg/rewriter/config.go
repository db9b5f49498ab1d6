package rewriter

import (
	"fmt"
	"os"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/term"
	"gopkg.in/yaml.v3"
)

// RulesConfig represents the top-level structure of a YAML rule table.
type RulesConfig struct {
	Name        string       `yaml:"name,omitempty"`
	Description string       `yaml:"description,omitempty"`
	Rules       []RuleConfig `yaml:"rules"`
}

// RuleConfig is the ordered alternation of rewrite cases for one operator.
type RuleConfig struct {
	Op    string           `yaml:"op"`
	Cases []RuleCaseConfig `yaml:"cases"`
}

// RuleCaseConfig is a single (lhs, rhs) case in authoring form.
type RuleCaseConfig struct {
	Lhs term.PatternConfig `yaml:"lhs"`
	Rhs term.PatternConfig `yaml:"rhs"`
}

// ToRules compiles the configuration into an executable rule table,
// validating each side as it goes.
func (rc *RulesConfig) ToRules() (DsRules, error) {
	rules := make(DsRules)
	for _, ruleConfig := range rc.Rules {
		if ruleConfig.Op == "" {
			return nil, fmt.Errorf("rule table %q: rule without an operator name", rc.Name)
		}
		if len(ruleConfig.Cases) == 0 {
			return nil, fmt.Errorf("rule table %q: rule %q has no cases", rc.Name, ruleConfig.Op)
		}
		if _, dup := rules[ruleConfig.Op]; dup {
			return nil, fmt.Errorf("rule table %q: rule %q declared twice", rc.Name, ruleConfig.Op)
		}
		cases := make([]DsRuleCase, 0, len(ruleConfig.Cases))
		for i, caseConfig := range ruleConfig.Cases {
			lhs, err := caseConfig.Lhs.ToPattern()
			if err != nil {
				return nil, fmt.Errorf("error in rule \"%s/%d\" lhs: %w", ruleConfig.Op, i, err)
			}
			if err := ValidateMatchSide(lhs); err != nil {
				return nil, fmt.Errorf("error in rule \"%s/%d\" lhs: %w", ruleConfig.Op, i, err)
			}
			rhs, err := caseConfig.Rhs.ToPattern()
			if err != nil {
				return nil, fmt.Errorf("error in rule \"%s/%d\" rhs: %w", ruleConfig.Op, i, err)
			}
			cases = append(cases, DsRuleCase{Lhs: lhs, Rhs: rhs})
		}
		rules[ruleConfig.Op] = cases
	}
	return rules, nil
}

// ValidateMatchSide rejects generation-only constructs on a rule's lhs, so
// that the authoring error surfaces when the table is compiled rather than
// mid-rewrite.
func ValidateMatchSide(p term.Pattern) error {
	switch patt := p.(type) {
	case *term.PPrim, *term.PPVar, *term.PDrop, *term.PVar:
		return nil
	case *term.PCore:
		return validateMatchSideAll(patt.Args)
	case *term.PSurf:
		return validateMatchSideAll(patt.Args)
	case *term.PAux:
		return validateMatchSideAll(patt.Args)
	case *term.PList:
		return validateMatchSideSeq(patt.Seq)
	case *term.POption:
		if patt.Item == nil {
			return nil
		}
		return ValidateMatchSide(patt.Item)
	case *term.PTag:
		return ValidateMatchSide(patt.Body)
	case *term.PBiject:
		return ValidateMatchSide(patt.Body)
	case *term.PMeta:
		return fmt.Errorf("metafunction %q is not allowed on the match side", patt.Op)
	case *term.PFresh:
		return fmt.Errorf("fresh items are not allowed on the match side")
	case *term.PCapture:
		return fmt.Errorf("capture items are not allowed on the match side")
	}
	return fmt.Errorf("unknown pattern variant %T", p)
}

func validateMatchSideAll(patts []term.Pattern) error {
	for _, p := range patts {
		if err := ValidateMatchSide(p); err != nil {
			return err
		}
	}
	return nil
}

func validateMatchSideSeq(seq term.SeqPattern) error {
	switch s := seq.(type) {
	case *term.SeqEmpty:
		return nil
	case *term.SeqCons:
		if err := ValidateMatchSide(s.First); err != nil {
			return err
		}
		return validateMatchSideSeq(s.Rest)
	case *term.SeqEllipsis:
		return ValidateMatchSide(s.Item)
	case *term.SeqEllipsisList:
		return validateMatchSideAll(s.Items)
	}
	return fmt.Errorf("unknown sequence pattern variant %T", seq)
}

// LoadRulesConfig loads a rule table configuration from a YAML file.
func LoadRulesConfig(filename string) (*RulesConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return LoadRulesConfigFromString(string(data))
}

// LoadRulesConfigFromString loads a RulesConfig from a YAML string.
func LoadRulesConfigFromString(yamlContent string) (*RulesConfig, error) {
	var rulesConfig RulesConfig
	if err := yaml.Unmarshal([]byte(yamlContent), &rulesConfig); err != nil {
		return nil, err
	}
	return &rulesConfig, nil
}
