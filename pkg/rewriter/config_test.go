package rewriter

import (
	"strings"
	"testing"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/term"
)

func TestLoadRulesConfigFromString(t *testing.T) {
	yamlContent := `
name: test-rules
rules:
  - op: and
    cases:
      - lhs:
          surf:
            op: and
            args:
              - pvar: {name: a}
              - pvar: {name: b}
        rhs:
          core:
            op: if
            args:
              - ref: a
              - ref: b
              - prim: {bool: false}
`
	cfg, err := LoadRulesConfigFromString(yamlContent)
	if err != nil {
		t.Fatalf("Failed to parse rules: %v", err)
	}
	if cfg.Name != "test-rules" {
		t.Errorf("Expected name test-rules, got %q", cfg.Name)
	}
	rules, err := cfg.ToRules()
	if err != nil {
		t.Fatalf("Failed to compile rules: %v", err)
	}
	cases, present := rules["and"]
	if !present || len(cases) != 1 {
		t.Fatalf("Expected one case for and, got %d", len(cases))
	}
	lhs, ok := cases[0].Lhs.(*term.PSurf)
	if !ok || lhs.Op != "and" || len(lhs.Args) != 2 {
		t.Errorf("Unexpected lhs %s", term.PatternString(cases[0].Lhs))
	}
}

func TestToRulesRejectsDuplicateOperator(t *testing.T) {
	yamlContent := `
rules:
  - op: f
    cases:
      - lhs: {surf: {op: f}}
        rhs: {core: {op: g}}
  - op: f
    cases:
      - lhs: {surf: {op: f}}
        rhs: {core: {op: h}}
`
	cfg, err := LoadRulesConfigFromString(yamlContent)
	if err != nil {
		t.Fatalf("Failed to parse rules: %v", err)
	}
	if _, err := cfg.ToRules(); err == nil {
		t.Fatal("Expected a duplicate operator to be rejected")
	}
}

func TestToRulesRejectsEmptyRule(t *testing.T) {
	yamlContent := `
rules:
  - op: f
    cases: []
`
	cfg, err := LoadRulesConfigFromString(yamlContent)
	if err != nil {
		t.Fatalf("Failed to parse rules: %v", err)
	}
	if _, err := cfg.ToRules(); err == nil {
		t.Fatal("Expected a rule without cases to be rejected")
	}
}

func TestToRulesRejectsFreshOnMatchSide(t *testing.T) {
	yamlContent := `
rules:
  - op: f
    cases:
      - lhs:
          fresh:
            names:
              - name: t
            body: {ref: t}
        rhs: {core: {op: g}}
`
	cfg, err := LoadRulesConfigFromString(yamlContent)
	if err != nil {
		t.Fatalf("Failed to parse rules: %v", err)
	}
	_, err = cfg.ToRules()
	if err == nil {
		t.Fatal("Expected fresh items on the lhs to be rejected")
	}
	if !strings.Contains(err.Error(), "f/0") {
		t.Errorf("Expected the error to name the offending case, got %q", err.Error())
	}
}

func TestToRulesRejectsMetafunctionOnMatchSide(t *testing.T) {
	yamlContent := `
rules:
  - op: f
    cases:
      - lhs:
          surf:
            op: f
            args:
              - meta: {op: concat}
        rhs: {core: {op: g}}
`
	cfg, err := LoadRulesConfigFromString(yamlContent)
	if err != nil {
		t.Fatalf("Failed to parse rules: %v", err)
	}
	if _, err := cfg.ToRules(); err == nil {
		t.Fatal("Expected a metafunction on the lhs to be rejected")
	}
}
