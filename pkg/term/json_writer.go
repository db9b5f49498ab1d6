package term

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/common"
)

// TermConfig is the wire representation of a term, used for JSON
// interchange between pipeline stages. Opaque host values cannot cross a
// process boundary and have no wire form.
type TermConfig struct {
	Prim   *PrimConfig       `yaml:"prim,omitempty" json:"prim,omitempty"`
	Core   *TermNodeConfig   `yaml:"core,omitempty" json:"core,omitempty"`
	Surf   *SurfNodeConfig   `yaml:"surf,omitempty" json:"surf,omitempty"`
	Aux    *TermNodeConfig   `yaml:"aux,omitempty" json:"aux,omitempty"`
	Var    *VarConfig        `yaml:"var,omitempty" json:"var,omitempty"`
	List   *TermListConfig   `yaml:"list,omitempty" json:"list,omitempty"`
	Option *TermOptionConfig `yaml:"option,omitempty" json:"option,omitempty"`
	Tag    *TermTagConfig    `yaml:"tag,omitempty" json:"tag,omitempty"`
	Focus  *TermConfig       `yaml:"focus,omitempty" json:"focus,omitempty"`
}

type TermNodeConfig struct {
	Op   string       `yaml:"op" json:"op"`
	Args []TermConfig `yaml:"args,omitempty" json:"args,omitempty"`
}

type SurfNodeConfig struct {
	Op       string       `yaml:"op" json:"op"`
	FromUser bool         `yaml:"fromUser,omitempty" json:"fromUser,omitempty"`
	Args     []TermConfig `yaml:"args,omitempty" json:"args,omitempty"`
}

type VarConfig struct {
	Name *NameConfig `yaml:"name,omitempty" json:"name,omitempty"`
	Atom *AtomConfig `yaml:"atom,omitempty" json:"atom,omitempty"`
}

type NameConfig struct {
	Loc common.Loc `yaml:"loc" json:"loc"`
	ID  string     `yaml:"id" json:"id"`
}

type AtomConfig struct {
	Hint   string `yaml:"hint" json:"hint"`
	Serial uint64 `yaml:"serial" json:"serial"`
}

type TermListConfig struct {
	Items []TermConfig `yaml:"items" json:"items"`
}

type TermOptionConfig struct {
	None bool        `yaml:"none,omitempty" json:"none,omitempty"`
	Some *TermConfig `yaml:"some,omitempty" json:"some,omitempty"`
}

type TermTagConfig struct {
	Lhs  PatternConfig `yaml:"lhs" json:"lhs"`
	Rhs  PatternConfig `yaml:"rhs" json:"rhs"`
	Body TermConfig    `yaml:"body" json:"body"`
}

// TermToConfig converts a term to its wire representation. Terms carrying
// opaque host values cannot be serialized.
func TermToConfig(t Term) (*TermConfig, error) {
	switch node := t.(type) {
	case *PrimTerm:
		return &TermConfig{Prim: PrimToConfig(node.Prim)}, nil
	case *CoreTerm:
		args, err := termsToConfigs(node.Args)
		if err != nil {
			return nil, err
		}
		return &TermConfig{Core: &TermNodeConfig{Op: node.Op, Args: args}}, nil
	case *SurfTerm:
		args, err := termsToConfigs(node.Args)
		if err != nil {
			return nil, err
		}
		return &TermConfig{Surf: &SurfNodeConfig{Op: node.Op, FromUser: node.FromUser, Args: args}}, nil
	case *AuxTerm:
		args, err := termsToConfigs(node.Args)
		if err != nil {
			return nil, err
		}
		return &TermConfig{Aux: &TermNodeConfig{Op: node.Op, Args: args}}, nil
	case *VarTerm:
		switch v := node.Var.(type) {
		case *Name:
			return &TermConfig{Var: &VarConfig{Name: &NameConfig{Loc: v.Loc, ID: v.Name}}}, nil
		case *Atom:
			return &TermConfig{Var: &VarConfig{Atom: &AtomConfig{Hint: v.Hint, Serial: v.Serial}}}, nil
		}
		return nil, fmt.Errorf("unknown variable variant: %T", node.Var)
	case *ListTerm:
		items, err := termsToConfigs(node.Items)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []TermConfig{}
		}
		return &TermConfig{List: &TermListConfig{Items: items}}, nil
	case *OptionTerm:
		if node.Item == nil {
			return &TermConfig{Option: &TermOptionConfig{None: true}}, nil
		}
		some, err := TermToConfig(node.Item)
		if err != nil {
			return nil, err
		}
		return &TermConfig{Option: &TermOptionConfig{Some: some}}, nil
	case *TagTerm:
		body, err := TermToConfig(node.Body)
		if err != nil {
			return nil, err
		}
		return &TermConfig{Tag: &TermTagConfig{
			Lhs:  *PatternToConfig(node.Lhs),
			Rhs:  *PatternToConfig(node.Rhs),
			Body: *body,
		}}, nil
	case *FocusTerm:
		body, err := TermToConfig(node.Body)
		if err != nil {
			return nil, err
		}
		return &TermConfig{Focus: body}, nil
	case *ValueTerm:
		return nil, fmt.Errorf("opaque host value has no wire representation")
	}
	return nil, fmt.Errorf("unknown term variant: %T", t)
}

func termsToConfigs(ts []Term) ([]TermConfig, error) {
	if len(ts) == 0 {
		return nil, nil
	}
	configs := make([]TermConfig, len(ts))
	for i, t := range ts {
		c, err := TermToConfig(t)
		if err != nil {
			return nil, err
		}
		configs[i] = *c
	}
	return configs, nil
}

// ToTerm converts a wire representation back into a term.
func (tc *TermConfig) ToTerm() (Term, error) {
	count := 0
	if tc.Prim != nil {
		count++
	}
	if tc.Core != nil {
		count++
	}
	if tc.Surf != nil {
		count++
	}
	if tc.Aux != nil {
		count++
	}
	if tc.Var != nil {
		count++
	}
	if tc.List != nil {
		count++
	}
	if tc.Option != nil {
		count++
	}
	if tc.Tag != nil {
		count++
	}
	if tc.Focus != nil {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("term config must have exactly one variant, got %d", count)
	}
	switch {
	case tc.Prim != nil:
		prim, err := tc.Prim.ToPrim()
		if err != nil {
			return nil, err
		}
		return &PrimTerm{Prim: prim}, nil
	case tc.Core != nil:
		args, err := configsToTerms(tc.Core.Args)
		if err != nil {
			return nil, fmt.Errorf("in core node %q: %w", tc.Core.Op, err)
		}
		return &CoreTerm{Op: tc.Core.Op, Args: args}, nil
	case tc.Surf != nil:
		args, err := configsToTerms(tc.Surf.Args)
		if err != nil {
			return nil, fmt.Errorf("in surface node %q: %w", tc.Surf.Op, err)
		}
		return &SurfTerm{Op: tc.Surf.Op, FromUser: tc.Surf.FromUser, Args: args}, nil
	case tc.Aux != nil:
		args, err := configsToTerms(tc.Aux.Args)
		if err != nil {
			return nil, fmt.Errorf("in auxiliary node %q: %w", tc.Aux.Op, err)
		}
		return &AuxTerm{Op: tc.Aux.Op, Args: args}, nil
	case tc.Var != nil:
		if (tc.Var.Name == nil) == (tc.Var.Atom == nil) {
			return nil, fmt.Errorf("variable must be exactly one of name, atom")
		}
		if tc.Var.Name != nil {
			return &VarTerm{Var: &Name{Loc: tc.Var.Name.Loc, Name: tc.Var.Name.ID}}, nil
		}
		return &VarTerm{Var: &Atom{Hint: tc.Var.Atom.Hint, Serial: tc.Var.Atom.Serial}}, nil
	case tc.List != nil:
		items, err := configsToTerms(tc.List.Items)
		if err != nil {
			return nil, err
		}
		return &ListTerm{Items: items}, nil
	case tc.Option != nil:
		if tc.Option.None && tc.Option.Some != nil {
			return nil, fmt.Errorf("option term cannot be both none and some")
		}
		if tc.Option.Some == nil {
			return &OptionTerm{}, nil
		}
		item, err := tc.Option.Some.ToTerm()
		if err != nil {
			return nil, err
		}
		return &OptionTerm{Item: item}, nil
	case tc.Tag != nil:
		lhs, err := tc.Tag.Lhs.ToPattern()
		if err != nil {
			return nil, fmt.Errorf("in tag lhs: %w", err)
		}
		rhs, err := tc.Tag.Rhs.ToPattern()
		if err != nil {
			return nil, fmt.Errorf("in tag rhs: %w", err)
		}
		body, err := tc.Tag.Body.ToTerm()
		if err != nil {
			return nil, fmt.Errorf("in tag body: %w", err)
		}
		return &TagTerm{Lhs: lhs, Rhs: rhs, Body: body}, nil
	default:
		body, err := tc.Focus.ToTerm()
		if err != nil {
			return nil, err
		}
		return &FocusTerm{Body: body}, nil
	}
}

func configsToTerms(configs []TermConfig) ([]Term, error) {
	if len(configs) == 0 {
		return nil, nil
	}
	ts := make([]Term, len(configs))
	for i := range configs {
		t, err := configs[i].ToTerm()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		ts[i] = t
	}
	return ts, nil
}

// PrintTermJSON writes a term to output in its JSON wire form.
func PrintTermJSON(root Term, output io.Writer) error {
	config, err := TermToConfig(root)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(output)
	return encoder.Encode(config)
}

// ReadTermJSON reads a term from its JSON wire form.
func ReadTermJSON(input io.Reader) (Term, error) {
	var config TermConfig
	decoder := json.NewDecoder(input)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}
	return config.ToTerm()
}
