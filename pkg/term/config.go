package term

import (
	"fmt"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/common"
)

// PatternConfig is the authoring representation of a pattern. It is used
// for YAML unmarshaling of rule tables and for JSON interchange of tag
// annotations, and is then compiled to a concrete Pattern.
type PatternConfig struct {
	Prim    *PrimConfig          `yaml:"prim,omitempty" json:"prim,omitempty"`
	Core    *NodeConfig          `yaml:"core,omitempty" json:"core,omitempty"`
	Surf    *NodeConfig          `yaml:"surf,omitempty" json:"surf,omitempty"`
	Aux     *NodeConfig          `yaml:"aux,omitempty" json:"aux,omitempty"`
	List    *SeqConfig           `yaml:"list,omitempty" json:"list,omitempty"`
	Option  *OptionPatternConfig `yaml:"option,omitempty" json:"option,omitempty"`
	Tag     *TagPatternConfig    `yaml:"tag,omitempty" json:"tag,omitempty"`
	PVar    *PVarConfig          `yaml:"pvar,omitempty" json:"pvar,omitempty"`
	Drop    *DropConfig          `yaml:"drop,omitempty" json:"drop,omitempty"`
	Ref     *string              `yaml:"ref,omitempty" json:"ref,omitempty"`
	Meta    *MetaConfig          `yaml:"meta,omitempty" json:"meta,omitempty"`
	Biject  *BijectConfig        `yaml:"biject,omitempty" json:"biject,omitempty"`
	Fresh   *FreshConfig         `yaml:"fresh,omitempty" json:"fresh,omitempty"`
	Capture *FreshConfig         `yaml:"capture,omitempty" json:"capture,omitempty"`
}

// PrimConfig is the authoring representation of a literal leaf.
type PrimConfig struct {
	Str  *string     `yaml:"str,omitempty" json:"str,omitempty"`
	Num  *float64    `yaml:"num,omitempty" json:"num,omitempty"`
	Bool *bool       `yaml:"bool,omitempty" json:"bool,omitempty"`
	Loc  *common.Loc `yaml:"loc,omitempty" json:"loc,omitempty"`
}

// NodeConfig is the authoring representation of an operator-tagged pattern.
type NodeConfig struct {
	Op   string          `yaml:"op" json:"op"`
	Args []PatternConfig `yaml:"args,omitempty" json:"args,omitempty"`
}

// SeqConfig is the authoring representation of a sequence pattern: a fixed
// prefix of items, optionally closed by an ellipsis or an ellipsis-list
// tail.
type SeqConfig struct {
	Items        []PatternConfig     `yaml:"items,omitempty" json:"items,omitempty"`
	Ellipsis     *EllipsisConfig     `yaml:"ellipsis,omitempty" json:"ellipsis,omitempty"`
	EllipsisList *EllipsisListConfig `yaml:"ellipsisList,omitempty" json:"ellipsisList,omitempty"`
}

type EllipsisConfig struct {
	Item  PatternConfig `yaml:"item" json:"item"`
	Label string        `yaml:"label" json:"label"`
}

type EllipsisListConfig struct {
	Items []PatternConfig `yaml:"items" json:"items"`
	Label string          `yaml:"label" json:"label"`
}

type OptionPatternConfig struct {
	None bool           `yaml:"none,omitempty" json:"none,omitempty"`
	Some *PatternConfig `yaml:"some,omitempty" json:"some,omitempty"`
}

type TagPatternConfig struct {
	Lhs  PatternConfig `yaml:"lhs" json:"lhs"`
	Rhs  PatternConfig `yaml:"rhs" json:"rhs"`
	Body PatternConfig `yaml:"body" json:"body"`
}

type PVarConfig struct {
	Name   string   `yaml:"name" json:"name"`
	Labels []string `yaml:"labels,omitempty" json:"labels,omitempty"`
	Type   string   `yaml:"type,omitempty" json:"type,omitempty"`
}

type DropConfig struct {
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
}

type MetaConfig struct {
	Op   string          `yaml:"op" json:"op"`
	Args []PatternConfig `yaml:"args,omitempty" json:"args,omitempty"`
}

type BijectConfig struct {
	Op   string        `yaml:"op" json:"op"`
	Body PatternConfig `yaml:"body" json:"body"`
}

type FreshConfig struct {
	Names []FreshItemConfig `yaml:"names" json:"names"`
	Body  PatternConfig     `yaml:"body" json:"body"`
}

type FreshItemConfig struct {
	Name     *string              `yaml:"name,omitempty" json:"name,omitempty"`
	Ellipsis *FreshEllipsisConfig `yaml:"ellipsis,omitempty" json:"ellipsis,omitempty"`
}

type FreshEllipsisConfig struct {
	Item  FreshItemConfig `yaml:"item" json:"item"`
	Label string          `yaml:"label" json:"label"`
}

func (pc *PatternConfig) Validate() error {
	// The variants are mutually exclusive; exactly one must be set.
	count := 0
	if pc.Prim != nil {
		count++
	}
	if pc.Core != nil {
		count++
	}
	if pc.Surf != nil {
		count++
	}
	if pc.Aux != nil {
		count++
	}
	if pc.List != nil {
		count++
	}
	if pc.Option != nil {
		count++
	}
	if pc.Tag != nil {
		count++
	}
	if pc.PVar != nil {
		count++
	}
	if pc.Drop != nil {
		count++
	}
	if pc.Ref != nil {
		count++
	}
	if pc.Meta != nil {
		count++
	}
	if pc.Biject != nil {
		count++
	}
	if pc.Fresh != nil {
		count++
	}
	if pc.Capture != nil {
		count++
	}
	if count == 0 {
		return fmt.Errorf("no variant specified in pattern config")
	}
	if count > 1 {
		return fmt.Errorf("multiple variants specified in pattern config; only one allowed")
	}
	return nil
}

// ToPattern compiles an authoring config to a concrete Pattern.
func (pc *PatternConfig) ToPattern() (Pattern, error) {
	if err := pc.Validate(); err != nil {
		return nil, err
	}
	switch {
	case pc.Prim != nil:
		prim, err := pc.Prim.ToPrim()
		if err != nil {
			return nil, err
		}
		return &PPrim{Prim: prim}, nil
	case pc.Core != nil:
		args, err := toPatterns(pc.Core.Args)
		if err != nil {
			return nil, fmt.Errorf("in core node %q: %w", pc.Core.Op, err)
		}
		return &PCore{Op: pc.Core.Op, Args: args}, nil
	case pc.Surf != nil:
		args, err := toPatterns(pc.Surf.Args)
		if err != nil {
			return nil, fmt.Errorf("in surface node %q: %w", pc.Surf.Op, err)
		}
		return &PSurf{Op: pc.Surf.Op, Args: args}, nil
	case pc.Aux != nil:
		args, err := toPatterns(pc.Aux.Args)
		if err != nil {
			return nil, fmt.Errorf("in auxiliary node %q: %w", pc.Aux.Op, err)
		}
		return &PAux{Op: pc.Aux.Op, Args: args}, nil
	case pc.List != nil:
		seq, err := pc.List.ToSeq()
		if err != nil {
			return nil, err
		}
		return &PList{Seq: seq}, nil
	case pc.Option != nil:
		if pc.Option.None && pc.Option.Some != nil {
			return nil, fmt.Errorf("option pattern cannot be both none and some")
		}
		if pc.Option.Some == nil {
			return &POption{}, nil
		}
		item, err := pc.Option.Some.ToPattern()
		if err != nil {
			return nil, err
		}
		return &POption{Item: item}, nil
	case pc.Tag != nil:
		lhs, err := pc.Tag.Lhs.ToPattern()
		if err != nil {
			return nil, fmt.Errorf("in tag lhs: %w", err)
		}
		rhs, err := pc.Tag.Rhs.ToPattern()
		if err != nil {
			return nil, fmt.Errorf("in tag rhs: %w", err)
		}
		body, err := pc.Tag.Body.ToPattern()
		if err != nil {
			return nil, fmt.Errorf("in tag body: %w", err)
		}
		return &PTag{Lhs: lhs, Rhs: rhs, Body: body}, nil
	case pc.PVar != nil:
		if pc.PVar.Name == "" {
			return nil, fmt.Errorf("pattern variable must have a name")
		}
		return &PPVar{Name: pc.PVar.Name, Labels: pc.PVar.Labels, Type: pc.PVar.Type}, nil
	case pc.Drop != nil:
		return &PDrop{Type: pc.Drop.Type}, nil
	case pc.Ref != nil:
		if *pc.Ref == "" {
			return nil, fmt.Errorf("variable reference must have a name")
		}
		return &PVar{Name: *pc.Ref}, nil
	case pc.Meta != nil:
		args, err := toPatterns(pc.Meta.Args)
		if err != nil {
			return nil, fmt.Errorf("in metafunction %q: %w", pc.Meta.Op, err)
		}
		return &PMeta{Op: pc.Meta.Op, Args: args}, nil
	case pc.Biject != nil:
		body, err := pc.Biject.Body.ToPattern()
		if err != nil {
			return nil, fmt.Errorf("in bijection %q: %w", pc.Biject.Op, err)
		}
		return &PBiject{Op: pc.Biject.Op, Body: body}, nil
	case pc.Fresh != nil:
		fresh, body, err := pc.Fresh.toFreshParts()
		if err != nil {
			return nil, err
		}
		return &PFresh{Fresh: fresh, Body: body}, nil
	case pc.Capture != nil:
		fresh, body, err := pc.Capture.toFreshParts()
		if err != nil {
			return nil, err
		}
		return &PCapture{Fresh: fresh, Body: body}, nil
	}
	return nil, fmt.Errorf("no variant specified in pattern config")
}

func toPatterns(configs []PatternConfig) ([]Pattern, error) {
	patts := make([]Pattern, len(configs))
	for i := range configs {
		p, err := configs[i].ToPattern()
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		patts[i] = p
	}
	return patts, nil
}

func (pc *PrimConfig) ToPrim() (Prim, error) {
	count := 0
	if pc.Str != nil {
		count++
	}
	if pc.Num != nil {
		count++
	}
	if pc.Bool != nil {
		count++
	}
	if pc.Loc != nil {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("prim config must have exactly one of str, num, bool, loc")
	}
	switch {
	case pc.Str != nil:
		return &StrPrim{Value: *pc.Str}, nil
	case pc.Num != nil:
		return &NumPrim{Value: *pc.Num}, nil
	case pc.Bool != nil:
		return &BoolPrim{Value: *pc.Bool}, nil
	default:
		return &LocPrim{Value: *pc.Loc}, nil
	}
}

func (sc *SeqConfig) ToSeq() (SeqPattern, error) {
	if sc.Ellipsis != nil && sc.EllipsisList != nil {
		return nil, fmt.Errorf("sequence config cannot have both ellipsis and ellipsisList tails")
	}
	var tail SeqPattern = &SeqEmpty{}
	if sc.Ellipsis != nil {
		if sc.Ellipsis.Label == "" {
			return nil, fmt.Errorf("ellipsis must have a label")
		}
		item, err := sc.Ellipsis.Item.ToPattern()
		if err != nil {
			return nil, fmt.Errorf("in ellipsis %q: %w", sc.Ellipsis.Label, err)
		}
		tail = &SeqEllipsis{Item: item, Label: sc.Ellipsis.Label}
	}
	if sc.EllipsisList != nil {
		if sc.EllipsisList.Label == "" {
			return nil, fmt.Errorf("ellipsisList must have a label")
		}
		items, err := toPatterns(sc.EllipsisList.Items)
		if err != nil {
			return nil, fmt.Errorf("in ellipsisList %q: %w", sc.EllipsisList.Label, err)
		}
		tail = &SeqEllipsisList{Items: items, Label: sc.EllipsisList.Label}
	}
	seq := tail
	for i := len(sc.Items) - 1; i >= 0; i-- {
		first, err := sc.Items[i].ToPattern()
		if err != nil {
			return nil, fmt.Errorf("sequence item %d: %w", i, err)
		}
		seq = &SeqCons{First: first, Rest: seq}
	}
	return seq, nil
}

func (fc *FreshConfig) toFreshParts() ([]FreshItem, Pattern, error) {
	if len(fc.Names) == 0 {
		return nil, nil, fmt.Errorf("fresh config must declare at least one name")
	}
	items := make([]FreshItem, len(fc.Names))
	for i := range fc.Names {
		item, err := fc.Names[i].ToFreshItem()
		if err != nil {
			return nil, nil, fmt.Errorf("fresh item %d: %w", i, err)
		}
		items[i] = item
	}
	body, err := fc.Body.ToPattern()
	if err != nil {
		return nil, nil, fmt.Errorf("in fresh body: %w", err)
	}
	return items, body, nil
}

func (fc *FreshItemConfig) ToFreshItem() (FreshItem, error) {
	if fc.Name != nil && fc.Ellipsis != nil {
		return nil, fmt.Errorf("fresh item cannot be both a name and an ellipsis")
	}
	if fc.Name != nil {
		if *fc.Name == "" {
			return nil, fmt.Errorf("fresh name must be non-empty")
		}
		return &FreshName{Name: *fc.Name}, nil
	}
	if fc.Ellipsis != nil {
		if fc.Ellipsis.Label == "" {
			return nil, fmt.Errorf("fresh ellipsis must have a label")
		}
		item, err := fc.Ellipsis.Item.ToFreshItem()
		if err != nil {
			return nil, err
		}
		return &FreshEllipsis{Item: item, Label: fc.Ellipsis.Label}, nil
	}
	return nil, fmt.Errorf("fresh item must be a name or an ellipsis")
}

// PatternToConfig converts a pattern back to its authoring representation,
// for serializing tag annotations.
func PatternToConfig(p Pattern) *PatternConfig {
	switch patt := p.(type) {
	case *PPrim:
		return &PatternConfig{Prim: PrimToConfig(patt.Prim)}
	case *PCore:
		return &PatternConfig{Core: &NodeConfig{Op: patt.Op, Args: fromPatterns(patt.Args)}}
	case *PSurf:
		return &PatternConfig{Surf: &NodeConfig{Op: patt.Op, Args: fromPatterns(patt.Args)}}
	case *PAux:
		return &PatternConfig{Aux: &NodeConfig{Op: patt.Op, Args: fromPatterns(patt.Args)}}
	case *PList:
		return &PatternConfig{List: seqToConfig(patt.Seq)}
	case *POption:
		if patt.Item == nil {
			return &PatternConfig{Option: &OptionPatternConfig{None: true}}
		}
		return &PatternConfig{Option: &OptionPatternConfig{Some: PatternToConfig(patt.Item)}}
	case *PTag:
		return &PatternConfig{Tag: &TagPatternConfig{
			Lhs:  *PatternToConfig(patt.Lhs),
			Rhs:  *PatternToConfig(patt.Rhs),
			Body: *PatternToConfig(patt.Body),
		}}
	case *PPVar:
		return &PatternConfig{PVar: &PVarConfig{Name: patt.Name, Labels: patt.Labels, Type: patt.Type}}
	case *PDrop:
		return &PatternConfig{Drop: &DropConfig{Type: patt.Type}}
	case *PVar:
		name := patt.Name
		return &PatternConfig{Ref: &name}
	case *PMeta:
		return &PatternConfig{Meta: &MetaConfig{Op: patt.Op, Args: fromPatterns(patt.Args)}}
	case *PBiject:
		return &PatternConfig{Biject: &BijectConfig{Op: patt.Op, Body: *PatternToConfig(patt.Body)}}
	case *PFresh:
		return &PatternConfig{Fresh: freshToConfig(patt.Fresh, patt.Body)}
	case *PCapture:
		return &PatternConfig{Capture: freshToConfig(patt.Fresh, patt.Body)}
	}
	panic(fmt.Sprintf("unknown pattern variant: %T", p))
}

func fromPatterns(patts []Pattern) []PatternConfig {
	configs := make([]PatternConfig, len(patts))
	for i, p := range patts {
		configs[i] = *PatternToConfig(p)
	}
	return configs
}

func PrimToConfig(p Prim) *PrimConfig {
	switch prim := p.(type) {
	case *StrPrim:
		v := prim.Value
		return &PrimConfig{Str: &v}
	case *NumPrim:
		v := prim.Value
		return &PrimConfig{Num: &v}
	case *BoolPrim:
		v := prim.Value
		return &PrimConfig{Bool: &v}
	case *LocPrim:
		v := prim.Value
		return &PrimConfig{Loc: &v}
	}
	panic(fmt.Sprintf("unknown prim variant: %T", p))
}

func seqToConfig(seq SeqPattern) *SeqConfig {
	config := &SeqConfig{}
	for {
		switch s := seq.(type) {
		case *SeqEmpty:
			return config
		case *SeqCons:
			config.Items = append(config.Items, *PatternToConfig(s.First))
			seq = s.Rest
		case *SeqEllipsis:
			config.Ellipsis = &EllipsisConfig{Item: *PatternToConfig(s.Item), Label: s.Label}
			return config
		case *SeqEllipsisList:
			config.EllipsisList = &EllipsisListConfig{Items: fromPatterns(s.Items), Label: s.Label}
			return config
		default:
			panic(fmt.Sprintf("unknown sequence pattern variant: %T", seq))
		}
	}
}

func freshToConfig(fresh []FreshItem, body Pattern) *FreshConfig {
	names := make([]FreshItemConfig, len(fresh))
	for i, item := range fresh {
		names[i] = freshItemToConfig(item)
	}
	return &FreshConfig{Names: names, Body: *PatternToConfig(body)}
}

func freshItemToConfig(item FreshItem) FreshItemConfig {
	switch f := item.(type) {
	case *FreshName:
		name := f.Name
		return FreshItemConfig{Name: &name}
	case *FreshEllipsis:
		return FreshItemConfig{Ellipsis: &FreshEllipsisConfig{Item: freshItemToConfig(f.Item), Label: f.Label}}
	}
	panic(fmt.Sprintf("unknown fresh item variant: %T", item))
}
