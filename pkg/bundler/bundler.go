package bundler

import (
	"fmt"
	"strings"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/rewriter"
	"github.com/SeuperHakkerJa/pyret-lang/pkg/term"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Operator names the bundler understands in a unit term.
const (
	OpUnit        = "unit"
	OpDef         = "def"
	OpAnnotations = "annotations"
)

// Bundler desugars the definitions of a unit and writes them into a
// sqlite bundle, recording both the surface form and the desugared core
// form of each definition.
type Bundler struct {
	db          *gorm.DB
	rw          *rewriter.Rewriter
	rules       rewriter.DsRules
	annotations []struct {
		key   string
		value string
	}
}

// NewBundler creates a new bundler writing to the given database, using
// the given rewriter and rule table for desugaring.
func NewBundler(dbPath string, rw *rewriter.Rewriter, rules rewriter.DsRules) (*Bundler, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Bundler{
		db:          db,
		rw:          rw,
		rules:       rules,
		annotations: make([]struct{ key, value string }, 0),
	}, nil
}

// Migrate performs database migrations.
func (b *Bundler) Migrate() error {
	return Migrate(b.db)
}

// CheckMigration checks if the database schema is up to date.
func (b *Bundler) CheckMigration() (bool, error) {
	return CheckMigration(b.db)
}

// ProcessUnit desugars each definition of a unit term and adds the results
// to the bundle. A unit is an operator-tagged node named "unit" whose
// arguments are definitions and annotation groups.
func (b *Bundler) ProcessUnit(unit term.Term) error {
	op, args, ok := term.Operator(unit)
	if !ok || op != OpUnit {
		return fmt.Errorf("expected unit term, got %s", term.String(unit))
	}

	srcPath := unitSource(unit)

	for _, child := range args {
		childOp, _, ok := term.Operator(child)
		if !ok {
			return fmt.Errorf("unexpected top-level term: %s", term.String(child))
		}
		switch childOp {
		case OpAnnotations:
			// Process annotations and add to accumulating list.
			if err := b.processAnnotations(child); err != nil {
				return fmt.Errorf("failed to process annotations: %w", err)
			}

		case OpDef:
			if err := b.processDef(child, srcPath); err != nil {
				return fmt.Errorf("failed to process definition: %w", err)
			}

		default:
			// Ignore other nodes for now.
			fmt.Printf("Ignoring top-level term: %s\n", childOp)
		}
	}

	return nil
}

// processAnnotations extracts annotations and adds them to the accumulating
// list. Each annotation is a variable reference naming the annotation key.
func (b *Bundler) processAnnotations(annotationsTerm term.Term) error {
	_, args, _ := term.Operator(annotationsTerm)
	for _, child := range args {
		v, ok := child.(*term.VarTerm)
		if !ok {
			fmt.Println("Skipping annotation:", term.String(child))
			continue
		}
		key := v.Var.VarName()
		value := "" // Value is unused at present.
		b.annotations = append(b.annotations, struct{ key, value string }{key, value})
	}
	return nil
}

// processDef desugars one definition and inserts/updates the database.
func (b *Bundler) processDef(defTerm term.Term, srcPath string) error {
	_, args, _ := term.Operator(defTerm)
	if len(args) != 2 {
		return fmt.Errorf("definition must have exactly 2 arguments, got %d", len(args))
	}

	// First argument must be the defined variable.
	idTerm, ok := args[0].(*term.VarTerm)
	if !ok {
		return fmt.Errorf("expected variable, got %s", term.String(args[0]))
	}
	idName := idTerm.Var.VarName()

	// Second argument is the definition body, desugared here.
	body := args[1]
	surfaceJSON, err := termJSON(body)
	if err != nil {
		return fmt.Errorf("failed to serialize surface form of %q: %w", idName, err)
	}

	core, steps, err := b.rw.RewriteAll(body, b.rules, 0)
	if err != nil {
		return fmt.Errorf("failed to desugar %q: %w", idName, err)
	}
	coreJSON, err := termJSON(term.StripTags(core))
	if err != nil {
		return fmt.Errorf("failed to serialize core form of %q: %w", idName, err)
	}

	// Find all references to variables in the definition body.
	refs := findVariableReferences(body)

	binding := Binding{
		IdName:   idName,
		Surface:  surfaceJSON,
		Core:     coreJSON,
		Steps:    steps,
		FileName: srcPath,
	}

	// Upsert the depends-on relationships.
	for _, refName := range refs {
		if refName == idName {
			continue
		}
		dependency := DependsOn{
			IdName: idName,
			Needs:  refName,
		}
		if result := b.db.Save(&dependency); result.Error != nil {
			return fmt.Errorf("failed to save dependency relationship: %w", result.Error)
		}
	}

	if result := b.db.Save(&binding); result.Error != nil {
		return fmt.Errorf("failed to save binding: %w", result.Error)
	}

	// Process accumulated annotations.
	for _, ann := range b.annotations {
		annotation := Annotation{
			IdName:          idName,
			AnnotationKey:   ann.key,
			AnnotationValue: ann.value,
		}
		if result := b.db.Save(&annotation); result.Error != nil {
			return fmt.Errorf("failed to save annotation: %w", result.Error)
		}

		// An annotation key of "main" marks an entry point.
		if ann.key == "main" {
			entryPoint := EntryPoint{IdName: idName}
			if result := b.db.Save(&entryPoint); result.Error != nil {
				return fmt.Errorf("failed to save entry point: %w", result.Error)
			}
		}
	}

	// Clear annotations after processing.
	b.annotations = b.annotations[:0]

	return nil
}

// Close closes the database connection.
func (b *Bundler) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func termJSON(t term.Term) (string, error) {
	var sb strings.Builder
	if err := term.PrintTermJSON(t, &sb); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// unitSource extracts the source path of a unit from the location of the
// first source-written variable found inside it, or "" when none carries
// one.
func unitSource(unit term.Term) string {
	name, ok := firstName(unit)
	if !ok {
		return ""
	}
	return name.Loc.Source
}

func firstName(t term.Term) (*term.Name, bool) {
	switch node := t.(type) {
	case *term.VarTerm:
		if name, ok := node.Var.(*term.Name); ok {
			return name, true
		}
	case *term.CoreTerm:
		return firstNameIn(node.Args)
	case *term.SurfTerm:
		return firstNameIn(node.Args)
	case *term.AuxTerm:
		return firstNameIn(node.Args)
	case *term.ListTerm:
		return firstNameIn(node.Items)
	case *term.OptionTerm:
		if node.Item != nil {
			return firstName(node.Item)
		}
	case *term.TagTerm:
		return firstName(node.Body)
	case *term.FocusTerm:
		return firstName(node.Body)
	}
	return nil, false
}

func firstNameIn(ts []term.Term) (*term.Name, bool) {
	for _, t := range ts {
		if name, ok := firstName(t); ok {
			return name, true
		}
	}
	return nil, false
}

// findVariableReferences traverses a term and collects all unique variable
// names referenced in it, in first-occurrence order.
func findVariableReferences(t term.Term) []string {
	seen := make(map[string]bool)
	var references []string
	findVariableReferencesRecursive(t, &references, seen)
	return references
}

func findVariableReferencesRecursive(t term.Term, references *[]string, seen map[string]bool) {
	switch node := t.(type) {
	case *term.VarTerm:
		name := node.Var.VarName()
		if !seen[name] {
			seen[name] = true
			*references = append(*references, name)
		}
	case *term.CoreTerm:
		for _, arg := range node.Args {
			findVariableReferencesRecursive(arg, references, seen)
		}
	case *term.SurfTerm:
		for _, arg := range node.Args {
			findVariableReferencesRecursive(arg, references, seen)
		}
	case *term.AuxTerm:
		for _, arg := range node.Args {
			findVariableReferencesRecursive(arg, references, seen)
		}
	case *term.ListTerm:
		for _, item := range node.Items {
			findVariableReferencesRecursive(item, references, seen)
		}
	case *term.OptionTerm:
		if node.Item != nil {
			findVariableReferencesRecursive(node.Item, references, seen)
		}
	case *term.TagTerm:
		findVariableReferencesRecursive(node.Body, references, seen)
	case *term.FocusTerm:
		findVariableReferencesRecursive(node.Body, references, seen)
	}
}
