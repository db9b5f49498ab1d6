package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/rewriter"
	"github.com/SeuperHakkerJa/pyret-lang/pkg/term"
)

const (
	version = "0.1.0"
	usage   = `pyret-rules - validate a desugaring rule table`
)

func main() {
	var showHelp, showVersion bool
	var rulesFile string

	// Set up custom usage function that includes the description and flags
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n\nUsage:\n", usage)
		flag.PrintDefaults()
	}

	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.StringVar(&rulesFile, "rules", "", "YAML file containing the rule table (defaults to the built-in rules)")

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("pyret-rules version %s\n", version)
		os.Exit(0)
	}

	if len(flag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected positional arguments. Use --rules instead.\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var rulesConfig *rewriter.RulesConfig
	var err error
	if rulesFile != "" {
		rulesConfig, err = rewriter.LoadRulesConfig(rulesFile)
	} else {
		rulesConfig, err = rewriter.LoadRulesConfigFromString(rewriter.DefaultDesugarRules)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rule table: %v\n", err)
		os.Exit(1)
	}
	rules, err := rulesConfig.ToRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling rule table: %v\n", err)
		os.Exit(1)
	}

	// Report pattern variables a case binds but never uses; these are
	// usually authoring mistakes.
	issues := 0
	for op, cases := range rules {
		for i, c := range cases {
			for _, name := range term.DroppedPVars(c.Lhs, c.Rhs) {
				fmt.Printf("rule \"%s/%d\": pattern variable %q is bound but never used\n", op, i, name)
				issues++
			}
		}
	}

	// Report cases that can never fire.
	for _, shadowed := range rules.CheckShadowing() {
		fmt.Println(shadowed.String())
		issues++
	}

	if issues == 0 {
		fmt.Printf("Rule table %q is clean: %d operators\n", rulesConfig.Name, len(rules))
	} else {
		fmt.Printf("Rule table %q has %d issue(s)\n", rulesConfig.Name, issues)
		os.Exit(1)
	}
}
