package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/rewriter"
	"github.com/SeuperHakkerJa/pyret-lang/pkg/term"
)

const (
	version = "0.1.0"
	usage   = `pyret-desugar - apply a desugaring rule table to a term`
)

func main() {
	var showHelp, showVersion, once, strip bool
	var inputFile, outputFile, rulesFile string
	var maxSteps int

	// Set up custom usage function that includes the description and flags
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n\nUsage:\n", usage)
		flag.PrintDefaults()
	}

	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.StringVar(&inputFile, "input", "", "Input file (defaults to stdin)")
	flag.StringVar(&outputFile, "output", "", "Output file (defaults to stdout)")
	flag.StringVar(&rulesFile, "rules", "", "YAML file containing the rule table (defaults to the built-in rules)")
	flag.BoolVar(&once, "once", false, "Apply at most one rewrite step at the root")
	flag.BoolVar(&strip, "strip-tags", false, "Strip resugaring tags from the output term")
	flag.IntVar(&maxSteps, "max-steps", 0, "Maximum number of rewrite steps (0 = default limit)")

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("pyret-desugar version %s\n", version)
		os.Exit(0)
	}

	// Reject any positional arguments
	if len(flag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected positional arguments. Use --input and --output flags instead.\n\n")
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

	// Determine input source
	var input io.Reader = os.Stdin
	if inputFile != "" {
		file, err := os.Open(inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		input = file
	}

	// Determine output destination
	var output io.Writer = os.Stdout
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		output = file
	}

	root, err := term.ReadTermJSON(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding term: %v\n", err)
		os.Exit(1)
	}

	rw := rewriter.NewRewriter(nil)
	if once {
		out, applied, err := rw.Apply(root, rules)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if applied {
			root = out
		} else {
			fmt.Fprintln(os.Stderr, "No rule applies; term unchanged")
		}
	} else {
		out, steps, err := rw.RewriteAll(root, rules, maxSteps)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Rewrote in %d steps\n", steps)
		root = out
	}

	if strip {
		root = term.StripTags(root)
	}

	if err := term.PrintTermJSON(root, output); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding term: %v\n", err)
		os.Exit(1)
	}
}
