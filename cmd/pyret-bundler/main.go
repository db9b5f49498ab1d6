package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/bundler"
	"github.com/SeuperHakkerJa/pyret-lang/pkg/rewriter"
	"github.com/SeuperHakkerJa/pyret-lang/pkg/term"
)

const (
	version = "0.1.0"
	usage   = `pyret-bundler - desugar a unit of definitions into a sqlite bundle`
)

func main() {
	var showHelp, showVersion bool
	var inputFile, bundleFile, rulesFile string

	// Set up custom usage function that includes the description and flags
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n\nUsage:\n", usage)
		flag.PrintDefaults()
	}

	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.StringVar(&inputFile, "input", "", "Input file containing the unit term (defaults to stdin)")
	flag.StringVar(&bundleFile, "bundle", "bundle.db", "Path of the sqlite bundle to write")
	flag.StringVar(&rulesFile, "rules", "", "YAML file containing the rule table (defaults to the built-in rules)")

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("pyret-bundler version %s\n", version)
		os.Exit(0)
	}

	if len(flag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected positional arguments. Use --input and --bundle flags instead.\n\n")
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

	unit, err := term.ReadTermJSON(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding unit term: %v\n", err)
		os.Exit(1)
	}

	b, err := bundler.NewBundler(bundleFile, rewriter.NewRewriter(nil), rules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening bundle: %v\n", err)
		os.Exit(1)
	}
	defer b.Close()

	if err := b.Migrate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error migrating bundle: %v\n", err)
		os.Exit(1)
	}

	if err := b.ProcessUnit(unit); err != nil {
		fmt.Fprintf(os.Stderr, "Error bundling unit: %v\n", err)
		os.Exit(1)
	}
}
