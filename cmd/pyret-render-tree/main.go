package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/common"
	"github.com/SeuperHakkerJa/pyret-lang/pkg/term"
)

const (
	version = "0.1.0"
	usage   = `pyret-render-tree - render a term as an ascii tree for diagnostics`
)

func main() {
	var showHelp, showVersion, includeLocs bool
	var inputFile, outputFile string
	var trim int

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
	flag.BoolVar(&includeLocs, "locs", false, "Include source locations in the output")
	flag.IntVar(&trim, "trim", 0, "Trim values for display purposes")

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("pyret-render-tree version %s\n", version)
		os.Exit(0)
	}

	if len(flag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected positional arguments. Use --input and --output flags instead.\n\n")
		flag.Usage()
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

	term.PrintTermAsciiTree(root, output, &common.PrintOptions{
		TrimValueOnOutput: trim,
		IncludeLocs:       includeLocs,
	})
}
