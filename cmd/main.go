package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/bloppaa/seasharp-antlr/pkg"
	"github.com/kr/pretty"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

var (
	dumpAST     = flag.Bool("ast", false, "dump the analysed syntax tree")
	dumpSymbols = flag.Bool("symbols", false, "list declared variables")
	colorMode   = flag.String("color", "auto", "colour diagnostics: auto, always or never")
	workers     = flag.Int("j", 0, "number of files analysed in parallel (0 = all)")
)

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no input file provided")
		os.Exit(2)
	}

	c := seasharp.NewCompiler()
	c.Workers = *workers

	units, err := c.CompileAll(context.Background(), flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	color := useColor(*colorMode, os.Stderr)

	rejected := false
	for _, unit := range units {
		if len(units) > 1 {
			fmt.Printf("==> %s <==\n", unit.Filename)
		}

		if unit.Rejected() {
			rejected = true
		}

		printUnit(unit, color)
	}

	if rejected {
		os.Exit(1)
	}
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

func printUnit(unit *seasharp.Unit, color bool) {
	for _, err := range unit.SyntaxErrors {
		printError(os.Stderr, err.String(), color)
	}

	res := unit.Result
	if res == nil {
		return
	}

	if res.Fatal != nil {
		printError(os.Stderr, "Error: "+res.Fatal.String(), color)
	}

	printErrors(res.Errors, color)

	if *dumpSymbols && res.Symbols != nil {
		if err := printSymbols(os.Stdout, res.Symbols); err != nil {
			printError(os.Stderr, "Error: "+err.Error(), color)
		}
	}

	if res.Program == nil {
		return
	}

	fmt.Print(res.Program)

	if *dumpAST {
		pretty.Println(res.Program)
	}
}

func printErrors(errors []seasharp.CompileError, color bool) {
	for _, err := range errors {
		printError(os.Stderr, "Error: "+err.String(), color)
	}
}

func printError(w io.Writer, msg string, color bool) {
	if color {
		fmt.Fprintln(w, colorRed+msg+colorReset)
		return
	}

	fmt.Fprintln(w, msg)
}

func printSymbols(w io.Writer, symbols *seasharp.SymbolTable) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, sym := range symbols.Symbols() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", sym.Name, sym.Type, sym.Loc)
	}

	return errors.Wrap(tw.Flush(), "writing symbols")
}
