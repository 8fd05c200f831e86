package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/dafmig/yil/internal/diagnostics"
	"github.com/dafmig/yil/internal/loader"
	"github.com/dafmig/yil/internal/printer"
	"github.com/dafmig/yil/internal/scope"
)

func main() {
	strict := flag.Bool("strict", false, "reject constructs the verifier-facing dialect disallows")
	preludeFile := flag.String("prelude", "", "file whose contents are spliced between the prelude markers")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-strict] [-prelude file] <dump.yaml>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fail("Error reading dump: %s", err)
	}

	prelude := ""
	if *preludeFile != "" {
		raw, err := os.ReadFile(*preludeFile)
		if err != nil {
			fail("Error reading prelude: %s", err)
		}
		prelude = string(raw)
	}

	program, err := loader.Load(data)
	if err != nil {
		fail("Error loading dump: %s", err)
	}

	// Precondition violations and unsupported constructs surface as
	// panics carrying a diagnostic; report them like load errors.
	defer func() {
		if r := recover(); r != nil {
			if de, ok := r.(*diagnostics.DiagnosticError); ok {
				fail("Error printing program: %s", de)
			}
			panic(r)
		}
	}()

	p := printer.New(*strict)
	fmt.Print(p.Program(program, scope.NewContext(program), prelude))
}

// fail reports a fatal error on stderr, in red when stderr is a
// terminal, and exits.
func fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		msg = "\033[31m" + msg + "\033[0m"
	}
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
