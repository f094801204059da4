// Command ted is a single-file terminal text editor: a thin wrapper
// around internal/editor that parses flags, opens the controlling tty,
// loads the target file, and runs the command loop until it quits.
// Grounded on the original's main()/usage() (_examples/original_source/
// src/ted.c lines 2807-2900).
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/cliofy/ted/internal/editor"
	"github.com/cliofy/ted/internal/fileio"
	"github.com/cliofy/ted/internal/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ted: "+err.Error())
		os.Exit(1)
	}
}

func run() error {
	var (
		rows    = pflag.IntP("rows", "r", 10, "number of screen rows (5-30)")
		cols    = pflag.IntP("cols", "c", 72, "number of screen columns (30-120)")
		tabs    = pflag.IntP("tabs", "t", 8, "tab stop width (2-8)")
		format  = pflag.StringP("format", "f", "unix", "newline convention: unix or dos")
		gotoArg = pflag.StringP("goto", "g", "first", "initial point position: first, last, or a line number")
		verbose = pflag.BoolP("verbose", "v", false, "write a debug log to $TED_LOG or ./ted.log")
	)
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		return fmt.Errorf("exactly one file argument is required")
	}
	if *rows < 5 || *rows > 30 {
		return fmt.Errorf("--rows must be between 5 and 30")
	}
	if *cols < 30 || *cols > 120 {
		return fmt.Errorf("--cols must be between 30 and 120")
	}
	if *tabs < 2 || *tabs > 8 {
		return fmt.Errorf("--tabs must be between 2 and 8")
	}

	if !term.IsTerminal(os.Stdin) || !term.IsTerminal(os.Stdout) {
		return fmt.Errorf("ted requires a terminal on both stdin and stdout")
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var mode fileio.NewlineMode
	switch *format {
	case "unix":
		mode = fileio.Unix
	case "dos":
		mode = fileio.Dos
	default:
		return fmt.Errorf("--format must be \"unix\" or \"dos\"")
	}

	chars, meta, err := fileio.Load(pflag.Arg(0), mode)
	if err != nil {
		return err
	}

	tm := term.New(os.Stdin, os.Stdout, *rows, *cols)
	if err := tm.Setup(); err != nil {
		return err
	}
	defer tm.Restore()

	ed := editor.New(chars, meta, mode, *rows, *cols, *tabs, logger)
	ed.Term = tm

	if err := tm.ReserveScreen(); err != nil {
		return err
	}
	switch *gotoArg {
	case "first":
		// loadf already leaves the point at 0.
	case "last":
		ed.View.EndOfBuffer(ed.Buf)
	default:
		n, err := strconv.Atoi(*gotoArg)
		if err != nil || n < 1 {
			return fmt.Errorf("--goto must be \"first\", \"last\", or a positive line number")
		}
		ed.View.GotoLine(ed.Buf, n)
	}

	if err := ed.Run(tm); err != nil {
		return err
	}
	return tm.ClearScreen()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	path := os.Getenv("TED_LOG")
	if path == "" {
		path = "ted.log"
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
