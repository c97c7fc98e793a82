// Command sun is the CLI entry point for the sun-lang interpreter.
//
// Usage:
//
//	sun [--config path] [--log-level level] <command>
//
//	sun <file>                          Run a source file
//	sun run    <file>                   Run a source file
//	sun tokens <file> [--json|--dump]   Print tokens
//	sun parse  <file> [--dump]          Print AST as JSON, or a Go struct dump
//	sun repl                            Start interactive REPL
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sun-lang/internal/ast"
	"sun-lang/internal/config"
	"sun-lang/internal/lexer"
	"sun-lang/internal/parser"
	"sun-lang/internal/runtime"
)

// app carries what every command needs.
type app struct {
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	log    *slog.Logger
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sun", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error")
	fs.Usage = func() { usage(stderr) }
	if err := fs.Parse(args); err != nil {
		return 2
	}

	rest := fs.Args()
	if len(rest) == 0 {
		usage(stderr)
		return 2
	}

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	level := cfg.Level()
	if *logLevel != "" {
		if level, err = config.ParseLevel(*logLevel); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 2
		}
	}

	a := &app{
		stdout: stdout,
		stderr: stderr,
		cfg:    cfg,
		log:    slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}
	if cfg.Path != "" {
		a.log.Debug("loaded config", slog.String("path", cfg.Path))
	}

	command, cmdArgs := rest[0], rest[1:]
	switch command {
	case "tokens":
		return a.withFile(cmdArgs, a.cmdTokens)
	case "parse":
		return a.withFile(cmdArgs, a.cmdParse)
	case "run":
		return a.withFile(cmdArgs, a.cmdRun)
	case "repl":
		return a.cmdRepl()
	case "help":
		usage(stdout)
		return 0
	default:
		// bare file argument
		return a.cmdRun(command, rest[1:])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  sun [--config path] [--log-level level] <command>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  sun <file>                          Run a source file")
	fmt.Fprintln(w, "  sun run    <file>                   Run a source file")
	fmt.Fprintln(w, "  sun tokens <file> [--json|--dump]   Tokenize and print tokens")
	fmt.Fprintln(w, "  sun parse  <file> [--dump]          Parse and print AST (JSON)")
	fmt.Fprintln(w, "  sun repl                            Start interactive REPL")
}

// withFile checks for the file argument before handing off to cmd.
func (a *app) withFile(args []string, cmd func(filename string, flags []string) int) int {
	if len(args) == 0 {
		fmt.Fprintln(a.stderr, "error: missing file argument")
		return 2
	}
	return cmd(args[0], args[1:])
}

func (a *app) readFile(filename string) (string, bool) {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(a.stderr, "error: cannot read file %s: %v\n", filename, err)
		return "", false
	}
	a.log.Debug("read source", slog.String("file", filename), slog.Int("bytes", len(source)))
	return string(source), true
}

func hasFlag(flags []string, name string) bool {
	for _, arg := range flags {
		if arg == name {
			return true
		}
	}
	return false
}

// ---- tokens command ----

func (a *app) cmdTokens(filename string, flags []string) int {
	source, ok := a.readFile(filename)
	if !ok {
		return 1
	}
	tokens, diags := lexer.Tokenize(source)

	switch {
	case hasFlag(flags, "--json"):
		a.printTokensJSON(tokens, diags)
	case hasFlag(flags, "--dump"):
		dumpConfig.Fdump(a.stdout, tokens)
		a.printDiagsText(diags)
	default:
		a.printTokensText(tokens, diags)
	}
	return 0
}

// ---- parse command ----

func (a *app) cmdParse(filename string, flags []string) int {
	source, ok := a.readFile(filename)
	if !ok {
		return 1
	}
	program, diags, err := parser.ProduceAST(source)

	if hasFlag(flags, "--dump") {
		if err != nil {
			a.printDiagsText(diags)
			fmt.Fprintln(a.stderr, err)
			return 1
		}
		dumpConfig.Fdump(a.stdout, program)
		a.printDiagsText(diags)
		return 0
	}

	all := diags
	if fatal := asFatal(err); fatal != nil {
		all = append(all, fatal.Diagnostic)
	}
	output := map[string]interface{}{
		"ast":         nil,
		"diagnostics": diagsToSlice(all),
	}
	if program != nil {
		output["ast"] = ast.NodeToMap(program)
	}
	if !a.printJSON(output) {
		return 1
	}
	if err != nil {
		return 1
	}
	return 0
}

// ---- run command ----

func (a *app) cmdRun(filename string, _ []string) int {
	source, ok := a.readFile(filename)
	if !ok {
		return 1
	}

	interp := runtime.NewInterpreter(runtime.WithLogger(a.log))
	val, diags, err := interp.RunSource(source)
	a.printDiagsText(diags)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	fmt.Fprintln(a.stdout, val)
	return 0
}
