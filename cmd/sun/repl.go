package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sun-lang/internal/diag"
	"sun-lang/internal/runtime"

	"github.com/chzyer/readline"
)

// ---- ANSI colors ----

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// ---- repl command ----

func (a *app) cmdRepl() int {
	historyFile := a.cfg.HistoryPath()
	a.log.Debug("starting repl", slog.String("history", historyFile))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            a.paint(colorGreen, a.cfg.REPL.Prompt),
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         ":quit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(a.stderr, "readline init failed: %v\n", err)
		return 1
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "%s %s\n\n",
		a.paint(colorBold+colorCyan, "sun-lang REPL"),
		a.paint(colorGray, "(type :quit or Ctrl+D to quit, :env to list bindings)"))

	session := newReplSession(runtime.NewInterpreter(runtime.WithLogger(a.log)),
		rl.Stdout(), rl.Stderr(), a.cfg.REPL.Color)

	for {
		if session.pending() {
			rl.SetPrompt(a.paint(colorGray, "...   "))
		} else {
			rl.SetPrompt(a.paint(colorGreen, a.cfg.REPL.Prompt))
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if session.pending() {
					session.cancel()
					continue
				}
				fmt.Fprintf(rl.Stdout(), "\n%s\n", a.paint(colorGray, "(use :quit or Ctrl+D to quit)"))
				continue
			}
			// EOF (Ctrl+D) or other error → exit
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		if !session.feed(line) {
			break
		}
	}
	return 0
}

func (a *app) paint(color, s string) string {
	if !a.cfg.REPL.Color {
		return s
	}
	return color + s + colorReset
}

// replSession evaluates REPL input against one interpreter, so declarations
// persist from line to line. Input with unbalanced braces is accumulated
// until the braces close.
type replSession struct {
	interp *runtime.Interpreter
	out    io.Writer
	errOut io.Writer
	color  bool

	buf   strings.Builder
	depth int
}

func newReplSession(interp *runtime.Interpreter, out, errOut io.Writer, color bool) *replSession {
	return &replSession{interp: interp, out: out, errOut: errOut, color: color}
}

// pending reports whether a multi-line input is being accumulated.
func (s *replSession) pending() bool {
	return s.depth > 0
}

// cancel drops any partially entered input.
func (s *replSession) cancel() {
	s.buf.Reset()
	s.depth = 0
}

// feed handles one line of input. It returns false when the session should end.
func (s *replSession) feed(line string) bool {
	if s.depth == 0 {
		switch strings.TrimSpace(line) {
		case ":quit", "exit":
			return false
		case ":env":
			s.printEnv()
			return true
		}
	}

	s.depth += strings.Count(line, "{") - strings.Count(line, "}")
	s.buf.WriteString(line)
	s.buf.WriteString("\n")
	if s.depth > 0 {
		return true
	}

	source := s.buf.String()
	s.cancel()
	if strings.TrimSpace(source) == "" {
		return true
	}

	val, diags, err := s.interp.RunSource(source)
	s.printDiags(diags)
	if err != nil {
		s.printError(err)
		return true
	}
	fmt.Fprintln(s.out, val)
	return true
}

// printEnv lists the global bindings, marking constants.
func (s *replSession) printEnv() {
	env := s.interp.Env()
	for _, name := range env.Names() {
		val, err := env.LookUpVar(name)
		if err != nil {
			continue
		}
		marker := ""
		if env.IsConstant(name) {
			marker = " (const)"
		}
		fmt.Fprintf(s.out, "%s = %s%s\n", name, val, marker)
	}
}

func (s *replSession) printDiags(diags []diag.Diagnostic) {
	for _, d := range diags {
		if s.color {
			fmt.Fprintf(s.errOut, "%s%s%s\n", colorGray, d.String(), colorReset)
		} else {
			fmt.Fprintln(s.errOut, d.String())
		}
	}
}

func (s *replSession) printError(err error) {
	if s.color {
		fmt.Fprintf(s.errOut, "%s%s%s\n", colorRed, err, colorReset)
	} else {
		fmt.Fprintln(s.errOut, err)
	}
}
