package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"gopkg.in/yaml.v3"

	"slava0135/easyz3/constraints"
	"slava0135/easyz3/problem"
	"slava0135/easyz3/solver"
)

const usage = `usage:
  easyz3 solve [-engine z3|sat] [-format text|yaml] [-v] FILE...
  easyz3 repl [-engine z3|sat] [-v]
  easyz3 demo [NAME...]`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}
	switch args[0] {
	case "solve":
		return cmdSolve(args[1:], stdout, stderr)
	case "repl":
		return cmdRepl(args[1:], stdout, stderr)
	case "demo":
		return cmdDemo(args[1:], stdout, stderr)
	default:
		fmt.Fprintln(stderr, usage)
		return 2
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func cmdSolve(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	engineName := fs.String("engine", "", "solver engine: z3 or sat (default: the file's, else z3)")
	format := fs.String("format", "text", "output format: text or yaml")
	verbose := fs.Bool("v", false, "log lowering and solving")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 || (*format != "text" && *format != "yaml") {
		fmt.Fprintln(stderr, usage)
		return 2
	}
	opts := []solver.Option{solver.WithLogger(newLogger(stderr, *verbose))}
	if *engineName != "" {
		e, err := solver.EngineByName(*engineName)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		opts = append(opts, solver.WithEngine(e))
	}

	code := 0
	for _, path := range fs.Args() {
		if err := solveFile(path, *format, stdout, opts...); err != nil {
			fmt.Fprintln(stderr, "[ERROR]", err)
			code = 1
		}
	}
	return code
}

func solveFile(path, format string, w io.Writer, opts ...solver.Option) error {
	f, err := problem.LoadFile(path)
	if err != nil {
		return err
	}
	b, err := f.Build(opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if format == "text" {
		fmt.Fprintf(w, ":: solving '%s'\n", f.Name)
	}
	s, err := b.Problem().Solve()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(s)
	}
	return printSolution(w, s)
}

func printSolution(w io.Writer, s *solver.Solution) error {
	values, err := s.Values()
	if err != nil {
		return err
	}
	for _, name := range s.Names() {
		v := values[name]
		if interp, ok := v.(*solver.FuncInterp); ok {
			fmt.Fprintln(w, interp)
			continue
		}
		fmt.Fprintf(w, "%s = %v\n", name, v)
	}
	return nil
}

func cmdDemo(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		if err := constraints.RunAll(stdout); err != nil {
			fmt.Fprintln(stderr, "[ERROR]", err)
			return 1
		}
		return 0
	}
	for _, name := range args {
		if err := constraints.Run(name, stdout); err != nil {
			fmt.Fprintln(stderr, "[ERROR]", err)
			return 1
		}
	}
	return 0
}

const (
	prompt      = "easyz3> "
	historyFile = ".easyz3_history"
)

func cmdRepl(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	engineName := fs.String("engine", "z3", "solver engine: z3 or sat")
	verbose := fs.Bool("v", false, "log lowering and solving")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	engine, err := solver.EngineByName(*engineName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if histPath, ok := historyPath(); ok {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintln(stdout, "declare with 'name: sort', bind with 'name = expr', assert anything else; 'solve', 'show', 'reset', 'quit'")
	s := newSession(engine, newLogger(stderr, *verbose))
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(stdout)
			return 0
		}
		if err != nil {
			fmt.Fprintln(stderr, "[ERROR]", err)
			return 1
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		quit, err := s.handle(line, stdout)
		if err != nil {
			fmt.Fprintln(stderr, "[ERROR]", err)
		}
		if quit {
			return 0
		}
	}
}

// historyPath returns the history file in the home directory. Without a
// home directory no history is kept.
func historyPath() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", false
	}
	return filepath.Join(home, historyFile), true
}

// session is the problem being typed at the prompt. A new one starts after
// every solve.
type session struct {
	engine solver.Engine
	logger *slog.Logger
	n      int
	b      *problem.Builder
}

func newSession(engine solver.Engine, logger *slog.Logger) *session {
	s := &session{engine: engine, logger: logger}
	s.reset()
	return s
}

func (s *session) reset() {
	s.n++
	s.b = problem.NewBuilder(fmt.Sprintf("repl-%d", s.n), solver.WithEngine(s.engine), solver.WithLogger(s.logger))
}

func (s *session) handle(line string, w io.Writer) (quit bool, err error) {
	switch strings.TrimSpace(line) {
	case "quit", "exit", ":quit":
		return true, nil
	case "reset":
		s.reset()
		return false, nil
	case "show":
		p := s.b.Problem()
		for _, d := range p.Declarations() {
			fmt.Fprintln(w, d)
		}
		for _, a := range p.Assertions() {
			fmt.Fprintln(w, "assert", a)
		}
		return false, nil
	case "solve":
		defer s.reset()
		fmt.Fprintf(w, ":: solving '%s'\n", s.b.Problem().Name())
		sol, err := s.b.Problem().Solve()
		if err != nil {
			return false, err
		}
		return false, printSolution(w, sol)
	default:
		return false, s.b.Exec(line)
	}
}
