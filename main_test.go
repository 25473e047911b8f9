package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slava0135/easyz3/solver"
)

func writeProblem(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "problem.yaml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSolveFile_Text(t *testing.T) {
	path := writeProblem(t, "name: cli-text\nvars:\n  a: int\n  x: bool\nassert:\n  - a == 5\n  - \"!x\"\n")
	var out bytes.Buffer
	if err := solveFile(path, "text", &out); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := ":: solving 'cli-text'\na = 5\nx = false\n"
	if out.String() != want {
		t.Errorf("got %q; want %q", out.String(), want)
	}
}

func TestSolveFile_YAML(t *testing.T) {
	path := writeProblem(t, "name: cli-yaml\nengine: sat\nvars:\n  p: bool\nassert:\n  - p\n")
	var out bytes.Buffer
	if err := solveFile(path, "yaml", &out); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := "name: cli-yaml\nvalues:\n    p: true\n"
	if out.String() != want {
		t.Errorf("got %q; want %q", out.String(), want)
	}
}

func TestRun_Solve(t *testing.T) {
	ok := writeProblem(t, "name: cli-ok\nvars:\n  a: int\nassert:\n  - a > 1 && a < 3\n")
	unsat := writeProblem(t, "name: cli-unsat\nvars:\n  a: int\nassert:\n  - a > 1 && a < 2\n")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"solve", ok, unsat}, &stdout, &stderr); code != 1 {
		t.Errorf("got exit code %d; want 1", code)
	}
	if !strings.Contains(stdout.String(), "a = 2") {
		t.Errorf("solvable file not printed: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "unsatisfiable") {
		t.Errorf("unsat file not reported: %q", stderr.String())
	}
}

func TestRun_Usage(t *testing.T) {
	for _, args := range [][]string{nil, {"bogus"}, {"solve"}, {"solve", "-format", "xml", "f.yaml"}, {"solve", "-engine", "cvc5", "f.yaml"}} {
		if code := run(args, io.Discard, io.Discard); code != 2 {
			t.Errorf("%v: got exit code %d; want 2", args, code)
		}
	}
}

func TestSession(t *testing.T) {
	s := newSession(solver.Z3(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	var out bytes.Buffer
	for _, line := range []string{"a: int", "k = 4", "a == k + 1", "show", "solve"} {
		if quit, err := s.handle(line, &out); quit || err != nil {
			t.Fatalf("%q: got %v, %v", line, quit, err)
		}
	}
	want := "a:int\nassert (a == 5)\n:: solving 'repl-1'\na = 5\n"
	if out.String() != want {
		t.Errorf("got %q; want %q", out.String(), want)
	}
	if s.b.Problem().Name() != "repl-2" {
		t.Errorf("solve did not start a new problem")
	}
	if _, err := s.handle("a >", &out); err == nil {
		t.Errorf("syntax error not reported")
	}
	if quit, _ := s.handle("quit", &out); !quit {
		t.Errorf("quit did not quit")
	}
}

func TestSolveFile_Testdata(t *testing.T) {
	for path, want := range map[string]string{
		"testdata/pythagoras.yaml": ":: solving 'pythagoras'\na = ",
		"testdata/switches.yaml":   ":: solving 'switches'\na = false\nb = false\nc = true\n",
		"testdata/lookup.yaml":     ":: solving 'lookup'\nf -> ",
	} {
		var out bytes.Buffer
		if err := solveFile(path, "text", &out); err != nil {
			t.Errorf("%s: unexpected error: %s", path, err)
			continue
		}
		if !strings.HasPrefix(out.String(), want) {
			t.Errorf("%s: got %q; want prefix %q", path, out.String(), want)
		}
	}
}

func TestHistoryPath(t *testing.T) {
	t.Setenv("HOME", "")
	if path, ok := historyPath(); ok {
		t.Errorf("got %q; want no history without a home directory", path)
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	path, ok := historyPath()
	if !ok || path != filepath.Join(home, historyFile) {
		t.Errorf("got %q, %v; want %q", path, ok, filepath.Join(home, historyFile))
	}
}
