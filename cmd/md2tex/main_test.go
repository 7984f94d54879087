package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// testEnv returns an Environment with captured output and an environment
// made only of vars.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		LookPath: func(string) (string, error) { return "", os.ErrNotExist },
	}
	return env, &stdout, &stderr
}

// writeFile creates dir/name with content, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestRunMain - Main entry point dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage and exits with ExitUsage",
			args:         []string{"md2tex"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: md2tex"},
		},
		{
			name:         "version command exits 0",
			args:         []string{"md2tex", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"md2tex dev"},
		},
		{
			name:         "help command exits 0",
			args:         []string{"md2tex", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2tex", "Commands:"},
		},
		{
			name:         "help config shows config layout",
			args:         []string{"md2tex", "help", "config"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"defaultLanguage:"},
		},
		{
			name:         "unknown help topic exits with ExitUsage",
			args:         []string{"md2tex", "help", "cooking"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown help topic: cooking"},
		},
		{
			name:         "--help flag exits 0",
			args:         []string{"md2tex", "--help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2tex"},
		},
		{
			name:         "unknown flag exits with ExitUsage",
			args:         []string{"md2tex", "--bogus", "in.md"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown flag"},
		},
		{
			name:         "missing input file exits with ExitGeneral",
			args:         []string{"md2tex", "/nonexistent/input.md"},
			wantCode:     ExitGeneral,
			wantInStderr: []string{"failed to read markdown"},
		},
		{
			name:         "wrong extension exits with ExitUsage",
			args:         []string{"md2tex", "main_test.go"},
			wantCode:     ExitUsage,
			wantInStderr: []string{".md or .markdown"},
		},
		{
			name:         "invalid worker count exits with ExitUsage",
			args:         []string{"md2tex", "--workers=-1", "in.md"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid worker count"},
		},
		{
			name:         "missing config exits with ExitUsage and a hint",
			args:         []string{"md2tex", "-c", "md2tex-no-such-config", "in.md"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"config file not found", "hint:"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Convert - End-to-end conversion through the CLI
// ---------------------------------------------------------------------------

func TestRunMain_Convert(t *testing.T) {
	t.Parallel()

	t.Run("single file writes .tex next to input", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "notes.md", "# Notes\n- a\n- b\n")

		env, stdout, stderr := testEnv(nil)
		if code := runMain([]string{"md2tex", in}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
		}

		out := filepath.Join(dir, "notes.tex")
		if !strings.Contains(stdout.String(), "Created "+out) {
			t.Errorf("stdout = %q, want Created line", stdout.String())
		}
		tex := readFile(t, out)
		for _, want := range []string{`\documentclass`, `\section{Notes}`, `\begin{itemize}`, `\item a`, `\end{document}`} {
			if !strings.Contains(tex, want) {
				t.Errorf("output should contain %q", want)
			}
		}
	})

	t.Run("second argument names the output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "notes.md", "text\n")
		out := filepath.Join(dir, "build", "out.tex")

		env, _, stderr := testEnv(nil)
		if code := runMain([]string{"md2tex", in, out}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
		}
		if !strings.Contains(readFile(t, out), "text") {
			t.Error("output file should hold the paragraph")
		}
	})

	t.Run("--output overrides the second argument", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "notes.md", "text\n")
		flagOut := filepath.Join(dir, "flag.tex")
		argOut := filepath.Join(dir, "arg.tex")

		env, _, stderr := testEnv(nil)
		if code := runMain([]string{"md2tex", "-o", flagOut, in, argOut}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
		}
		if _, err := os.Stat(flagOut); err != nil {
			t.Errorf("--output file missing: %v", err)
		}
		if _, err := os.Stat(argOut); err == nil {
			t.Error("positional output should be ignored when --output is set")
		}
	})

	t.Run("--stdout prints LaTeX and writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "notes.md", "1. one\n2. two\n")

		env, stdout, stderr := testEnv(nil)
		if code := runMain([]string{"md2tex", "--stdout", in}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
		}
		if !strings.Contains(stdout.String(), `\begin{enumerate}`) {
			t.Errorf("stdout should hold the document, got %q", stdout.String())
		}
		if _, err := os.Stat(filepath.Join(dir, "notes.tex")); err == nil {
			t.Error("--stdout should not write a file")
		}
	})

	t.Run("unknown language warns on stderr", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "code.md", "intro\n```klingon\nx\n```\n")

		env, _, stderr := testEnv(nil)
		if code := runMain([]string{"md2tex", in}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
		}
		want := `warning: line 2: unknown code language "klingon", using "python"`
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr = %q, want %q", stderr.String(), want)
		}
	})

	t.Run("--quiet silences warnings and Created lines", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "code.md", "```klingon\nx\n```\n")

		env, stdout, stderr := testEnv(nil)
		if code := runMain([]string{"md2tex", "-q", in}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
		}
		if stdout.Len() != 0 || stderr.Len() != 0 {
			t.Errorf("quiet run printed stdout=%q stderr=%q", stdout.String(), stderr.String())
		}
	})

	t.Run("directory input is mirrored", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		writeFile(t, src, "a.md", "alpha\n")
		writeFile(t, src, "sub/b.markdown", "beta\n")
		writeFile(t, src, "skip.txt", "not markdown\n")
		dst := filepath.Join(t.TempDir(), "out")

		env, stdout, stderr := testEnv(nil)
		if code := runMain([]string{"md2tex", "-w", "2", src, dst}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
		}
		for _, p := range []string{filepath.Join(dst, "a.tex"), filepath.Join(dst, "sub", "b.tex")} {
			if _, err := os.Stat(p); err != nil {
				t.Errorf("missing %s: %v", p, err)
			}
		}
		if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
			t.Errorf("stdout = %q, want summary", stdout.String())
		}
	})

	t.Run("empty file fails with ExitGeneral", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "empty.md", "")

		env, _, stderr := testEnv(nil)
		if code := runMain([]string{"md2tex", in}, env); code != ExitGeneral {
			t.Errorf("runMain() = %d, want %d", code, ExitGeneral)
		}
		if !strings.Contains(stderr.String(), "FAILED "+in) {
			t.Errorf("stderr = %q, want FAILED line", stderr.String())
		}
	})

	t.Run("invalid page size exits with ExitUsage", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "notes.md", "text\n")

		env, _, _ := testEnv(nil)
		if code := runMain([]string{"md2tex", "-p", "b5", in}, env); code != ExitUsage {
			t.Errorf("runMain() = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("unknown default language exits with ExitUsage", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "notes.md", "text\n")

		env, _, stderr := testEnv(nil)
		if code := runMain([]string{"md2tex", "--default-language", "klingon", in}, env); code != ExitUsage {
			t.Errorf("runMain() = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr = %q, want a hint", stderr.String())
		}
	})

	t.Run("auto date uses the environment clock", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "notes.md", "text\n")

		env, stdout, stderr := testEnv(nil)
		args := []string{"md2tex", "--stdout", "--doc-title", "T", "--doc-date", "auto", in}
		if code := runMain(args, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
		}
		if !strings.Contains(stdout.String(), `\date{2026-03-05}`) {
			t.Errorf("stdout should carry the resolved date, got %q", stdout.String())
		}
	})

	t.Run("environment variables feed the config", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "notes.md", "text\n")

		env, stdout, stderr := testEnv(map[string]string{"MD2TEX_DOC_CLASS": "report"})
		if code := runMain([]string{"md2tex", "--stdout", in}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
		}
		if !strings.Contains(stdout.String(), `{report}`) {
			t.Errorf("stdout should use the report class, got %q", stdout.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestWantsVerbose - Pre-parse verbose detection
// ---------------------------------------------------------------------------

func TestWantsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"-v", "in.md"}, true},
		{[]string{"in.md", "--verbose"}, true},
		{[]string{"in.md"}, false},
		{[]string{"--", "-v"}, false},
	}
	for _, tt := range tests {
		if got := wantsVerbose(tt.args); got != tt.want {
			t.Errorf("wantsVerbose(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
