package main

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	md2tex "github.com/alnah/go-md2tex"
)

// fakeConverter returns the markdown upper-cased, or err when set.
type fakeConverter struct {
	err   error
	diags []md2tex.Diagnostic
	calls atomic.Int32
}

func (f *fakeConverter) Convert(_ context.Context, input md2tex.Input) (*md2tex.ConvertResult, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &md2tex.ConvertResult{
		LaTeX:       []byte(strings.ToUpper(input.Markdown)),
		Diagnostics: f.diags,
	}, nil
}

var _ CLIConverter = (*fakeConverter)(nil)

// ---------------------------------------------------------------------------
// TestConvertBatch - Worker pool behavior
// ---------------------------------------------------------------------------

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	t.Run("converts every file in order", func(t *testing.T) {
		t.Parallel()

		src, out := t.TempDir(), t.TempDir()
		var files []FileToConvert
		for _, name := range []string{"a", "b", "c", "d"} {
			in := writeFile(t, src, name+".md", name)
			files = append(files, FileToConvert{InputPath: in, OutputPath: filepath.Join(out, name+".tex")})
		}

		conv := &fakeConverter{}
		results := convertBatch(context.Background(), conv, files, &conversionParams{workers: 3})

		if len(results) != len(files) {
			t.Fatalf("got %d results, want %d", len(results), len(files))
		}
		for i, r := range results {
			if r.Err != nil {
				t.Errorf("%s: %v", r.InputPath, r.Err)
				continue
			}
			if r.InputPath != files[i].InputPath {
				t.Errorf("result %d is %s, want %s", i, r.InputPath, files[i].InputPath)
			}
			want := strings.ToUpper(strings.TrimSuffix(filepath.Base(r.InputPath), ".md"))
			if got := readFile(t, r.OutputPath); got != want {
				t.Errorf("%s = %q, want %q", r.OutputPath, got, want)
			}
		}
		if conv.calls.Load() != 4 {
			t.Errorf("Convert called %d times, want 4", conv.calls.Load())
		}
	})

	t.Run("converter error is reported per file", func(t *testing.T) {
		t.Parallel()

		in := writeFile(t, t.TempDir(), "a.md", "a")
		conv := &fakeConverter{err: md2tex.ErrEmptyMarkdown}
		results := convertBatch(context.Background(), conv, []FileToConvert{{InputPath: in, OutputPath: in + ".tex"}}, &conversionParams{})

		if !errors.Is(results[0].Err, md2tex.ErrEmptyMarkdown) {
			t.Errorf("Err = %v, want ErrEmptyMarkdown", results[0].Err)
		}
	})

	t.Run("unreadable input wraps ErrReadMarkdown", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "gone.md")
		results := convertBatch(context.Background(), &fakeConverter{}, []FileToConvert{{InputPath: missing, OutputPath: missing + ".tex"}}, &conversionParams{})

		if !errors.Is(results[0].Err, md2tex.ErrReadMarkdown) {
			t.Errorf("Err = %v, want ErrReadMarkdown", results[0].Err)
		}
	})

	t.Run("unwritable output wraps ErrWriteOutput", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "a.md", "a")
		blocker := writeFile(t, dir, "file", "x")
		results := convertBatch(context.Background(), &fakeConverter{}, []FileToConvert{{InputPath: in, OutputPath: filepath.Join(blocker, "a.tex")}}, &conversionParams{})

		if !errors.Is(results[0].Err, md2tex.ErrWriteOutput) {
			t.Errorf("Err = %v, want ErrWriteOutput", results[0].Err)
		}
	})

	t.Run("stdout mode keeps LaTeX and writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "a.md", "abc")
		outPath := filepath.Join(dir, "a.tex")
		results := convertBatch(context.Background(), &fakeConverter{}, []FileToConvert{{InputPath: in, OutputPath: outPath}}, &conversionParams{toStdout: true})

		if string(results[0].LaTeX) != "ABC" {
			t.Errorf("LaTeX = %q, want %q", results[0].LaTeX, "ABC")
		}
		if matches, _ := filepath.Glob(outPath); len(matches) != 0 {
			t.Error("stdout mode should not write the output file")
		}
	})

	t.Run("canceled context skips remaining files", func(t *testing.T) {
		t.Parallel()

		in := writeFile(t, t.TempDir(), "a.md", "a")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		conv := &fakeConverter{}
		results := convertBatch(ctx, conv, []FileToConvert{{InputPath: in, OutputPath: in + ".tex"}}, &conversionParams{})

		if !errors.Is(results[0].Err, context.Canceled) {
			t.Errorf("Err = %v, want context.Canceled", results[0].Err)
		}
		if conv.calls.Load() != 0 {
			t.Errorf("Convert called %d times, want 0", conv.calls.Load())
		}
	})

	t.Run("no files", func(t *testing.T) {
		t.Parallel()

		if results := convertBatch(context.Background(), &fakeConverter{}, nil, &conversionParams{}); results != nil {
			t.Errorf("convertBatch(nil) = %v, want nil", results)
		}
	})
}

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		requested int
		files     int
		want      int
	}{
		{"capped by files", 8, 3, 3},
		{"requested below files", 2, 10, 2},
		{"at least one", 4, 0, 1},
		{"auto is capped by files", 0, 1, 1},
		{"auto uses GOMAXPROCS", 0, 1 << 20, runtime.GOMAXPROCS(0)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveWorkers(tt.requested, tt.files); got != tt.want {
				t.Errorf("resolveWorkers(%d, %d) = %d, want %d", tt.requested, tt.files, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPrintResults - Result reporting
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	diag := md2tex.Diagnostic{Line: 3, Message: `unknown code language "x", using "python"`}

	t.Run("single file", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(nil)
		results := []ConversionResult{{InputPath: "a.md", OutputPath: "a.tex", Diagnostics: []md2tex.Diagnostic{diag}}}

		if failed := printResults(results, &conversionParams{}, env); failed != 0 {
			t.Errorf("failed = %d, want 0", failed)
		}
		if stdout.String() != "Created a.tex\n" {
			t.Errorf("stdout = %q", stdout.String())
		}
		if stderr.String() != "warning: line 3: unknown code language \"x\", using \"python\"\n" {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("batch with failure", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(nil)
		results := []ConversionResult{
			{InputPath: "a.md", OutputPath: "a.tex", Diagnostics: []md2tex.Diagnostic{diag}},
			{InputPath: "b.md", Err: errors.New("boom")},
		}

		if failed := printResults(results, &conversionParams{}, env); failed != 1 {
			t.Errorf("failed = %d, want 1", failed)
		}
		if !strings.Contains(stderr.String(), "warning: a.md: line 3:") {
			t.Errorf("batch warnings should name the file, got %q", stderr.String())
		}
		if !strings.Contains(stderr.String(), "FAILED b.md: boom") {
			t.Errorf("stderr = %q, want FAILED line", stderr.String())
		}
		if !strings.HasSuffix(stdout.String(), "\n1 succeeded, 1 failed\n") {
			t.Errorf("stdout = %q, want summary", stdout.String())
		}
	})

	t.Run("verbose shows timing", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(nil)
		results := []ConversionResult{{InputPath: "a.md", OutputPath: "a.tex", Duration: 1500 * time.Microsecond}}
		printResults(results, &conversionParams{verbose: true}, env)

		if stdout.String() != "a.md -> a.tex (2ms)\n" {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("quiet still reports failures", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(nil)
		results := []ConversionResult{
			{InputPath: "a.md", OutputPath: "a.tex", Diagnostics: []md2tex.Diagnostic{diag}},
			{InputPath: "b.md", Err: errors.New("boom")},
		}
		printResults(results, &conversionParams{quiet: true}, env)

		if stdout.Len() != 0 {
			t.Errorf("stdout = %q, want empty", stdout.String())
		}
		if stderr.String() != "FAILED b.md: boom\n" {
			t.Errorf("stderr = %q, want only the failure", stderr.String())
		}
	})
}
