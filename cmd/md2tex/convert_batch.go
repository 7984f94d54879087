package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	md2tex "github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/fileutil"
	"github.com/alnah/go-md2tex/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2tex.Input) (*md2tex.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2tex.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath   string
	OutputPath  string
	LaTeX       []byte // kept only when writing to stdout
	Diagnostics []md2tex.Diagnostic
	Err         error
	Duration    time.Duration
}

// resolveWorkers returns the number of workers for n files. Zero requested
// means one per usable CPU.
func resolveWorkers(requested, n int) int {
	workers := requested
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return max(1, min(workers, n))
}

// convertBatch converts files with a fixed pool of workers sharing conv.
// Results keep the order of files.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < resolveWorkers(params.workers, len(files)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return done(fmt.Errorf("%w: %v", md2tex.ErrReadMarkdown, err))
	}

	convResult, err := conv.Convert(ctx, params.input(string(content)))
	if err != nil {
		return done(err)
	}
	result.Diagnostics = convResult.Diagnostics

	if params.toStdout {
		result.LaTeX = convResult.LaTeX
		return done(nil)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return done(fmt.Errorf("%w: creating output directory: %v%s", md2tex.ErrWriteOutput, err, hints.ForOutputDirectory()))
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, convResult.LaTeX, filePermissions); err != nil {
		return done(fmt.Errorf("%w: %v", md2tex.ErrWriteOutput, err))
	}

	return done(nil)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
// Diagnostics go to stderr unless quiet; a batch prefixes them with the
// input path.
func printResults(results []ConversionResult, params *conversionParams, env *Environment) int {
	summary := countResults(results)
	batch := len(results) > 1

	for _, r := range results {
		if !params.quiet {
			for _, d := range r.Diagnostics {
				if batch {
					fmt.Fprintf(env.Stderr, "warning: %s: %s\n", r.InputPath, d)
				} else {
					fmt.Fprintf(env.Stderr, "warning: %s\n", d)
				}
			}
		}

		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if params.toStdout {
			_, _ = env.Stdout.Write(r.LaTeX)
			continue
		}

		if params.quiet {
			continue
		}

		if params.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !params.quiet && batch {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
