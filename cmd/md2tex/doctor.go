package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	md2tex "github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/hints"
	"github.com/alnah/go-md2tex/internal/process"
)

// texEngines are the LaTeX engines md2tex output is written for.
var texEngines = []string{"pdflatex", "xelatex", "lualatex"}

// buildTool drives repeated engine runs for cross-references.
const buildTool = "latexmk"

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Engines  []engineInfo `json:"engines"`
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// engineInfo holds detection results for one TeX executable.
type engineInfo struct {
	Name    string `json:"name"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
	AssetsLoaded bool `json:"assets_loaded"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		switch arg {
		case "--json":
			jsonOutput = true
		default:
			fmt.Fprintf(env.Stderr, "unknown doctor flag: %s\n", arg)
			return ExitUsage
		}
	}

	result := runDoctor(ctx, env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkEngines(ctx, env, result)
	checkEnvironment(env, result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkEngines looks up every TeX engine and latexmk on PATH and asks each
// for its version. One engine is enough; none is an error.
func checkEngines(ctx context.Context, env *Environment, result *doctorResult) {
	foundEngine := false
	for _, name := range append(append([]string{}, texEngines...), buildTool) {
		info := probeEngine(ctx, env, name)
		result.Engines = append(result.Engines, info)

		switch {
		case info.Found && info.Version == "":
			result.Warnings = append(result.Warnings, fmt.Sprintf("Could not get %s version", name))
		case !info.Found && name == buildTool:
			result.Warnings = append(result.Warnings, "latexmk not found; run the engine twice for cross-references")
		}
		if info.Found && name != buildTool {
			foundEngine = true
		}
	}

	if !foundEngine {
		result.Errors = append(result.Errors,
			"No TeX engine found (pdflatex, xelatex or lualatex)"+hints.ForTeXNotFound())
	}
}

func probeEngine(ctx context.Context, env *Environment, name string) engineInfo {
	info := engineInfo{Name: name}
	if env.LookPath == nil {
		return info
	}

	path, err := env.LookPath(name)
	if err != nil {
		return info
	}
	info.Found = true
	info.Path = path

	if out, err := process.Output(ctx, process.DefaultTimeout, path, "--version"); err == nil {
		info.Version = process.FirstLine(out)
	}
	return info
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(env *Environment, result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer(env)

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if env.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(env *Environment) (bool, string) {
	// Explicit override (highest priority)
	if env.getenv("MD2TEX_CONTAINER") == "1" {
		return true, "MD2TEX_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := env.getenv("container"); v != "" {
		return true, "container=" + v
	}
	if env.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies that latexmk can write its auxiliary files and that
// the embedded assets build a converter.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "md2tex-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}

	conv, err := md2tex.NewConverter()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Embedded assets broken: %v", err))
		return
	}
	_ = conv.Close()
	result.System.AssetsLoaded = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2tex doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TeX")
	for _, e := range r.Engines {
		switch {
		case !e.Found:
			fmt.Fprintf(w, "  [--] %s: not found\n", e.Name)
		case e.Version != "":
			fmt.Fprintf(w, "  [OK] %s: %s (%s)\n", e.Name, e.Path, e.Version)
		default:
			fmt.Fprintf(w, "  [OK] %s: %s\n", e.Name, e.Path)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	if r.System.AssetsLoaded {
		fmt.Fprintln(w, "  [OK] Embedded assets: loaded")
	} else {
		fmt.Fprintln(w, "  [ERROR] Embedded assets: failed to load")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	default:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
