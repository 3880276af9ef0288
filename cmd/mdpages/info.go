package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	mdpages "github.com/alnah/go-mdpages"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/registry"
)

// infoResult holds everything the info command reports.
type infoResult struct {
	Status     string              `json:"status"` // "ready", "warnings", "errors"
	Version    string              `json:"version"`
	Plugins    map[string][]string `json:"plugins"`
	Converters converterInfo       `json:"converters"`
	Chrome     chromeInfo          `json:"chrome"`
	Env        envInfo             `json:"environment"`
	System     systemInfo          `json:"system"`
	Warnings   []string            `json:"warnings,omitempty"`
	Errors     []string            `json:"errors,omitempty"`
}

// converterInfo lists the available conversion backends.
type converterInfo struct {
	Goldmark bool   `json:"goldmark"`
	Pandoc   string `json:"pandoc,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	CPUs          int    `json:"cpus"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
	Workers      int  `json:"workers"`
}

// runInfoCmd executes the info command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runInfoCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		switch arg {
		case "--json":
			jsonOutput = true
		case "-h", "--help":
			printInfoUsage(env.Stdout)
			return ExitSuccess
		default:
			fmt.Fprintf(env.Stderr, "error: unknown flag: %s\n", arg)
			return ExitUsage
		}
	}

	result := runInfo()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printInfoResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runInfo performs all checks.
func runInfo() *infoResult {
	result := &infoResult{
		Status:  "ready",
		Version: Version,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			CPUs:       runtime.GOMAXPROCS(0),
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkPlugins(result)
	checkConverters(result)
	checkChrome(result)
	checkEnvironment(result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkPlugins lists the keys registered by the default plugins.
func checkPlugins(result *infoResult) {
	b, err := mdpages.NewBuilder()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Plugin registration failed: %v", err))
		return
	}
	result.Plugins = make(map[string][]string, len(registry.Namespaces))
	for _, ns := range registry.Namespaces {
		result.Plugins[ns.String()] = b.Registry().Keys(ns)
	}
}

// checkConverters detects the conversion backends.
func checkConverters(result *infoResult) {
	result.Converters.Goldmark = true
	result.Converters.Pandoc = pipeline.LookPandoc()
}

// checkChrome detects Chrome/Chromium installation. Chrome is only needed
// for --pdf, so a missing browser is a warning.
func checkChrome(result *infoResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; --pdf is unavailable. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	cmd := exec.Command(chromePath, "--version") // #nosec G204 -- browser path from rod lookup or user env
	out, err := cmd.Output()
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *infoResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Chrome.Found && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 for --pdf")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("MDPAGES_CONTAINER") == "1" {
		return true, "MDPAGES_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for PDF export and reports
// the automatic worker count.
func checkSystem(result *infoResult) {
	result.System.Workers = mdpages.ResolvePoolSize(0)

	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "mdpages-info-test")
	if err := os.WriteFile(testFile, []byte("test"), 0600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printInfoResult outputs human-readable results.
func printInfoResult(w io.Writer, r *infoResult) {
	fmt.Fprintf(w, "mdpages %s\n", r.Version)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Plugins")
	for _, ns := range registry.Namespaces {
		keys := r.Plugins[ns.String()]
		if len(keys) == 0 {
			fmt.Fprintf(w, "  %-16s (none)\n", ns.String())
			continue
		}
		fmt.Fprintf(w, "  %-16s %s\n", ns.String(), strings.Join(keys, ", "))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Converters")
	fmt.Fprintln(w, "  [OK] goldmark: built in")
	if r.Converters.Pandoc != "" {
		fmt.Fprintf(w, "  [OK] pandoc: %s\n", r.Converters.Pandoc)
	} else {
		fmt.Fprintln(w, "  [--] pandoc: not found (--pandoc unavailable)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s, %d CPU(s), %d worker(s)\n",
		r.Env.OS, r.Env.Arch, r.Env.CPUs, r.System.Workers)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
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
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
