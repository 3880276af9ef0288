package main

import (
	"encoding/json"
	"strings"
	"testing"
)

// Notes:
// - runInfo probes the real machine (Chrome, pandoc, temp dir). Tests only
//   assert on parts that do not depend on what is installed.

func TestRunInfo_Plugins(t *testing.T) {
	t.Parallel()

	r := runInfo()

	if len(r.Plugins["yaml"]) == 0 {
		t.Fatalf("no yaml plugins reported: %+v", r.Plugins)
	}
	for _, want := range []string{"figure", "quiz", "video"} {
		if !strings.Contains(strings.Join(r.Plugins["yaml"], ","), want) {
			t.Errorf("yaml plugins %v should include %q", r.Plugins["yaml"], want)
		}
	}
	if !r.Converters.Goldmark {
		t.Error("goldmark is always available")
	}
	if r.System.Workers < 1 {
		t.Errorf("Workers = %d, want >= 1", r.System.Workers)
	}
}

func TestRunInfoCmd_JSON(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	code := runInfoCmd([]string{"--json"}, env)
	if code != ExitSuccess && code != ExitGeneral {
		t.Fatalf("runInfoCmd() = %d", code)
	}

	var got infoResult
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if got.Version != Version {
		t.Errorf("Version = %q, want %q", got.Version, Version)
	}
	switch got.Status {
	case "ready", "warnings", "errors":
	default:
		t.Errorf("Status = %q", got.Status)
	}
}

func TestRunInfoCmd_UnknownFlag(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv()
	if code := runInfoCmd([]string{"--nope"}, env); code != ExitUsage {
		t.Errorf("runInfoCmd() = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "--nope") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestPrintInfoResult(t *testing.T) {
	t.Parallel()

	r := &infoResult{
		Status:     "warnings",
		Version:    "1.2.3",
		Plugins:    map[string][]string{"yaml": {"figure", "table"}},
		Converters: converterInfo{Goldmark: true},
		Env:        envInfo{OS: "linux", Arch: "amd64", CPUs: 4, Container: true, ContainerHint: "/.dockerenv"},
		System:     systemInfo{TempWritable: true, Workers: 2},
		Warnings:   []string{"Chrome/Chromium not found"},
	}

	var buf strings.Builder
	printInfoResult(&buf, r)
	out := buf.String()

	for _, want := range []string{
		"mdpages 1.2.3",
		"figure, table",
		"paragraph        (none)",
		"pandoc: not found",
		"[WARN] Not found",
		"linux/amd64, 4 CPU(s), 2 worker(s)",
		"Container: detected (/.dockerenv)",
		"[WARN] Chrome/Chromium not found",
		"Status: Ready with warnings",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q\n%s", want, out)
		}
	}
}
