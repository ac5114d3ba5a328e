package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const page = `<div id="a"><div id="a-a"><div id="a-a-a"></div></div><div id="a-b"></div></div><div id="b"></div>`

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Events(t *testing.T) {
	code, out, _ := runCmd(t, "events")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 67 {
		t.Errorf("got %d lines, want header plus 66 events", len(lines))
	}
	if !strings.HasPrefix(lines[0], "EVENT") {
		t.Errorf("header = %q", lines[0])
	}

	code, out, _ = runCmd(t, "events", "--captured")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	for _, name := range []string{"blur", "focus", "mouseenter", "mouseleave"} {
		if !strings.Contains(out, name) {
			t.Errorf("captured list missing %s:\n%s", name, out)
		}
	}
	if strings.Contains(out, "click") || strings.Contains(out, "bubble") {
		t.Errorf("captured list has bubbling events:\n%s", out)
	}
}

func TestRun_Fire(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "page.html")
	if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCmd(t, "fire",
		"--html", htmlPath,
		"--container", "a",
		"--bind", "click,focus",
		"--log-level", "off",
		"click:a-a-a", "focus:a-b")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	want := "click div#a-a-a target=div#a-a-a\n" +
		"click div#a-a target=div#a-a-a\n" +
		"click div#a target=div#a-a-a\n" +
		"focus div#a-b target=div#a-b\n" +
		"focus div#a target=div#a-b\n"
	if out != want {
		t.Errorf("stdout =\n%s\nwant\n%s", out, want)
	}
}

func TestRun_FireErrors(t *testing.T) {
	code, _, errOut := runCmd(t, "fire", "click:a")
	if code != 1 || !strings.Contains(errOut, "no html document") {
		t.Errorf("code = %d, stderr = %q", code, errOut)
	}

	code, _, errOut = runCmd(t, "fire")
	if code != 1 || !strings.Contains(errOut, "requires at least 1 arg") {
		t.Errorf("code = %d, stderr = %q", code, errOut)
	}
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCmd(t, "--version")
	if code != 0 || !strings.Contains(out, "dev (commit unknown") {
		t.Errorf("code = %d, stdout = %q", code, out)
	}
}
