package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPreInitLoggerUsesConfiguredHandler(t *testing.T) {
	logger := L("wuhealth")

	var buf bytes.Buffer
	Init("text", "info", &buf)

	logger.Info("policy read", "source", "HKLM")

	out := buf.String()
	if !strings.Contains(out, "msg=\"policy read\"") {
		t.Fatalf("expected plain message, got: %s", out)
	}
	if !strings.Contains(out, "component=wuhealth") {
		t.Fatalf("expected component field, got: %s", out)
	}
	if !strings.Contains(out, "source=HKLM") {
		t.Fatalf("expected source field, got: %s", out)
	}
}

func TestPreInitLoggerRespectsConfiguredLevel(t *testing.T) {
	logger := L("patchlevel")

	var buf bytes.Buffer
	Init("text", "warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info log should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn log should be emitted: %s", out)
	}
}

func TestInitJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init("json", "info", &buf)

	L("report").Info("rendered")

	out := buf.String()
	if !strings.Contains(out, `"component":"report"`) {
		t.Fatalf("expected JSON component field, got: %s", out)
	}
}

func TestReinitSwitchesFormats(t *testing.T) {
	// Handler types differ between formats; swapping them repeatedly
	// must not panic and the last Init wins.
	var buf bytes.Buffer
	Init("text", "info", &buf)
	Init("json", "info", &buf)
	Init("text", "info", &buf)

	buf.Reset()
	L("config").Info("reloaded")

	out := buf.String()
	if !strings.Contains(out, "msg=reloaded") {
		t.Fatalf("expected text format after final Init, got: %s", out)
	}
}

func TestRotatingWriterRotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "probe.log")

	rw, err := NewRotatingWriter(path, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer rw.Close()

	// Force the rotation threshold down so the test stays small.
	rw.maxSize = 64

	chunk := bytes.Repeat([]byte("x"), 40)
	for i := 0; i < 4; i++ {
		if _, err := rw.Write(chunk); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("expected first backup after rotation: %v", err)
	}
}

func TestParseLevelDefaultsToWarn(t *testing.T) {
	cases := map[string]string{
		"debug":   "DEBUG",
		"info":    "INFO",
		"warning": "WARN",
		"error":   "ERROR",
		"bogus":   "WARN",
		"":        "WARN",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
