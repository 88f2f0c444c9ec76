package mgmtprobe

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCheckFileExists(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "testfile")
	if err := os.WriteFile(tmp, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	d := newCheckDispatcher(emptySnapshot())

	if !d.evaluate(Check{Type: CheckFileExists, Value: tmp}) {
		t.Error("should find existing file")
	}
	if d.evaluate(Check{Type: CheckFileExists, Value: "/nonexistent/path/xyz"}) {
		t.Error("should not find nonexistent file")
	}
}

func TestEvaluateProcessRunning(t *testing.T) {
	snap := &processSnapshot{names: map[string]bool{"ccmexec.exe": true}}
	d := newCheckDispatcher(snap)

	if !d.evaluate(Check{Type: CheckProcessRunning, Value: "CcmExec.exe"}) {
		t.Error("process match should be case-insensitive")
	}
	if d.evaluate(Check{Type: CheckProcessRunning, Value: "notrunning.exe"}) {
		t.Error("expected false for non-running process")
	}
}

func TestEvaluateCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("echo command test uses unix shell semantics")
	}

	d := newCheckDispatcher(emptySnapshot())

	if !d.evaluate(Check{Type: CheckCommand, Value: "echo hello"}) {
		t.Error("expected true for successful command")
	}
	if !d.evaluate(Check{Type: CheckCommand, Value: "echo hello world", Parse: "hello"}) {
		t.Error("expected true for matching parse")
	}
	if d.evaluate(Check{Type: CheckCommand, Value: "echo hello", Parse: "xyz"}) {
		t.Error("expected false for non-matching parse")
	}
	if d.evaluate(Check{Type: CheckCommand, Value: "false"}) {
		t.Error("expected false for failing command")
	}
	if d.evaluate(Check{Type: CheckCommand, Value: ""}) {
		t.Error("expected false for empty command")
	}
}

func TestEvaluateOSFilter(t *testing.T) {
	d := newCheckDispatcher(emptySnapshot())
	if d.evaluate(Check{Type: CheckFileExists, Value: "/", OS: "nonexistent_os"}) {
		t.Error("expected false for wrong OS")
	}
	if !d.evaluate(Check{Type: CheckFileExists, Value: "/", OS: runtime.GOOS}) {
		t.Error("expected true for correct OS with existing path")
	}
}

func TestEvaluateUnknownCheckType(t *testing.T) {
	d := newCheckDispatcher(emptySnapshot())
	if d.evaluate(Check{Type: CheckType("unknown_type"), Value: "test"}) {
		t.Error("expected false for unknown check type")
	}
}

func TestEvaluateSignatureFirstMatchWins(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "agent.exe")
	if err := os.WriteFile(tmp, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	snap := &processSnapshot{names: map[string]bool{"agent.exe": true}}
	d := newCheckDispatcher(snap)

	sig := Signature{
		Name: "Test Tool", Category: CategoryPatchManagement,
		OS: []string{runtime.GOOS},
		Checks: []Check{
			{Type: CheckProcessRunning, Value: "agent.exe"},
			{Type: CheckFileExists, Value: tmp},
		},
	}

	det, matched := evaluateSignature(d, sig)
	if !matched {
		t.Fatal("expected signature to match")
	}
	if det.Status != StatusActive {
		t.Errorf("status = %v, want active (process check matched first)", det.Status)
	}
}

func TestEvaluateSignatureFileOnlyIsInstalled(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "agent.exe")
	if err := os.WriteFile(tmp, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	d := newCheckDispatcher(emptySnapshot())
	sig := Signature{
		Name: "Test Tool", Category: CategoryPatchManagement,
		OS: []string{runtime.GOOS},
		Checks: []Check{
			{Type: CheckProcessRunning, Value: "agent.exe"},
			{Type: CheckFileExists, Value: tmp},
		},
	}

	det, matched := evaluateSignature(d, sig)
	if !matched {
		t.Fatal("expected signature to match")
	}
	if det.Status != StatusInstalled {
		t.Errorf("status = %v, want installed", det.Status)
	}
}

func TestEvaluateSignatureNoMatch(t *testing.T) {
	d := newCheckDispatcher(emptySnapshot())
	sig := Signature{
		Name: "Test Tool", Category: CategoryPatchManagement,
		OS:     []string{runtime.GOOS},
		Checks: []Check{{Type: CheckProcessRunning, Value: "ghost.exe"}},
	}
	if _, matched := evaluateSignature(d, sig); matched {
		t.Error("expected no match")
	}
}
