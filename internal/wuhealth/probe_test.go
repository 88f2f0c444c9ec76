package wuhealth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/opsdeck/winprobe/internal/report"
	"github.com/opsdeck/winprobe/internal/winsvc"
)

func healthyState() State {
	return State{
		Policy: Policy{},
		Services: []winsvc.ServiceInfo{
			{Name: "wuauserv", Status: winsvc.StatusRunning, StartType: winsvc.StartAutomatic},
			{Name: "BITS", Status: winsvc.StatusStopped, StartType: winsvc.StartManual},
			{Name: "CryptSvc", Status: winsvc.StatusRunning, StartType: winsvc.StartAutomatic},
			{Name: "UsoSvc", Status: winsvc.StatusRunning, StartType: winsvc.StartAutomatic},
			{Name: "DoSvc", Status: winsvc.StatusStopped, StartType: winsvc.StartManual},
		},
		LastDetect:   testNow.Add(-24 * time.Hour),
		LastInstall:  testNow.Add(-10 * 24 * time.Hour),
		Pending:      PendingUpdates{},
		PendingAsked: true,
		FreeDiskGB:   120,
		DiskKnown:    true,
	}
}

func defaultOptions() Options {
	return Options{
		DetectStaleDays:  7,
		InstallStaleDays: 40,
		MinDiskSpaceGB:   5,
		QueryPending:     true,
		Services:         DefaultServices(),
	}
}

func TestEvaluateHealthy(t *testing.T) {
	r := Evaluate(healthyState(), defaultOptions(), testNow)

	if r.Status != report.StatusOK {
		t.Fatalf("status = %v, warnings %v", r.Status, r.Warnings)
	}
	line := report.Format(r)
	if !strings.HasPrefix(line, "WINUPDATE OK: ") {
		t.Errorf("line = %q", line)
	}
	if !strings.Contains(line, "scanned yesterday") {
		t.Errorf("line = %q, want scan recency", line)
	}
	if !strings.Contains(line, "no updates pending") {
		t.Errorf("line = %q, want pending mention", line)
	}
}

func TestEvaluateStoppedOrchestrator(t *testing.T) {
	st := healthyState()
	st.Services[0].Status = winsvc.StatusStopped

	r := Evaluate(st, defaultOptions(), testNow)
	if r.Status != report.StatusCritical {
		t.Fatalf("status = %v, want CRITICAL", r.Status)
	}
	if !strings.Contains(report.Format(r), "wuauserv is stopped") {
		t.Errorf("line = %q", report.Format(r))
	}
}

func TestEvaluateDisabledHelperService(t *testing.T) {
	st := healthyState()
	st.Services[1].StartType = winsvc.StartDisabled

	r := Evaluate(st, defaultOptions(), testNow)
	if r.Status != report.StatusWarning {
		t.Fatalf("status = %v, want WARNING", r.Status)
	}
}

func TestEvaluateMissingService(t *testing.T) {
	st := healthyState()
	st.Services = st.Services[:4]

	r := Evaluate(st, defaultOptions(), testNow)
	if r.Status != report.StatusWarning {
		t.Fatalf("status = %v, want WARNING", r.Status)
	}
	if !strings.Contains(report.Format(r), "DoSvc not found") {
		t.Errorf("line = %q", report.Format(r))
	}
}

func TestEvaluateStaleScan(t *testing.T) {
	st := healthyState()
	st.LastDetect = testNow.Add(-12 * 24 * time.Hour)

	r := Evaluate(st, defaultOptions(), testNow)
	if r.Status != report.StatusWarning {
		t.Fatalf("status = %v, want WARNING", r.Status)
	}
	if !strings.Contains(report.Format(r), "last update scan 12 days ago") {
		t.Errorf("line = %q", report.Format(r))
	}
}

func TestEvaluateNoScanRecorded(t *testing.T) {
	st := healthyState()
	st.LastDetect = time.Time{}

	r := Evaluate(st, defaultOptions(), testNow)
	if r.Status != report.StatusWarning {
		t.Fatalf("status = %v, want WARNING", r.Status)
	}
}

func TestEvaluateRebootPending(t *testing.T) {
	st := healthyState()
	st.RebootNeeded = true
	st.RebootWhy = []string{"component servicing reboot pending"}
	st.BootTime = testNow.Add(-20 * 24 * time.Hour)

	r := Evaluate(st, defaultOptions(), testNow)
	if r.Status != report.StatusWarning {
		t.Fatalf("status = %v, want WARNING", r.Status)
	}
	if !strings.Contains(report.Format(r), "reboot pending (component servicing reboot pending)") {
		t.Errorf("line = %q", report.Format(r))
	}
	if up, _ := r.Details["uptimeDays"].(int); up != 20 {
		t.Errorf("uptimeDays = %v, want 20", r.Details["uptimeDays"])
	}
}

func TestEvaluatePendingBacklog(t *testing.T) {
	st := healthyState()
	st.Pending = PendingUpdates{Total: 7, Security: 3}

	r := Evaluate(st, defaultOptions(), testNow)
	if r.Status != report.StatusWarning {
		t.Fatalf("status = %v, want WARNING", r.Status)
	}
	if !strings.Contains(report.Format(r), "7 updates pending, 3 security") {
		t.Errorf("line = %q", report.Format(r))
	}
}

func TestEvaluatePendingQueryFailure(t *testing.T) {
	st := healthyState()
	st.PendingErr = errors.New("search failed: exception occurred. (0x8024002E)")

	r := Evaluate(st, defaultOptions(), testNow)
	if r.Status != report.StatusUnknown {
		t.Fatalf("status = %v, want UNKNOWN", r.Status)
	}
	msg, _ := r.Details["pendingQueryError"].(string)
	if !strings.Contains(msg, "WU_E_WU_DISABLED") {
		t.Errorf("pendingQueryError = %q, want decoded HRESULT", msg)
	}
}

func TestEvaluatePendingFailureDoesNotMaskProblems(t *testing.T) {
	st := healthyState()
	st.PendingErr = errors.New("failed to initialize COM")
	st.Services[0].Status = winsvc.StatusStopped

	r := Evaluate(st, defaultOptions(), testNow)
	if r.Status != report.StatusCritical {
		t.Fatalf("status = %v, want CRITICAL", r.Status)
	}
}

func TestEvaluateLowDisk(t *testing.T) {
	st := healthyState()
	st.FreeDiskGB = 2.4

	r := Evaluate(st, defaultOptions(), testNow)
	if r.Status != report.StatusWarning {
		t.Fatalf("status = %v, want WARNING", r.Status)
	}
	if !strings.Contains(report.Format(r), "low disk space: 2.4 GB free") {
		t.Errorf("line = %q", report.Format(r))
	}
}

func TestProbeUnsupportedPlatform(t *testing.T) {
	// Collection only works on Windows hosts; elsewhere the probe must
	// still produce a well-formed UNKNOWN line.
	r := Probe(Options{})
	if r.Probe != "winupdate" {
		t.Errorf("probe = %q", r.Probe)
	}
	line := report.Format(r)
	if !strings.HasPrefix(line, "WINUPDATE ") {
		t.Errorf("line = %q", line)
	}
}
