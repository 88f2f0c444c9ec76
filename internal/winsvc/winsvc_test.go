package winsvc

import "testing"

func TestServiceInfoIsActive(t *testing.T) {
	active := ServiceInfo{Name: "wuauserv", Status: StatusRunning}
	if !active.IsActive() {
		t.Error("running service should be active")
	}
	stopped := ServiceInfo{Name: "wuauserv", Status: StatusStopped}
	if stopped.IsActive() {
		t.Error("stopped service should not be active")
	}
}

func TestExpectationRunning(t *testing.T) {
	e := Expectation{Name: "wuauserv", Expected: "running"}

	if msg := e.Evaluate(ServiceInfo{Name: "wuauserv", Status: StatusRunning, StartType: StartAutomatic}); msg != "" {
		t.Errorf("running service should comply, got %q", msg)
	}

	msg := e.Evaluate(ServiceInfo{Name: "wuauserv", Status: StatusStopped, StartType: StartAutomatic})
	if msg != "wuauserv is stopped (start type automatic)" {
		t.Errorf("unexpected finding: %q", msg)
	}

	msg = e.Evaluate(ServiceInfo{Name: "wuauserv", Status: StatusStopped, StartType: StartDisabled})
	if msg != "wuauserv is disabled" {
		t.Errorf("unexpected finding: %q", msg)
	}
}

func TestExpectationStopped(t *testing.T) {
	e := Expectation{Name: "DoSvc", Expected: "stopped"}

	if msg := e.Evaluate(ServiceInfo{Name: "DoSvc", Status: StatusStopped}); msg != "" {
		t.Errorf("stopped service should comply, got %q", msg)
	}
	if msg := e.Evaluate(ServiceInfo{Name: "DoSvc", Status: StatusRunning}); msg == "" {
		t.Error("running service should produce a finding")
	}
}

func TestExpectationManual(t *testing.T) {
	e := Expectation{Name: "BITS", Expected: "manual"}

	if msg := e.Evaluate(ServiceInfo{Name: "BITS", Status: StatusStopped, StartType: StartManual}); msg != "" {
		t.Errorf("manual stopped service should comply, got %q", msg)
	}
	if msg := e.Evaluate(ServiceInfo{Name: "BITS", Status: StatusStopped, StartType: StartDisabled}); msg == "" {
		t.Error("disabled service should produce a finding")
	}
}

func TestExpectationUnknownStartType(t *testing.T) {
	e := Expectation{Name: "UsoSvc", Expected: "running"}
	msg := e.Evaluate(ServiceInfo{Name: "UsoSvc", Status: StatusUnknown})
	if msg != "UsoSvc is unknown (start type unknown)" {
		t.Errorf("unexpected finding: %q", msg)
	}
}
