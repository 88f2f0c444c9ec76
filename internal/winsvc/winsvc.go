// Package winsvc queries Windows service state through the service control
// manager and evaluates services against expected run states.
package winsvc

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned on platforms without a service control manager.
var ErrUnsupported = errors.New("winsvc: not supported on this platform")

// ServiceStatus is the normalized run state of a service.
type ServiceStatus string

// ServiceStatus constants.
const (
	StatusRunning ServiceStatus = "running"
	StatusStopped ServiceStatus = "stopped"
	StatusUnknown ServiceStatus = "unknown"
)

// StartType constants (normalized from SCM start types).
const (
	StartAutomatic = "automatic"
	StartManual    = "manual"
	StartDisabled  = "disabled"
)

// ServiceInfo describes a system service.
type ServiceInfo struct {
	Name        string        `json:"name"`
	DisplayName string        `json:"displayName,omitempty"`
	Status      ServiceStatus `json:"status"`
	StartType   string        `json:"startType,omitempty"`
	BinaryPath  string        `json:"binaryPath,omitempty"`
}

// IsActive returns true if the service is currently running.
func (s ServiceInfo) IsActive() bool {
	return s.Status == StatusRunning
}

// Expectation pairs a service name with the state it should be in.
// Expected is one of "running", "stopped" or "manual" ("manual" means the
// service need not run but must not be disabled).
type Expectation struct {
	Name     string
	Expected string
}

// Evaluate compares actual service state against the expectation and
// returns a finding string, or "" when the service complies.
func (e Expectation) Evaluate(info ServiceInfo) string {
	switch e.Expected {
	case "running":
		if info.Status == StatusRunning {
			return ""
		}
		if info.StartType == StartDisabled {
			return fmt.Sprintf("%s is disabled", e.Name)
		}
		return fmt.Sprintf("%s is %s (start type %s)", e.Name, info.Status, orUnknown(info.StartType))
	case "stopped":
		if info.Status != StatusRunning {
			return ""
		}
		return fmt.Sprintf("%s is running but expected stopped", e.Name)
	case "manual":
		if info.StartType != StartDisabled {
			return ""
		}
		return fmt.Sprintf("%s is disabled but must be startable", e.Name)
	}
	return fmt.Sprintf("%s has unknown expectation %q", e.Name, e.Expected)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
