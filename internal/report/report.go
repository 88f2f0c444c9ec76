// Package report defines the probe result model and renders the single
// status line each probe hands back to the calling management agent.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Status is a probe outcome severity.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode maps a status to the process exit code contract:
// 0 ok, 1 warning, 2 critical, 3 unknown.
func (s Status) ExitCode() int {
	switch s {
	case StatusOK:
		return 0
	case StatusWarning:
		return 1
	case StatusCritical:
		return 2
	default:
		return 3
	}
}

// MarshalJSON renders the status as its string form.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// MarshalYAML renders the status as its string form.
func (s Status) MarshalYAML() (any, error) {
	return s.String(), nil
}

// Result is the outcome of one probe run.
type Result struct {
	Probe       string         `json:"probe" yaml:"probe"`
	Status      Status         `json:"status" yaml:"status"`
	Summary     string         `json:"summary" yaml:"summary"`
	Warnings    []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Details     map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	CollectedAt time.Time      `json:"collectedAt" yaml:"collectedAt"`
	DurationMs  int64          `json:"durationMs" yaml:"durationMs"`
}

// New returns a Result stamped with the probe name and collection time.
func New(probe string) Result {
	return Result{
		Probe:       probe,
		Status:      StatusOK,
		CollectedAt: time.Now().UTC(),
		Details:     make(map[string]any),
	}
}

// Warn records a warning and raises the status to at least WARNING.
func (r *Result) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
	r.Raise(StatusWarning)
}

// Crit records a warning and raises the status to CRITICAL.
func (r *Result) Crit(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
	r.Raise(StatusCritical)
}

// Raise bumps the status if the given one is more severe. UNKNOWN only
// replaces OK: a probe that already found concrete problems keeps them.
func (r *Result) Raise(s Status) {
	if s == StatusUnknown {
		if r.Status == StatusOK {
			r.Status = StatusUnknown
		}
		return
	}
	if severityRank(s) > severityRank(r.Status) {
		r.Status = s
	}
}

func severityRank(s Status) int {
	switch s {
	case StatusOK:
		return 0
	case StatusUnknown:
		return 1
	case StatusWarning:
		return 2
	case StatusCritical:
		return 3
	}
	return 0
}

// Format renders the one-line report the calling agent consumes:
//
//	WINUPDATE WARNING: WSUS-managed, last scan 12d ago | wuauserv stopped (automatic); scan overdue
//
// Warnings render in insertion order, joined by "; ".
func Format(r Result) string {
	var b strings.Builder
	probe := strings.ToUpper(strings.TrimSpace(r.Probe))
	if probe == "" {
		probe = "PROBE"
	}
	b.WriteString(probe)
	b.WriteByte(' ')
	b.WriteString(r.Status.String())
	b.WriteString(": ")

	summary := strings.TrimSpace(r.Summary)
	if summary == "" {
		summary = "no data"
	}
	b.WriteString(summary)

	if len(r.Warnings) > 0 {
		b.WriteString(" | ")
		b.WriteString(strings.Join(r.Warnings, "; "))
	}
	return b.String()
}

// EncodeJSON renders one or more results as indented JSON.
func EncodeJSON(results []Result) (string, error) {
	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	return string(out), nil
}

// EncodeYAML renders one or more results as YAML.
func EncodeYAML(results []Result) (string, error) {
	out, err := yaml.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	return string(out), nil
}

// Worst returns the most severe status across results.
// An empty slice is UNKNOWN: the caller asked for probes and got none.
func Worst(results []Result) Status {
	if len(results) == 0 {
		return StatusUnknown
	}
	worst := results[0].Status
	for _, r := range results[1:] {
		if severityRank(r.Status) > severityRank(worst) {
			worst = r.Status
		}
	}
	return worst
}

// SortedDetailKeys returns the detail keys in stable order, for renderers
// that want deterministic output.
func SortedDetailKeys(r Result) []string {
	keys := make([]string, 0, len(r.Details))
	for k := range r.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
