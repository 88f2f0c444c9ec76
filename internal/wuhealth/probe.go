package wuhealth

import (
	"strconv"
	"strings"
	"time"

	"github.com/opsdeck/winprobe/internal/logging"
	"github.com/opsdeck/winprobe/internal/report"
	"github.com/opsdeck/winprobe/internal/winsvc"
)

var log = logging.L("wuhealth")

const maxReportedTitles = 5

// PendingUpdates summarizes the update backlog reported by the Windows
// Update Agent.
type PendingUpdates struct {
	Total    int      `json:"total"`
	Security int      `json:"security"`
	Titles   []string `json:"titles,omitempty"`
}

// Options tunes probe thresholds. Zero values fall back to the defaults
// shipped in the config package; callers normally pass config-derived values.
type Options struct {
	DetectStaleDays  int
	InstallStaleDays int
	MinDiskSpaceGB   float64
	QueryPending     bool
	Services         []winsvc.Expectation
}

// DefaultServices lists the services Windows Update depends on and the
// state each is expected to be in on a healthy machine.
func DefaultServices() []winsvc.Expectation {
	return []winsvc.Expectation{
		{Name: "wuauserv", Expected: "running"},
		{Name: "BITS", Expected: "manual"},
		{Name: "CryptSvc", Expected: "running"},
		{Name: "UsoSvc", Expected: "manual"},
		{Name: "DoSvc", Expected: "manual"},
	}
}

// State is everything the probe collected from the machine. Collection and
// evaluation are separated so the classification rules stay testable.
type State struct {
	Policy       Policy
	Services     []winsvc.ServiceInfo
	ServicesErr  error
	LastDetect   time.Time
	LastInstall  time.Time
	RebootNeeded bool
	RebootWhy    []string
	BootTime     time.Time
	Pending      PendingUpdates
	PendingErr   error
	PendingAsked bool
	FreeDiskGB   float64
	DiskKnown    bool
}

// Evaluate applies the health rules to collected state and returns the
// probe result. Pure: all inputs are explicit.
func Evaluate(st State, opts Options, now time.Time) report.Result {
	r := report.New("winupdate")

	EvaluatePolicy(&r, st.Policy, now)
	evaluateServices(&r, st, opts.Services)
	evaluateRecency(&r, st, opts, now)
	evaluateReboot(&r, st, now)
	evaluatePending(&r, st)

	if st.DiskKnown {
		r.Details["systemDriveFreeGB"] = round1(st.FreeDiskGB)
		if opts.MinDiskSpaceGB > 0 && st.FreeDiskGB < opts.MinDiskSpaceGB {
			r.Warn("low disk space: %.1f GB free on system drive (need %.0f GB)",
				st.FreeDiskGB, opts.MinDiskSpaceGB)
		}
	}

	if r.Status == report.StatusOK {
		r.Summary = okSummary(st, now)
	} else {
		r.Summary = degradedSummary(&r, st)
	}
	return r
}

func evaluateServices(r *report.Result, st State, expectations []winsvc.Expectation) {
	if st.ServicesErr != nil {
		r.Details["serviceQueryError"] = st.ServicesErr.Error()
		r.Raise(report.StatusUnknown)
		return
	}

	byName := make(map[string]winsvc.ServiceInfo, len(st.Services))
	for _, info := range st.Services {
		byName[strings.ToLower(info.Name)] = info
	}

	for _, exp := range expectations {
		info, ok := byName[strings.ToLower(exp.Name)]
		if !ok || info.Status == winsvc.StatusUnknown {
			r.Warn("service %s not found", exp.Name)
			continue
		}
		if finding := exp.Evaluate(info); finding != "" {
			// A dead update orchestrator means no updates at all.
			if strings.EqualFold(exp.Name, "wuauserv") {
				r.Crit("%s", finding)
			} else {
				r.Warn("%s", finding)
			}
		}
	}
}

func evaluateRecency(r *report.Result, st State, opts Options, now time.Time) {
	if st.LastDetect.IsZero() {
		r.Warn("no successful update scan recorded")
	} else {
		age := daysSince(st.LastDetect, now)
		r.Details["lastScanDaysAgo"] = age
		if opts.DetectStaleDays > 0 && age > opts.DetectStaleDays {
			r.Warn("last update scan %d days ago", age)
		}
	}

	if st.LastInstall.IsZero() {
		r.Details["lastInstall"] = "never"
	} else {
		age := daysSince(st.LastInstall, now)
		r.Details["lastInstallDaysAgo"] = age
		if opts.InstallStaleDays > 0 && age > opts.InstallStaleDays {
			r.Warn("last update install %d days ago", age)
		}
	}
}

func evaluateReboot(r *report.Result, st State, now time.Time) {
	if !st.RebootNeeded {
		return
	}
	r.Details["rebootPending"] = st.RebootWhy
	if !st.BootTime.IsZero() {
		// Uptime bounds how long the reboot can have been outstanding.
		r.Details["uptimeDays"] = daysSince(st.BootTime, now)
	}
	r.Warn("reboot pending (%s)", strings.Join(st.RebootWhy, ", "))
}

func evaluatePending(r *report.Result, st State) {
	if !st.PendingAsked {
		return
	}
	if st.PendingErr != nil {
		r.Details["pendingQueryError"] = DescribeWUAError(st.PendingErr)
		r.Raise(report.StatusUnknown)
		return
	}
	r.Details["pendingUpdates"] = st.Pending.Total
	r.Details["pendingSecurity"] = st.Pending.Security
	if st.Pending.Total == 0 {
		return
	}
	if st.Pending.Security > 0 {
		r.Warn("%d updates pending, %d security", st.Pending.Total, st.Pending.Security)
	} else {
		r.Warn("%d updates pending", st.Pending.Total)
	}
	if len(st.Pending.Titles) > 0 {
		r.Details["pendingTitles"] = st.Pending.Titles
	}
}

func okSummary(st State, now time.Time) string {
	var b strings.Builder
	b.WriteString("updates healthy via ")
	b.WriteString(st.Policy.Source())
	if !st.LastDetect.IsZero() {
		age := daysSince(st.LastDetect, now)
		switch age {
		case 0:
			b.WriteString(", scanned today")
		case 1:
			b.WriteString(", scanned yesterday")
		default:
			b.WriteString(", scanned ")
			b.WriteString(strconv.Itoa(age))
			b.WriteString(" days ago")
		}
	}
	if st.PendingAsked && st.PendingErr == nil {
		b.WriteString(", no updates pending")
	}
	return b.String()
}

func degradedSummary(r *report.Result, st State) string {
	n := len(r.Warnings)
	if n == 0 {
		return "update state could not be determined"
	}
	noun := "issues"
	if n == 1 {
		noun = "issue"
	}
	return strconv.Itoa(n) + " " + noun + " via " + st.Policy.Source()
}

func daysSince(t, now time.Time) int {
	d := int(now.Sub(t).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}

// Probe collects Windows Update state from the local machine and evaluates
// it. On non-Windows hosts the result is UNKNOWN.
func Probe(opts Options) report.Result {
	start := time.Now()
	if len(opts.Services) == 0 {
		opts.Services = DefaultServices()
	}

	st, err := collect(opts)
	if err != nil {
		log.Warn("collection failed", "error", err)
		r := report.New("winupdate")
		r.Summary = "not supported on this platform"
		r.Raise(report.StatusUnknown)
		r.DurationMs = time.Since(start).Milliseconds()
		return r
	}

	r := Evaluate(st, opts, time.Now())
	r.DurationMs = time.Since(start).Milliseconds()
	return r
}
