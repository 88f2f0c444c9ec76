package patchlevel

import (
	"fmt"
	"time"

	"github.com/opsdeck/winprobe/internal/logging"
	"github.com/opsdeck/winprobe/internal/report"
)

var log = logging.L("patchlevel")

// Thresholds set how many days behind the current security release a
// device may be before the probe warns or goes critical.
type Thresholds struct {
	WarnDays int
	CritDays int
}

// Reference is the newest known cumulative update for the device's build
// line, from the built-in catalog or a fresher scraped source.
type Reference struct {
	KB       string
	Released time.Time
	Source   string // "catalog" or "scrape"
}

// Evaluate computes patch compliance from already-collected facts. Pure:
// all environment access happens in the caller.
func Evaluate(os OSInfo, hotfixes []Hotfix, ref *Reference, now time.Time, th Thresholds) report.Result {
	r := report.New("patches")
	r.Details["os"] = os.VersionName()
	r.Details["build"] = os.FullBuild()
	r.Details["hotfixCount"] = len(hotfixes)

	if !knownBuild(os.Build) && os.Build > 0 {
		r.Warn("unrecognized OS build %d", os.Build)
	}

	if ref != nil {
		r.Details["referenceKb"] = ref.KB
		r.Details["referenceReleased"] = ref.Released.Format("2006-01-02")
		r.Details["referenceSource"] = ref.Source

		for _, h := range hotfixes {
			if KBNumber(h.HotFixID) != 0 && KBNumber(h.HotFixID) == KBNumber(ref.KB) {
				r.Summary = fmt.Sprintf("%s build %s, current on %s (%s)",
					os.VersionName(), os.FullBuild(), ref.KB, Classify(ref.Released))
				return r
			}
		}
	}

	latest, ok := LatestSecurityHotfix(hotfixes)
	if !ok {
		r.Summary = fmt.Sprintf("%s build %s, no dated security updates in inventory", os.VersionName(), os.FullBuild())
		r.Raise(report.StatusUnknown)
		return r
	}

	behind := DaysBehind(latest.InstalledOn, now)
	r.Details["latestSecurityKb"] = latest.HotFixID
	r.Details["latestSecurityInstalled"] = latest.InstalledOn.Format("2006-01-02")
	r.Details["daysBehind"] = behind

	r.Summary = fmt.Sprintf("%s build %s, latest security update %s installed %s",
		os.VersionName(), os.FullBuild(), latest.HotFixID, latest.InstalledOn.Format("2006-01-02"))

	switch {
	case behind >= th.CritDays:
		r.Crit("security updates %dd behind the current release cycle", behind)
	case behind >= th.WarnDays:
		r.Warn("security updates %dd behind the current release cycle", behind)
	}

	return r
}

// Probe collects OS identity and installed hotfixes, resolves the newest
// known update for the build line and evaluates compliance. Collection
// failures degrade to an UNKNOWN result rather than an error: a probe must
// always hand a status line back to the caller.
func Probe(ref *Reference, th Thresholds) report.Result {
	start := time.Now()

	os, err := DetectOS()
	if err != nil {
		log.Warn("OS detection failed", "error", err)
		r := report.New("patches")
		r.Summary = "unable to read OS version"
		r.Raise(report.StatusUnknown)
		r.DurationMs = time.Since(start).Milliseconds()
		return r
	}

	hotfixes, err := InstalledHotfixes()
	if err != nil {
		log.Warn("hotfix inventory failed", "error", err)
		r := report.New("patches")
		r.Summary = fmt.Sprintf("%s build %s, hotfix inventory unavailable", os.VersionName(), os.FullBuild())
		r.Raise(report.StatusUnknown)
		r.DurationMs = time.Since(start).Milliseconds()
		return r
	}

	now := time.Now().UTC()
	if ref == nil {
		if entry, ok := LatestFor(os.Build, now); ok {
			ref = &Reference{KB: entry.KB, Released: entry.Released, Source: "catalog"}
		}
	}

	r := Evaluate(os, hotfixes, ref, now, th)
	r.DurationMs = time.Since(start).Milliseconds()
	return r
}
