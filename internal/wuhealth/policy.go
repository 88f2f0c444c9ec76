// Package wuhealth probes Windows Update health: update-service state,
// update policy from the registry, scan/install recency, pending reboots
// and the pending-update backlog.
package wuhealth

import (
	"fmt"
	"time"

	"github.com/opsdeck/winprobe/internal/report"
)

// Policy is the effective Windows Update policy read from the registry.
// Zero values mean "not configured".
type Policy struct {
	WSUSServer          string    `json:"wsusServer,omitempty"`
	WSUSStatusServer    string    `json:"wsusStatusServer,omitempty"`
	TargetGroup         string    `json:"targetGroup,omitempty"`
	UseWSUS             bool      `json:"useWsus"`
	NoAutoUpdate        bool      `json:"noAutoUpdate"`
	AUOptions           int       `json:"auOptions,omitempty"`
	DisableDualScan     bool      `json:"disableDualScan"`
	NoInternetLocations bool      `json:"noInternetLocations"`
	PauseQualityEnds    time.Time `json:"pauseQualityEnds,omitempty"`
	PauseFeatureEnds    time.Time `json:"pauseFeatureEnds,omitempty"`
}

// Managed reports whether updates are WSUS-managed: the UseWUServer switch
// is on and a server is actually configured.
func (p Policy) Managed() bool {
	return p.UseWSUS && p.WSUSServer != ""
}

// Source names where this device gets updates from.
func (p Policy) Source() string {
	if p.Managed() {
		return "WSUS"
	}
	return "Windows Update"
}

// AUOptionsDescription translates the AUOptions policy value.
func AUOptionsDescription(v int) string {
	switch v {
	case 1:
		return "automatic updates disabled"
	case 2:
		return "notify before download"
	case 3:
		return "auto download, notify install"
	case 4:
		return "auto download, scheduled install"
	case 5:
		return "local admin chooses"
	case 7:
		return "auto download, notify install/restart"
	default:
		return fmt.Sprintf("option %d", v)
	}
}

// EvaluatePolicy applies classification rules to the policy and records
// findings on the result.
func EvaluatePolicy(r *report.Result, p Policy, now time.Time) {
	r.Details["updateSource"] = p.Source()
	if p.TargetGroup != "" {
		r.Details["wsusTargetGroup"] = p.TargetGroup
	}

	// Broken WSUS wiring: the switch is on but no server is set, or a
	// server is set without the switch. Either way update scans misfire.
	if p.UseWSUS && p.WSUSServer == "" {
		r.Crit("UseWUServer=1 but no WSUS server configured")
	} else if !p.UseWSUS && p.WSUSServer != "" {
		r.Warn("WSUS server %s configured but UseWUServer is off", p.WSUSServer)
	}

	if p.Managed() && p.WSUSStatusServer == "" {
		r.Warn("WSUS reporting server not set (WUStatusServer)")
	}

	if p.NoInternetLocations && !p.Managed() {
		r.Crit("blocked from Windows Update internet locations with no WSUS server")
	}

	if p.NoAutoUpdate {
		r.Warn("automatic updates disabled by policy (NoAutoUpdate=1)")
	} else if p.AUOptions == 1 {
		r.Warn("automatic updates disabled by policy (AUOptions=1)")
	} else if p.AUOptions == 2 {
		r.Warn("updates held for approval: %s", AUOptionsDescription(p.AUOptions))
	}

	if !p.PauseQualityEnds.IsZero() {
		if p.PauseQualityEnds.After(now) {
			r.Warn("quality updates paused until %s", p.PauseQualityEnds.Format("2006-01-02"))
		} else {
			// An expired pause is informational: worth surfacing, not a finding.
			r.Details["qualityPauseExpired"] = p.PauseQualityEnds.Format("2006-01-02")
		}
	}
	if !p.PauseFeatureEnds.IsZero() && p.PauseFeatureEnds.After(now) {
		// Feature pauses are routine; record without raising severity.
		r.Details["featureUpdatesPausedUntil"] = p.PauseFeatureEnds.Format("2006-01-02")
	}
}

// ParsePauseEnd parses the pause-expiry timestamps written under
// WindowsUpdate\UX\Settings. Both the ISO form and the older local form
// appear in the wild.
func ParsePauseEnd(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseLastSuccess parses the LastSuccessTime values under
// Auto Update\Results ("2024-09-10 03:02:01", UTC).
func ParseLastSuccess(raw string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02 15:04:05", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
