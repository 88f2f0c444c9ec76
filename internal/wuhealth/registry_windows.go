//go:build windows

package wuhealth

import (
	"time"

	"github.com/opsdeck/winprobe/internal/regprobe"
)

const (
	policyPath     = `HKLM\SOFTWARE\Policies\Microsoft\Windows\WindowsUpdate`
	policyAUPath   = `HKLM\SOFTWARE\Policies\Microsoft\Windows\WindowsUpdate\AU`
	uxSettingsPath = `HKLM\SOFTWARE\Microsoft\WindowsUpdate\UX\Settings`
	resultsPath    = `HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\WindowsUpdate\Auto Update\Results`
)

// ReadPolicy reads the effective Windows Update policy from the registry.
// Absent keys and values are normal on unmanaged machines and leave the
// corresponding fields at their zero value.
func ReadPolicy() Policy {
	var p Policy

	if s, ok := regprobe.String(policyPath, "WUServer"); ok {
		p.WSUSServer = s
	}
	if s, ok := regprobe.String(policyPath, "WUStatusServer"); ok {
		p.WSUSStatusServer = s
	}
	if s, ok := regprobe.String(policyPath, "TargetGroup"); ok {
		p.TargetGroup = s
	}
	if v, ok := regprobe.DWORD(policyPath, "DisableDualScan"); ok {
		p.DisableDualScan = v == 1
	}
	if v, ok := regprobe.DWORD(policyPath, "DoNotConnectToWindowsUpdateInternetLocations"); ok {
		p.NoInternetLocations = v == 1
	}

	if v, ok := regprobe.DWORD(policyAUPath, "UseWUServer"); ok {
		p.UseWSUS = v == 1
	}
	if v, ok := regprobe.DWORD(policyAUPath, "NoAutoUpdate"); ok {
		p.NoAutoUpdate = v == 1
	}
	if v, ok := regprobe.DWORD(policyAUPath, "AUOptions"); ok {
		p.AUOptions = int(v)
	}

	if s, ok := regprobe.String(uxSettingsPath, "PauseUpdatesExpiryTime"); ok {
		if t, ok := ParsePauseEnd(s); ok {
			p.PauseQualityEnds = t
		}
	}
	if s, ok := regprobe.String(uxSettingsPath, "PauseQualityUpdatesEndTime"); ok {
		if t, ok := ParsePauseEnd(s); ok && t.After(p.PauseQualityEnds) {
			p.PauseQualityEnds = t
		}
	}
	if s, ok := regprobe.String(uxSettingsPath, "PauseFeatureUpdatesEndTime"); ok {
		if t, ok := ParsePauseEnd(s); ok {
			p.PauseFeatureEnds = t
		}
	}

	return p
}

// LastSuccessTimes reads the timestamps of the last successful update scan
// and install from the Auto Update result keys. A zero time means no
// success has been recorded.
func LastSuccessTimes() (detect, install time.Time) {
	if s, ok := regprobe.String(resultsPath+`\Detect`, "LastSuccessTime"); ok {
		detect, _ = ParseLastSuccess(s)
	}
	if s, ok := regprobe.String(resultsPath+`\Install`, "LastSuccessTime"); ok {
		install, _ = ParseLastSuccess(s)
	}
	return detect, install
}
