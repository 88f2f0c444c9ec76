//go:build windows

package wuhealth

import (
	"github.com/opsdeck/winprobe/internal/regprobe"
)

// PendingReboot checks the registry locations that signal a pending reboot.
// Returns true if any source indicates one, along with the reasons.
func PendingReboot() (bool, []string) {
	var reasons []string

	if regprobe.KeyExists(`HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\WindowsUpdate\Auto Update\RebootRequired`) {
		reasons = append(reasons, "Windows Update requires reboot")
	}

	if regprobe.KeyExists(`HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Component Based Servicing\RebootPending`) {
		reasons = append(reasons, "component servicing reboot pending")
	}

	sessionMgr := `HKLM\SYSTEM\CurrentControlSet\Control\Session Manager`
	if vals, ok := regprobe.Strings(sessionMgr, "PendingFileRenameOperations"); ok && len(vals) > 0 {
		reasons = append(reasons, "pending file rename operations")
	}
	if vals, ok := regprobe.Strings(sessionMgr, "PendingFileRenameOperations2"); ok && len(vals) > 0 {
		reasons = append(reasons, "pending file rename operations (v2)")
	}

	return len(reasons) > 0, reasons
}
