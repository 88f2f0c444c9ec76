//go:build windows

package patchlevel

import (
	"fmt"
	"strconv"

	"github.com/opsdeck/winprobe/internal/regprobe"
)

const currentVersionKey = `HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion`

// DetectOS reads the installed Windows release from the registry.
func DetectOS() (OSInfo, error) {
	buildStr, ok := regprobe.String(currentVersionKey, "CurrentBuildNumber")
	if !ok {
		return OSInfo{}, fmt.Errorf("patchlevel: CurrentBuildNumber not readable")
	}
	build, err := strconv.Atoi(buildStr)
	if err != nil {
		return OSInfo{}, fmt.Errorf("patchlevel: CurrentBuildNumber %q: %w", buildStr, err)
	}

	info := OSInfo{Build: build}

	info.ProductName, _ = regprobe.String(currentVersionKey, "ProductName")

	// DisplayVersion appeared in 20H2; older builds only have ReleaseId.
	if dv, ok := regprobe.String(currentVersionKey, "DisplayVersion"); ok {
		info.DisplayVersion = dv
	} else if rid, ok := regprobe.String(currentVersionKey, "ReleaseId"); ok {
		info.DisplayVersion = rid
	}

	if ubr, ok := regprobe.DWORD(currentVersionKey, "UBR"); ok {
		info.UBR = int(ubr)
	}

	installationType, _ := regprobe.String(currentVersionKey, "InstallationType")
	info.IsServer = classifyInstallationType(installationType, info.ProductName)

	return info, nil
}
