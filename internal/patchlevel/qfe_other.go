//go:build !windows

package patchlevel

import "github.com/opsdeck/winprobe/internal/regprobe"

// InstalledHotfixes queries the installed update inventory.
func InstalledHotfixes() ([]Hotfix, error) {
	return nil, regprobe.ErrUnsupported
}
