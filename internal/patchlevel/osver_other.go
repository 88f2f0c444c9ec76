//go:build !windows

package patchlevel

import "github.com/opsdeck/winprobe/internal/regprobe"

// DetectOS reads the installed Windows release from the registry.
func DetectOS() (OSInfo, error) {
	return OSInfo{}, regprobe.ErrUnsupported
}
