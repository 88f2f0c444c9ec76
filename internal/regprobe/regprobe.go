// Package regprobe reads Windows registry values for compliance probes.
// Path resolution and type naming are plain logic; the syscall surface
// lives behind a windows build tag.
package regprobe

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported is returned on platforms without a registry.
var ErrUnsupported = errors.New("regprobe: not supported on this platform")

// ErrNotFound is returned when a key or value does not exist. Probes treat
// this as "not configured", never as a failure.
var ErrNotFound = errors.New("regprobe: key or value not found")

// Value is one registry value read by a probe.
type Value struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Data any    `json:"data"`
	Type string `json:"type"`
}

// SplitPath normalizes a registry path like "HKLM\SOFTWARE\..." or
// "HKEY_LOCAL_MACHINE/SOFTWARE/..." into a canonical hive abbreviation
// and the sub-key path.
func SplitPath(path string) (hive, subPath string, err error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(path), "/", `\`)
	if normalized == "" {
		return "", "", fmt.Errorf("regprobe: empty registry path")
	}

	parts := strings.SplitN(normalized, `\`, 2)
	if len(parts) == 2 {
		subPath = strings.TrimSpace(parts[1])
	}

	switch strings.ToUpper(strings.TrimSpace(parts[0])) {
	case "HKEY_LOCAL_MACHINE", "HKLM":
		hive = "HKLM"
	case "HKEY_CURRENT_USER", "HKCU":
		hive = "HKCU"
	case "HKEY_CLASSES_ROOT", "HKCR":
		hive = "HKCR"
	case "HKEY_USERS", "HKU":
		hive = "HKU"
	case "HKEY_CURRENT_CONFIG", "HKCC":
		hive = "HKCC"
	default:
		return "", "", fmt.Errorf("regprobe: unsupported registry hive: %s", parts[0])
	}
	return hive, subPath, nil
}

// TypeName converts a raw registry value-type code to its REG_* name.
func TypeName(valueType uint32) string {
	switch valueType {
	case 1:
		return "REG_SZ"
	case 2:
		return "REG_EXPAND_SZ"
	case 3:
		return "REG_BINARY"
	case 4:
		return "REG_DWORD"
	case 7:
		return "REG_MULTI_SZ"
	case 11:
		return "REG_QWORD"
	default:
		return fmt.Sprintf("REG_%d", valueType)
	}
}
