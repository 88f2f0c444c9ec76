//go:build windows

package patchlevel

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"
)

type win32QuickFixEngineering struct {
	Caption     string
	Description string
	HotFixID    string
	InstalledOn string
}

// InstalledHotfixes queries Win32_QuickFixEngineering for installed updates.
func InstalledHotfixes() ([]Hotfix, error) {
	var rows []win32QuickFixEngineering
	query := "SELECT Caption, Description, HotFixID, InstalledOn FROM Win32_QuickFixEngineering"
	if err := wmi.Query(query, &rows); err != nil {
		return nil, fmt.Errorf("patchlevel: QFE query: %w", err)
	}

	hotfixes := make([]Hotfix, 0, len(rows))
	for _, row := range rows {
		h := Hotfix{
			HotFixID:    row.HotFixID,
			Description: row.Description,
			Caption:     row.Caption,
		}
		if t, ok := ParseInstalledOn(row.InstalledOn); ok {
			h.InstalledOn = t
		}
		hotfixes = append(hotfixes, h)
	}

	SortHotfixes(hotfixes)
	return hotfixes, nil
}
