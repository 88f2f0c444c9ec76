package patchlevel

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Hotfix is one installed update from the quick-fix-engineering inventory.
type Hotfix struct {
	HotFixID    string    `json:"hotFixId"` // "KB5041585"
	Description string    `json:"description,omitempty"`
	InstalledOn time.Time `json:"installedOn,omitempty"`
	Caption     string    `json:"caption,omitempty"`
}

// IsSecurity reports whether the hotfix self-describes as a security update.
func (h Hotfix) IsSecurity() bool {
	return strings.Contains(strings.ToLower(h.Description), "security")
}

// installedOnFormats covers the date renderings WMI produces depending on
// OS version and locale settings.
var installedOnFormats = []string{
	"1/2/2006",
	"01/02/2006",
	"2006-01-02",
	"1/2/2006 3:04:05 PM",
	"02-01-2006",
}

// ParseInstalledOn parses a Win32_QuickFixEngineering InstalledOn string.
// Some systems report a hex-encoded FILETIME instead of a date; both forms
// are handled. Unparseable input returns the zero time and false.
func ParseInstalledOn(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range installedOnFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}

	// Hex FILETIME: 100ns intervals since 1601-01-01. Converted to
	// nanoseconds in one step the tick count overflows int64 for any
	// modern date, so split into whole seconds plus the sub-second tail.
	if len(raw) == 16 {
		if ft, err := strconv.ParseUint(raw, 16, 64); err == nil {
			epoch := time.Date(1601, time.January, 1, 0, 0, 0, 0, time.UTC)
			secs := int64(ft / 1e7)
			ticks := int64(ft % 1e7)
			t := epoch.Add(time.Duration(secs)*time.Second + time.Duration(ticks)*100*time.Nanosecond)
			if t.Year() > 1990 && t.Year() < 2200 {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

// KBNumber extracts the numeric KB identifier from a HotFixID, or 0.
func KBNumber(hotFixID string) int {
	s := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(hotFixID)), "KB")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// LatestSecurityHotfix returns the most recently installed security hotfix.
// Hotfixes without a parsed install date are ignored. ok is false when no
// dated security hotfix exists.
func LatestSecurityHotfix(hotfixes []Hotfix) (Hotfix, bool) {
	var best Hotfix
	found := false
	for _, h := range hotfixes {
		if !h.IsSecurity() || h.InstalledOn.IsZero() {
			continue
		}
		if !found || h.InstalledOn.After(best.InstalledOn) {
			best = h
			found = true
		}
	}
	return best, found
}

// SortHotfixes orders hotfixes newest first, undated last, ties by KB number
// descending so output stays deterministic.
func SortHotfixes(hotfixes []Hotfix) {
	sort.SliceStable(hotfixes, func(i, j int) bool {
		a, b := hotfixes[i], hotfixes[j]
		switch {
		case a.InstalledOn.IsZero() && b.InstalledOn.IsZero():
			return KBNumber(a.HotFixID) > KBNumber(b.HotFixID)
		case a.InstalledOn.IsZero():
			return false
		case b.InstalledOn.IsZero():
			return true
		case !a.InstalledOn.Equal(b.InstalledOn):
			return a.InstalledOn.After(b.InstalledOn)
		default:
			return KBNumber(a.HotFixID) > KBNumber(b.HotFixID)
		}
	})
}
