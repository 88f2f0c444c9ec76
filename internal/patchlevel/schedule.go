// Package patchlevel evaluates Windows patch compliance: release schedule
// arithmetic, installed hotfix inventory and staleness against the most
// recent security release.
package patchlevel

import (
	"time"
)

// ReleaseKind classifies a Windows update release by its position in the
// monthly schedule.
type ReleaseKind string

const (
	// ReleaseSecurity is the monthly "B" security release on Patch Tuesday.
	ReleaseSecurity ReleaseKind = "security"
	// ReleasePreview is an optional "C"/"D" preview release in the third
	// or fourth week.
	ReleasePreview ReleaseKind = "preview"
	// ReleaseOutOfBand is anything published off the regular schedule.
	ReleaseOutOfBand ReleaseKind = "out-of-band"
)

// SecondTuesday returns Patch Tuesday for the given month.
func SecondTuesday(year int, month time.Month) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Days until the first Tuesday, then one more week.
	offset := (int(time.Tuesday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+7)
}

// MostRecentPatchTuesday returns the latest Patch Tuesday at or before t.
func MostRecentPatchTuesday(t time.Time) time.Time {
	t = t.UTC()
	pt := SecondTuesday(t.Year(), t.Month())
	if pt.After(truncateDay(t)) {
		prev := t.AddDate(0, -1, 0)
		pt = SecondTuesday(prev.Year(), prev.Month())
	}
	return pt
}

// NextPatchTuesday returns the first Patch Tuesday strictly after t.
func NextPatchTuesday(t time.Time) time.Time {
	t = t.UTC()
	pt := SecondTuesday(t.Year(), t.Month())
	if !pt.After(truncateDay(t)) {
		// Step months from the first of the month; AddDate on a
		// month-end date normalizes past short months.
		next := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
		pt = SecondTuesday(next.Year(), next.Month())
	}
	return pt
}

// Classify maps a release date onto the monthly schedule: Patch Tuesday
// itself is a security release, a Tuesday in the third or fourth week is a
// preview release, anything else shipped out of band.
func Classify(released time.Time) ReleaseKind {
	released = truncateDay(released.UTC())
	pt := SecondTuesday(released.Year(), released.Month())

	if released.Equal(pt) {
		return ReleaseSecurity
	}
	if released.Weekday() == time.Tuesday && released.After(pt) {
		weeksAfter := int(released.Sub(pt).Hours()) / (24 * 7)
		if weeksAfter == 1 || weeksAfter == 2 {
			return ReleasePreview
		}
	}
	return ReleaseOutOfBand
}

// DaysBehind returns whole days from the most recent Patch Tuesday (relative
// to now) back to the newest installed security update. Zero or negative
// means the device is patched to the current cycle.
func DaysBehind(latestInstalled, now time.Time) int {
	pt := MostRecentPatchTuesday(now)
	diff := pt.Sub(truncateDay(latestInstalled.UTC()))
	return int(diff.Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
