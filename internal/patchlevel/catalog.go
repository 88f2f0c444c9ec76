package patchlevel

import (
	"strings"
	"time"
)

// CatalogEntry records one cumulative update: which KB it is, when it
// shipped and which OS build lines it applies to.
type CatalogEntry struct {
	KB       string
	Released time.Time
	Builds   []int
	Kind     ReleaseKind
}

func ce(kb string, y int, m time.Month, d int, builds ...int) CatalogEntry {
	released := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return CatalogEntry{KB: kb, Released: released, Builds: builds, Kind: Classify(released)}
}

// kbCatalog is the built-in lookup table of recent cumulative updates.
// The optional support-page scrape supersedes it when enabled; offline
// devices fall back to this table.
var kbCatalog = []CatalogEntry{
	// Windows 10 22H2 (19045)
	ce("KB5034122", 2024, time.January, 9, 19044, 19045),
	ce("KB5034763", 2024, time.February, 13, 19044, 19045),
	ce("KB5035845", 2024, time.March, 12, 19044, 19045),
	ce("KB5036892", 2024, time.April, 9, 19044, 19045),
	ce("KB5037768", 2024, time.May, 14, 19044, 19045),
	ce("KB5039211", 2024, time.June, 11, 19044, 19045),
	ce("KB5040427", 2024, time.July, 9, 19044, 19045),
	ce("KB5041580", 2024, time.August, 13, 19044, 19045),
	ce("KB5043064", 2024, time.September, 10, 19044, 19045),

	// Windows 11 22H2 / 23H2 (22621 / 22631)
	ce("KB5034123", 2024, time.January, 9, 22621, 22631),
	ce("KB5034765", 2024, time.February, 13, 22621, 22631),
	ce("KB5035853", 2024, time.March, 12, 22621, 22631),
	ce("KB5036893", 2024, time.April, 9, 22621, 22631),
	ce("KB5037771", 2024, time.May, 14, 22621, 22631),
	ce("KB5039212", 2024, time.June, 11, 22621, 22631),
	ce("KB5040442", 2024, time.July, 9, 22621, 22631),
	ce("KB5041585", 2024, time.August, 13, 22621, 22631),
	ce("KB5043076", 2024, time.September, 10, 22621, 22631),

	// Windows 11 24H2 (26100)
	ce("KB5041571", 2024, time.August, 13, 26100),
	ce("KB5043080", 2024, time.September, 10, 26100),

	// Windows Server 2022 (20348)
	ce("KB5034129", 2024, time.January, 9, 20348),
	ce("KB5034770", 2024, time.February, 13, 20348),
	ce("KB5035857", 2024, time.March, 12, 20348),
	ce("KB5036909", 2024, time.April, 9, 20348),
	ce("KB5037782", 2024, time.May, 14, 20348),
	ce("KB5039227", 2024, time.June, 11, 20348),
	ce("KB5040437", 2024, time.July, 9, 20348),
	ce("KB5041160", 2024, time.August, 13, 20348),
	ce("KB5042881", 2024, time.September, 10, 20348),
}

// CatalogLookup finds a catalog entry by KB identifier ("KB5041585" or
// "5041585").
func CatalogLookup(kb string) (CatalogEntry, bool) {
	kb = strings.ToUpper(strings.TrimSpace(kb))
	if kb != "" && !strings.HasPrefix(kb, "KB") {
		kb = "KB" + kb
	}
	for _, entry := range kbCatalog {
		if entry.KB == kb {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}

// LatestFor returns the newest catalog entry applicable to the given OS
// build line that is not after asOf.
func LatestFor(build int, asOf time.Time) (CatalogEntry, bool) {
	var best CatalogEntry
	found := false
	for _, entry := range kbCatalog {
		if entry.Released.After(asOf) {
			continue
		}
		for _, b := range entry.Builds {
			if b != build {
				continue
			}
			if !found || entry.Released.After(best.Released) {
				best = entry
				found = true
			}
		}
	}
	return best, found
}
