package patchlevel

import "fmt"

// Client OS build numbers mapped to marketing version names.
var clientBuilds = map[int]string{
	10240: "Windows 10 1507",
	10586: "Windows 10 1511",
	14393: "Windows 10 1607",
	15063: "Windows 10 1703",
	16299: "Windows 10 1709",
	17134: "Windows 10 1803",
	17763: "Windows 10 1809",
	18362: "Windows 10 1903",
	18363: "Windows 10 1909",
	19041: "Windows 10 2004",
	19042: "Windows 10 20H2",
	19043: "Windows 10 21H1",
	19044: "Windows 10 21H2",
	19045: "Windows 10 22H2",
	22000: "Windows 11 21H2",
	22621: "Windows 11 22H2",
	22631: "Windows 11 23H2",
	26100: "Windows 11 24H2",
}

// Server builds overlap client builds; ProductName disambiguates.
var serverBuilds = map[int]string{
	14393: "Windows Server 2016",
	17763: "Windows Server 2019",
	18363: "Windows Server 1909",
	20348: "Windows Server 2022",
	25398: "Windows Server 23H2",
	26100: "Windows Server 2025",
}

// VersionName maps an OS build number to its marketing name. server selects
// the Windows Server table. Unknown builds get a descriptive fallback so
// the report never loses the raw number.
func VersionName(build int, server bool) string {
	if server {
		if name, ok := serverBuilds[build]; ok {
			return name
		}
	} else if name, ok := clientBuilds[build]; ok {
		return name
	}
	return fmt.Sprintf("Windows build %d", build)
}

// IsWindows11 reports whether a client build number belongs to the
// Windows 11 line.
func IsWindows11(build int) bool {
	return build >= 22000
}

// knownBuild reports whether the build appears in either table.
func knownBuild(build int) bool {
	_, client := clientBuilds[build]
	_, server := serverBuilds[build]
	return client || server
}
