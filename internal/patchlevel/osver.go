package patchlevel

import (
	"fmt"
	"strings"
)

// OSInfo identifies the installed Windows release.
type OSInfo struct {
	ProductName    string `json:"productName"`
	DisplayVersion string `json:"displayVersion,omitempty"` // e.g. "22H2"
	Build          int    `json:"build"`                    // e.g. 19045
	UBR            int    `json:"ubr"`                      // revision, e.g. 4651
	IsServer       bool   `json:"isServer"`
}

// FullBuild renders the build in "19045.4651" form.
func (o OSInfo) FullBuild() string {
	return fmt.Sprintf("%d.%d", o.Build, o.UBR)
}

// VersionName returns the marketing name for the release.
func (o OSInfo) VersionName() string {
	return VersionName(o.Build, o.IsServer)
}

// classifyInstallationType reports whether an InstallationType or
// ProductName registry value identifies a server SKU.
func classifyInstallationType(installationType, productName string) bool {
	it := strings.ToLower(strings.TrimSpace(installationType))
	if it == "server" || it == "server core" {
		return true
	}
	return strings.Contains(strings.ToLower(productName), "server")
}
