// Package mgmtprobe detects endpoint management tooling that controls
// update delivery and flags conflicting configurations: multiple active
// update managers, WSUS plus MDM dual-scan exposure, and policy engines
// pulling in different directions.
package mgmtprobe

import "slices"

// DetectionStatus represents the status of a detected management tool.
type DetectionStatus string

const (
	StatusActive    DetectionStatus = "active"
	StatusInstalled DetectionStatus = "installed"
)

// Category groups management tools by how they influence updates.
type Category string

const (
	CategoryConfigMgr       Category = "configMgr"
	CategoryMDM             Category = "mdm"
	CategoryPatchManagement Category = "patchManagement"
	CategoryPolicyEngine    Category = "policyEngine"
	CategoryPackageManager  Category = "packageManager"
)

// JoinType represents the device's directory join type.
type JoinType string

const (
	JoinTypeHybridAzureAD JoinType = "hybrid_azure_ad"
	JoinTypeAzureAD       JoinType = "azure_ad"
	JoinTypeOnPremAD      JoinType = "on_prem_ad"
	JoinTypeWorkplace     JoinType = "workplace"
	JoinTypeNone          JoinType = "none"
)

// CheckType identifies the kind of system check to perform.
type CheckType string

const (
	CheckFileExists     CheckType = "file_exists"
	CheckServiceRunning CheckType = "service_running"
	CheckProcessRunning CheckType = "process_running"
	CheckRegistryKey    CheckType = "registry_key"
	CheckCommand        CheckType = "command"
)

// Check defines a single detection probe.
type Check struct {
	Type  CheckType `json:"type"`
	Value string    `json:"value"`
	Parse string    `json:"parse,omitempty"`
	OS    string    `json:"os,omitempty"`
}

// Signature defines how to detect a specific management tool.
type Signature struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	OS       []string `json:"os"`
	Checks   []Check  `json:"checks"`
}

// MatchesOS returns true if the signature applies to the given GOOS value.
func (s Signature) MatchesOS(goos string) bool {
	return slices.Contains(s.OS, goos)
}

// Detection represents a detected management tool on a device.
type Detection struct {
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Status      DetectionStatus `json:"status"`
	ServiceName string          `json:"serviceName,omitempty"`
	Details     map[string]any  `json:"details,omitempty"`
}

// IsActive returns true if the tool's agent is actually running rather
// than merely installed.
func (d Detection) IsActive() bool {
	return d.Status == StatusActive
}

// IdentityStatus describes the device's directory/join posture.
type IdentityStatus struct {
	JoinType        JoinType `json:"joinType"`
	AzureAdJoined   bool     `json:"azureAdJoined"`
	DomainJoined    bool     `json:"domainJoined"`
	WorkplaceJoined bool     `json:"workplaceJoined"`
	DomainName      string   `json:"domainName,omitempty"`
	TenantId        string   `json:"tenantId,omitempty"`
	MdmUrl          string   `json:"mdmUrl,omitempty"`
	Source          string   `json:"source"`
}

// MdmEnrolled reports whether the device has an MDM management endpoint.
func (id IdentityStatus) MdmEnrolled() bool {
	return id.MdmUrl != ""
}
