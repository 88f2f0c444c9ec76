package mgmtprobe

// UpdateManagerSignatures returns detection signatures for tools that take
// ownership of update delivery on an endpoint. Checks run in order; the
// first match wins, so service checks come before file checks.
func UpdateManagerSignatures() []Signature {
	return []Signature{
		{
			Name: "SCCM/MECM", Category: CategoryConfigMgr,
			OS: []string{"windows"},
			Checks: []Check{
				{Type: CheckServiceRunning, Value: "CcmExec"},
				{Type: CheckProcessRunning, Value: "CcmExec.exe"},
				{Type: CheckRegistryKey, Value: `HKLM\SOFTWARE\Microsoft\CCM`},
			},
		},
		{
			Name: "Microsoft Intune", Category: CategoryMDM,
			OS: []string{"windows"},
			Checks: []Check{
				{Type: CheckServiceRunning, Value: "IntuneManagementExtension"},
				{Type: CheckRegistryKey, Value: `HKLM\SOFTWARE\Microsoft\IntuneManagementExtension`},
			},
		},
		{
			Name: "WSUS Client", Category: CategoryPolicyEngine,
			OS: []string{"windows"},
			Checks: []Check{
				{Type: CheckRegistryKey, Value: `HKLM\SOFTWARE\Policies\Microsoft\Windows\WindowsUpdate\AU`},
			},
		},
		{
			Name: "PDQ Deploy", Category: CategoryPatchManagement,
			OS: []string{"windows"},
			Checks: []Check{
				{Type: CheckServiceRunning, Value: "PDQDeploy"},
				{Type: CheckFileExists, Value: `C:\Program Files (x86)\Admin Arsenal\PDQ Deploy\PDQDeploy.exe`},
			},
		},
		{
			Name: "Ivanti EPM", Category: CategoryPatchManagement,
			OS: []string{"windows"},
			Checks: []Check{
				{Type: CheckServiceRunning, Value: "LANDeskTargetedMulticast"},
				{Type: CheckProcessRunning, Value: "LDIScn32.exe"},
				{Type: CheckFileExists, Value: `C:\Program Files (x86)\LANDesk\LDClient`},
			},
		},
		{
			Name: "ManageEngine Endpoint Central", Category: CategoryPatchManagement,
			OS: []string{"windows"},
			Checks: []Check{
				{Type: CheckServiceRunning, Value: "ManageEngine UEMS - Agent"},
				{Type: CheckProcessRunning, Value: "dcagentservice.exe"},
				{Type: CheckRegistryKey, Value: `HKLM\SOFTWARE\AdventNet\DesktopCentral`},
			},
		},
		{
			Name: "Automox", Category: CategoryPatchManagement,
			OS: []string{"windows", "darwin", "linux"},
			Checks: []Check{
				{Type: CheckServiceRunning, Value: "amagent", OS: "windows"},
				{Type: CheckProcessRunning, Value: "amagent.exe", OS: "windows"},
				{Type: CheckProcessRunning, Value: "amagent", OS: "darwin"},
				{Type: CheckFileExists, Value: `C:\Program Files (x86)\Automox\amagent.exe`, OS: "windows"},
				{Type: CheckFileExists, Value: "/opt/automox/amagent", OS: "linux"},
			},
		},
		{
			Name: "Tanium Client", Category: CategoryPatchManagement,
			OS: []string{"windows"},
			Checks: []Check{
				{Type: CheckServiceRunning, Value: "Tanium Client"},
				{Type: CheckFileExists, Value: `C:\Program Files (x86)\Tanium\Tanium Client\TaniumClient.exe`},
			},
		},
		{
			Name: "BigFix", Category: CategoryPatchManagement,
			OS: []string{"windows"},
			Checks: []Check{
				{Type: CheckServiceRunning, Value: "BESClient"},
				{Type: CheckFileExists, Value: `C:\Program Files (x86)\BigFix Enterprise\BES Client\BESClient.exe`},
			},
		},
		{
			Name: "Chocolatey", Category: CategoryPackageManager,
			OS: []string{"windows"},
			Checks: []Check{
				{Type: CheckRegistryKey, Value: `HKLM\SOFTWARE\Chocolatey`},
				{Type: CheckFileExists, Value: `C:\ProgramData\chocolatey\choco.exe`},
			},
		},
	}
}
