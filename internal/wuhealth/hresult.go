package wuhealth

import (
	"fmt"
	"regexp"
	"strconv"
)

// hresultInfo holds a human-readable name and description for a WUA HRESULT code.
type hresultInfo struct {
	Name    string
	Message string
}

// knownHResults maps common Windows Update Agent HRESULT codes to descriptions.
var knownHResults = map[int]hresultInfo{
	0x8024000B: {"WU_E_CALL_CANCELLED", "operation was cancelled"},
	0x8024000E: {"WU_E_OPERATIONINPROGRESS", "another conflicting operation was in progress"},
	0x80240016: {"WU_E_INSTALL_NOT_ALLOWED", "operation tried to install while another install was in progress or reboot pending"},
	0x80240004: {"WU_E_NOT_INITIALIZED", "Windows Update Agent is not initialized"},
	0x80240008: {"WU_E_ITEMNOTFOUND", "the key for the item queried could not be found"},
	0x80240017: {"WU_E_NOT_APPLICABLE", "operation is not applicable to the current state"},
	0x80240024: {"WU_E_NO_SERVICE", "Windows Update service could not be contacted"},
	0x8024002E: {"WU_E_WU_DISABLED", "non-managed server access is not allowed"},
	0x80240044: {"WU_E_PER_MACHINE_UPDATE_ACCESS_DENIED", "only administrators can perform this operation on per-machine updates"},
	0x8024401C: {"WU_E_PT_HTTP_STATUS_REQUEST_TIMEOUT", "the update server timed out the request"},
	0x80244022: {"WU_E_PT_HTTP_STATUS_SERVICE_UNAVAIL", "the update server is temporarily overloaded"},

	0x80070005: {"E_ACCESSDENIED", "access denied, probe may need to run elevated"},
	0x8007000E: {"E_OUTOFMEMORY", "not enough memory to complete the operation"},
	0x80072EE2: {"WININET_E_TIMEOUT", "the operation timed out"},
	0x80072EFD: {"WININET_E_CONNECTION_RESET", "the connection with the server was reset"},
	0x80072EFE: {"WININET_E_CANNOT_CONNECT", "could not connect to the update server"},
	0x80072F8F: {"WININET_E_DECODING_FAILED", "a security error occurred (certificate problem)"},

	0x80246008: {"WU_E_DM_FAILTOCONNECTTOBITS", "the download manager was unable to connect to BITS"},
}

// FormatHResult returns a human-readable description of a WUA HRESULT code.
// For known codes: "0x8024000E: WU_E_OPERATIONINPROGRESS: another conflicting operation was in progress"
// For unknown codes: "0x80070005: unknown HRESULT"
func FormatHResult(hr int) string {
	// COM may hand the code back as a negative 32-bit value.
	hr = int(uint32(hr))
	if info, ok := knownHResults[hr]; ok {
		return fmt.Sprintf("0x%08X: %s: %s", uint32(hr), info.Name, info.Message)
	}
	return fmt.Sprintf("0x%08X: unknown HRESULT", uint32(hr))
}

// IsAccessDenied returns true if the HRESULT indicates an access denied error.
func IsAccessDenied(hr int) bool {
	return hr == 0x80070005 || hr == 0x80240044
}

// IsNetworkError returns true if the HRESULT indicates a network connectivity issue.
func IsNetworkError(hr int) bool {
	switch hr {
	case 0x80072EE2, 0x80072EFD, 0x80072EFE, 0x80072F8F, 0x80244022, 0x8024401C:
		return true
	}
	return false
}

var hresultPattern = regexp.MustCompile(`0[xX]8[0-9A-Fa-f]{7}`)

// ExtractHResult pulls the first HRESULT-looking code out of a COM error
// string. go-ole reports failures as text, so this is how the code comes back.
func ExtractHResult(errText string) (int, bool) {
	m := hresultPattern.FindString(errText)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(m[2:], 16, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// DescribeWUAError renders a WUA failure for a status line, decoding the
// HRESULT when one is present in the error text.
func DescribeWUAError(err error) string {
	if err == nil {
		return ""
	}
	if hr, ok := ExtractHResult(err.Error()); ok {
		return FormatHResult(hr)
	}
	return err.Error()
}
