package mgmtprobe

import (
	"strconv"
	"strings"

	"github.com/opsdeck/winprobe/internal/report"
	"github.com/opsdeck/winprobe/internal/wuhealth"
)

// Posture is everything the probe collected about who manages this machine.
type Posture struct {
	Detections []Detection
	Identity   IdentityStatus
	Policy     wuhealth.Policy
	GPOCount   int
	Errors     []string
}

// Controllers returns the names of tools and sources actively in a
// position to deliver updates to this machine. WSUS counts through policy
// state so a broken client install does not hide it; MDM enrollment counts
// even when no Intune agent is detected on disk.
func (p Posture) Controllers() []string {
	var out []string
	seenMDM := false

	for _, d := range p.Detections {
		if !d.IsActive() {
			continue
		}
		switch d.Category {
		case CategoryConfigMgr, CategoryPatchManagement:
			out = append(out, d.Name)
		case CategoryMDM:
			out = append(out, d.Name)
			seenMDM = true
		}
	}

	if p.Identity.MdmEnrolled() && !seenMDM {
		out = append(out, "MDM enrollment")
	}
	if p.Policy.Managed() {
		out = append(out, "WSUS")
	}
	return out
}

// Evaluate applies the conflict rules to a collected posture and returns
// the probe result. Pure: all inputs are explicit.
func Evaluate(p Posture) report.Result {
	r := report.New("management")

	controllers := p.Controllers()
	r.Details["updateControllers"] = controllers
	r.Details["joinType"] = string(p.Identity.JoinType)
	if p.GPOCount > 0 {
		r.Details["gpoCount"] = p.GPOCount
	}
	if len(p.Detections) > 0 {
		names := make([]string, 0, len(p.Detections))
		for _, d := range p.Detections {
			names = append(names, d.Name+" ("+string(d.Status)+")")
		}
		r.Details["detected"] = names
	}

	if len(controllers) > 1 {
		r.Warn("multiple update managers active: %s", strings.Join(controllers, ", "))
	}

	mdmPresent := p.Identity.MdmEnrolled() || hasActive(p.Detections, CategoryMDM)
	if p.Policy.Managed() && mdmPresent && !p.Policy.DisableDualScan {
		r.Warn("WSUS and MDM both steer updates without DisableDualScan, clients may scan both sources")
	}

	if hasActive(p.Detections, CategoryConfigMgr) && !p.Policy.Managed() && p.Policy.AUOptions == 4 {
		r.Warn("SCCM manages updates but Windows Update auto-install is also enabled (AUOptions=4)")
	}

	installedOnly := installedNotActive(p.Detections)
	if len(installedOnly) > 0 {
		r.Warn("management agents installed but not running: %s", strings.Join(installedOnly, ", "))
	}

	if len(p.Errors) > 0 {
		r.Details["collectionErrors"] = p.Errors
		r.Raise(report.StatusUnknown)
	}

	r.Summary = postureSummary(p, controllers)
	return r
}

func hasActive(dets []Detection, cat Category) bool {
	for _, d := range dets {
		if d.Category == cat && d.IsActive() {
			return true
		}
	}
	return false
}

// installedNotActive lists managers whose agent was found on disk but is
// not running. Package managers are excluded, nothing runs resident for
// them by design of the tools themselves.
func installedNotActive(dets []Detection) []string {
	var out []string
	for _, d := range dets {
		if d.Status != StatusInstalled {
			continue
		}
		switch d.Category {
		case CategoryConfigMgr, CategoryPatchManagement, CategoryMDM:
			out = append(out, d.Name)
		}
	}
	return out
}

func postureSummary(p Posture, controllers []string) string {
	switch len(controllers) {
	case 0:
		if p.GPOCount > 0 {
			return "no update manager detected, " + strconv.Itoa(p.GPOCount) + " GPOs applied"
		}
		return "no update manager detected, updates direct from Windows Update"
	case 1:
		return "updates managed by " + controllers[0]
	default:
		return strconv.Itoa(len(controllers)) + " update managers present"
	}
}
