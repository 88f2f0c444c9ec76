//go:build !windows

package mgmtprobe

import "github.com/opsdeck/winprobe/internal/wuhealth"

func collectUpdatePolicy() wuhealth.Policy {
	return wuhealth.Policy{}
}
