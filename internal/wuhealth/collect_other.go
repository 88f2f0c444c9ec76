//go:build !windows

package wuhealth

import "github.com/opsdeck/winprobe/internal/winsvc"

func collect(Options) (State, error) {
	return State{}, winsvc.ErrUnsupported
}
