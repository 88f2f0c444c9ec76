//go:build windows

package wuhealth

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"

	"github.com/opsdeck/winprobe/internal/winsvc"
)

func collect(opts Options) (State, error) {
	var st State

	st.Policy = ReadPolicy()

	names := make([]string, 0, len(opts.Services))
	for _, exp := range opts.Services {
		names = append(names, exp.Name)
	}
	st.Services, st.ServicesErr = winsvc.GetStatuses(names)
	if st.ServicesErr != nil {
		log.Warn("service query failed", "error", st.ServicesErr)
	}

	st.LastDetect, st.LastInstall = LastSuccessTimes()
	st.RebootNeeded, st.RebootWhy = PendingReboot()
	if bootSec, err := host.BootTime(); err == nil {
		st.BootTime = time.Unix(int64(bootSec), 0).UTC()
	}

	if opts.QueryPending {
		st.PendingAsked = true
		st.Pending, st.PendingErr = QueryPendingUpdates()
		if st.PendingErr != nil {
			log.Warn("WUA pending query failed", "error", st.PendingErr)
		}
	}

	systemDrive := os.Getenv("SystemDrive")
	if systemDrive == "" {
		systemDrive = "C:"
	}
	if usage, err := disk.Usage(systemDrive + "\\"); err == nil {
		st.FreeDiskGB = float64(usage.Free) / (1024 * 1024 * 1024)
		st.DiskKnown = true
	} else {
		log.Debug("disk usage query failed", "drive", systemDrive, "error", err)
	}

	return st, nil
}
