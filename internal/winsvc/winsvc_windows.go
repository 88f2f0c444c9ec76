//go:build windows

package winsvc

import (
	"fmt"

	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
)

// IsRunning returns true if the named Windows service exists and is running.
func IsRunning(name string) (bool, error) {
	info, err := GetStatus(name)
	if err != nil {
		return false, err
	}
	return info.IsActive(), nil
}

// GetStatus queries a single Windows service by name.
func GetStatus(name string) (ServiceInfo, error) {
	m, err := mgr.Connect()
	if err != nil {
		return ServiceInfo{}, fmt.Errorf("winsvc: connect to SCM: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return ServiceInfo{Name: name, Status: StatusUnknown}, fmt.Errorf("winsvc: open service %s: %w", name, err)
	}
	defer s.Close()

	status, err := s.Query()
	if err != nil {
		return ServiceInfo{Name: name, Status: StatusUnknown}, fmt.Errorf("winsvc: query %s: %w", name, err)
	}

	cfg, _ := s.Config()

	return ServiceInfo{
		Name:        name,
		DisplayName: cfg.DisplayName,
		Status:      mapState(status.State),
		StartType:   mapStartType(cfg.StartType),
		BinaryPath:  cfg.BinaryPathName,
	}, nil
}

// GetStatuses resolves a batch of services over a single SCM connection.
// Services that cannot be opened come back with StatusUnknown rather than
// failing the batch.
func GetStatuses(names []string) ([]ServiceInfo, error) {
	m, err := mgr.Connect()
	if err != nil {
		return nil, fmt.Errorf("winsvc: connect to SCM: %w", err)
	}
	defer m.Disconnect()

	infos := make([]ServiceInfo, 0, len(names))
	for _, name := range names {
		s, err := m.OpenService(name)
		if err != nil {
			infos = append(infos, ServiceInfo{Name: name, Status: StatusUnknown})
			continue
		}
		status, err := s.Query()
		if err != nil {
			s.Close()
			infos = append(infos, ServiceInfo{Name: name, Status: StatusUnknown})
			continue
		}
		cfg, _ := s.Config()
		infos = append(infos, ServiceInfo{
			Name:        name,
			DisplayName: cfg.DisplayName,
			Status:      mapState(status.State),
			StartType:   mapStartType(cfg.StartType),
			BinaryPath:  cfg.BinaryPathName,
		})
		s.Close()
	}
	return infos, nil
}

func mapState(state svc.State) ServiceStatus {
	switch state {
	case svc.Running, svc.StartPending, svc.ContinuePending:
		return StatusRunning
	case svc.Stopped, svc.Paused, svc.StopPending, svc.PausePending:
		return StatusStopped
	default:
		return StatusUnknown
	}
}

func mapStartType(startType uint32) string {
	switch startType {
	case mgr.StartAutomatic, mgr.StartAutomatic + 0x80: // 0x80 = delayed start flag
		return StartAutomatic
	case mgr.StartManual:
		return StartManual
	case mgr.StartDisabled:
		return StartDisabled
	default:
		return fmt.Sprintf("type_%d", startType)
	}
}
