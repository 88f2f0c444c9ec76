//go:build !windows

package winsvc

// IsRunning reports whether the named service is running.
func IsRunning(name string) (bool, error) {
	return false, ErrUnsupported
}

// GetStatus queries a single service by name.
func GetStatus(name string) (ServiceInfo, error) {
	return ServiceInfo{Name: name, Status: StatusUnknown}, ErrUnsupported
}

// GetStatuses resolves a batch of services.
func GetStatuses(names []string) ([]ServiceInfo, error) {
	return nil, ErrUnsupported
}
