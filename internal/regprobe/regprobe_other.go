//go:build !windows

package regprobe

// KeyExists reports whether the registry key at path exists.
func KeyExists(path string) bool {
	return false
}

// ReadValue reads a named value at path.
func ReadValue(path, name string) (Value, error) {
	return Value{}, ErrUnsupported
}

// DWORD reads an integer value. ok is false when absent.
func DWORD(path, name string) (uint64, bool) {
	return 0, false
}

// String reads a string value. ok is false when absent.
func String(path, name string) (string, bool) {
	return "", false
}

// Strings reads a multi-string value. ok is false when absent.
func Strings(path, name string) ([]string, bool) {
	return nil, false
}

// SubKeyCount returns the number of direct sub-keys under path.
func SubKeyCount(path string) (int, error) {
	return 0, ErrUnsupported
}
