//go:build windows

package regprobe

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/sys/windows/registry"
)

func rootKey(hive string) (registry.Key, bool) {
	switch hive {
	case "HKLM":
		return registry.LOCAL_MACHINE, true
	case "HKCU":
		return registry.CURRENT_USER, true
	case "HKCR":
		return registry.CLASSES_ROOT, true
	case "HKU":
		return registry.USERS, true
	case "HKCC":
		return registry.CURRENT_CONFIG, true
	}
	return 0, false
}

func openKey(path string) (registry.Key, error) {
	hive, subPath, err := SplitPath(path)
	if err != nil {
		return 0, err
	}
	root, ok := rootKey(hive)
	if !ok {
		return 0, ErrUnsupported
	}
	key, err := registry.OpenKey(root, subPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return key, nil
}

// KeyExists reports whether the registry key at path exists.
func KeyExists(path string) bool {
	key, err := openKey(path)
	if err != nil {
		return false
	}
	key.Close()
	return true
}

// ReadValue reads a named value at path, trying string, integer, multi-string
// and binary representations in turn. Binary data comes back hex-encoded.
func ReadValue(path, name string) (Value, error) {
	key, err := openKey(path)
	if err != nil {
		return Value{}, err
	}
	defer key.Close()

	if data, valueType, err := key.GetStringValue(name); err == nil {
		return Value{Path: path, Name: name, Data: strings.TrimSpace(data), Type: TypeName(valueType)}, nil
	}
	if data, valueType, err := key.GetIntegerValue(name); err == nil {
		return Value{Path: path, Name: name, Data: data, Type: TypeName(valueType)}, nil
	}
	if data, valueType, err := key.GetStringsValue(name); err == nil {
		return Value{Path: path, Name: name, Data: strings.Join(data, ";"), Type: TypeName(valueType)}, nil
	}
	if data, valueType, err := key.GetBinaryValue(name); err == nil {
		return Value{Path: path, Name: name, Data: hex.EncodeToString(data), Type: TypeName(valueType)}, nil
	}

	return Value{}, ErrNotFound
}

// DWORD reads a REG_DWORD/REG_QWORD value. ok is false when the key or
// value is absent.
func DWORD(path, name string) (val uint64, ok bool) {
	key, err := openKey(path)
	if err != nil {
		return 0, false
	}
	defer key.Close()

	v, _, err := key.GetIntegerValue(name)
	if err != nil {
		return 0, false
	}
	return v, true
}

// String reads a REG_SZ/REG_EXPAND_SZ value. ok is false when absent.
func String(path, name string) (val string, ok bool) {
	key, err := openKey(path)
	if err != nil {
		return "", false
	}
	defer key.Close()

	v, _, err := key.GetStringValue(name)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Strings reads a REG_MULTI_SZ value. ok is false when absent.
func Strings(path, name string) (val []string, ok bool) {
	key, err := openKey(path)
	if err != nil {
		return nil, false
	}
	defer key.Close()

	v, _, err := key.GetStringsValue(name)
	if err != nil {
		return nil, false
	}
	return v, true
}

// SubKeyCount returns the number of direct sub-keys under path.
func SubKeyCount(path string) (int, error) {
	hive, subPath, err := SplitPath(path)
	if err != nil {
		return 0, err
	}
	root, ok := rootKey(hive)
	if !ok {
		return 0, ErrUnsupported
	}

	key, err := registry.OpenKey(root, subPath, registry.READ)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	defer key.Close()

	names, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return 0, err
	}
	return len(names), nil
}
