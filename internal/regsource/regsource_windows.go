//go:build windows

package regsource

import (
	"golang.org/x/sys/windows/registry"
)

type liveSource struct{}

// Live returns a Source backed by HKEY_LOCAL_MACHINE on this machine.
func Live() (Source, error) {
	return liveSource{}, nil
}

func (liveSource) SubKeyNames(path string) ([]string, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.ENUMERATE_SUB_KEYS|registry.READ)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	return key.ReadSubKeyNames(-1)
}

func (liveSource) StringValues(path, subKey string, names []string) (map[string]string, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, path+`\`+subKey, registry.READ)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	values := make(map[string]string, len(names))
	for _, name := range names {
		val, _, err := key.GetStringValue(name)
		if err != nil {
			// Absent value or non-string type; the caller treats it as
			// not recorded by the installer.
			continue
		}
		values[name] = val
	}
	return values, nil
}
