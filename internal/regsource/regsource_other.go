//go:build !windows

package regsource

import "fmt"

// Live returns a Source backed by the local registry. The uninstall hive
// only exists on Windows.
func Live() (Source, error) {
	return nil, fmt.Errorf("regsource: the windows registry is not available on this platform")
}
