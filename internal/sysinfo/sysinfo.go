// Package sysinfo collects a small host summary used as the provenance
// header of inventory output.
package sysinfo

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// Summary identifies the machine an inventory snapshot was taken from.
type Summary struct {
	Hostname     string `json:"hostname" yaml:"hostname"`
	OSType       string `json:"osType" yaml:"osType"`
	OSVersion    string `json:"osVersion,omitempty" yaml:"osVersion,omitempty"`
	Architecture string `json:"architecture" yaml:"architecture"`
}

// Collect gathers the host summary. Fields that cannot be determined stay
// empty; this never fails the caller.
func Collect() *Summary {
	s := &Summary{
		OSType:       runtime.GOOS,
		Architecture: runtime.GOARCH,
	}

	if info, err := host.Info(); err == nil {
		s.Hostname = info.Hostname
		s.OSType = info.OS
		s.OSVersion = strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	}

	return s
}
