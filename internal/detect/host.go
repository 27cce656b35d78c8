package detect

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// HostInfo describes the running system for diagnostics output.
type HostInfo struct {
	Platform string `json:"platform"`
	Version  string `json:"version,omitempty"`
	Kernel   string `json:"kernel,omitempty"`
	Arch     string `json:"arch"`
}

// Host returns best-effort system information. Fields the platform cannot
// report stay empty rather than failing the caller.
func Host() HostInfo {
	info := HostInfo{
		Platform: runtime.GOOS,
		Arch:     runtime.GOARCH,
	}
	if hi, err := host.Info(); err == nil {
		if hi.Platform != "" {
			info.Platform = hi.Platform
		}
		info.Version = hi.PlatformVersion
		info.Kernel = hi.KernelVersion
	}
	return info
}
