package out

import (
	"os"
	"runtime"

	"helmwatch/internal/modules/telemetry/domain"
	telemetryout "helmwatch/internal/modules/telemetry/port/out"
)

type RuntimeEnvironment struct{}

func NewRuntimeEnvironment() telemetryout.EnvironmentProbe {
	return RuntimeEnvironment{}
}

func (RuntimeEnvironment) Environment() domain.Environment {
	host, _ := os.Hostname()
	return domain.Environment{
		Hostname:   host,
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		GoVersion:  runtime.Version(),
		NumCPU:     runtime.NumCPU(),
		Goroutines: runtime.NumGoroutine(),
	}
}

func (RuntimeEnvironment) Memory() (domain.Memory, bool) {
	stats := runtime.MemStats{}
	runtime.ReadMemStats(&stats)
	return domain.Memory{
		HeapAllocBytes: stats.HeapAlloc,
		HeapSysBytes:   stats.HeapSys,
		NumGC:          stats.NumGC,
	}, true
}
