package system

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Resources is a snapshot of host and process usage for the stats report.
type Resources struct {
	CPUs       int     `yaml:"cpus"`
	RSSBytes   uint64  `yaml:"rss_bytes"`
	TotalBytes uint64  `yaml:"total_bytes"`
	UsedPct    float64 `yaml:"used_percent"`
}

// Snapshot reads current resource usage. Fields that cannot be read on this
// platform stay zero.
func Snapshot() Resources {
	var r Resources

	if n, err := cpu.Counts(true); err == nil && n > 0 {
		r.CPUs = n
	} else {
		r.CPUs = runtime.NumCPU()
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		r.TotalBytes = vm.Total
		r.UsedPct = vm.UsedPercent
	}

	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := p.MemoryInfo(); err == nil {
			r.RSSBytes = mi.RSS
		}
	}
	return r
}

// RSSMiB returns the resident set size in MiB.
func (r Resources) RSSMiB() float64 {
	return float64(r.RSSBytes) / (1 << 20)
}
