package system

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats - снимок нагрузки для отчета о производительности
type Stats struct {
	NumCPU        int
	CPUPercent    float64
	MemUsedPct    float64
	MemTotalMB    uint64
	ProcessRSSMB  uint64
	ProcessCPUPct float64
}

// CollectStats опрашивает систему; interval - окно замера загрузки CPU.
func CollectStats(interval time.Duration) (Stats, error) {
	st := Stats{NumCPU: runtime.NumCPU()}

	percents, err := cpu.Percent(interval, false)
	if err != nil {
		return st, fmt.Errorf("cpu: %w", err)
	}
	if len(percents) > 0 {
		st.CPUPercent = percents[0]
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return st, fmt.Errorf("mem: %w", err)
	}
	st.MemUsedPct = vm.UsedPercent
	st.MemTotalMB = vm.Total / 1024 / 1024

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return st, fmt.Errorf("process: %w", err)
	}
	if info, err := proc.MemoryInfo(); err == nil {
		st.ProcessRSSMB = info.RSS / 1024 / 1024
	}
	if pct, err := proc.CPUPercent(); err == nil {
		st.ProcessCPUPct = pct
	}
	return st, nil
}

func (s Stats) String() string {
	return fmt.Sprintf("CPU: %d ядер, загрузка %.1f%% (процесс %.1f%%) | RAM: %.1f%% из %d МБ, процесс %d МБ",
		s.NumCPU, s.CPUPercent, s.ProcessCPUPct, s.MemUsedPct, s.MemTotalMB, s.ProcessRSSMB)
}
