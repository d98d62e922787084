package measure

import (
	"fmt"

	"github.com/askiada/go-workflow/pkg/workflow/model"
)

// Budget is the grid reservation a set of tasks asks for.
type Budget struct {
	Tasks          int `yaml:"tasks"`
	CPUMinutes     int `yaml:"cpu_minutes"`
	PeakMemoryMB   int `yaml:"peak_memory_mb"`
	MaxTimeMinutes int `yaml:"max_time_minutes"`
}

// Add accounts one task. A task without a CPU count reserves one core.
func (b *Budget) Add(res model.Resources) {
	cpus := res.CPUs
	if cpus == 0 {
		cpus = 1
	}

	b.Tasks++
	b.CPUMinutes += res.TimeMinutes * cpus
	b.PeakMemoryMB = max(b.PeakMemoryMB, res.MemoryMB)
	b.MaxTimeMinutes = max(b.MaxTimeMinutes, res.TimeMinutes)
}

// Merge adds other to b.
func (b *Budget) Merge(other Budget) {
	b.Tasks += other.Tasks
	b.CPUMinutes += other.CPUMinutes
	b.PeakMemoryMB = max(b.PeakMemoryMB, other.PeakMemoryMB)
	b.MaxTimeMinutes = max(b.MaxTimeMinutes, other.MaxTimeMinutes)
}

func (b Budget) String() string {
	return fmt.Sprintf("tasks=%d cpu=%dmin peak=%dMB max=%dmin", b.Tasks, b.CPUMinutes, b.PeakMemoryMB, b.MaxTimeMinutes)
}
