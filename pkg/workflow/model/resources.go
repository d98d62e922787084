package model

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

var ErrInvalidResources = errors.New("invalid resource requirement")

// Resources is an advisory budget for grid submission. A zero field means the
// requirement was not specified.
type Resources struct {
	// TimeMinutes is the wall-clock limit in minutes.
	TimeMinutes int `yaml:"time_minutes,omitempty"`
	// MemoryMB is the memory limit in megabytes.
	MemoryMB int `yaml:"memory_mb,omitempty"`
	// CPUs is the number of cores requested.
	CPUs int `yaml:"cpus,omitempty"`
}

// Validate reports whether every limit is a non-negative number.
func (r Resources) Validate() error {
	if r.TimeMinutes < 0 {
		return errors.Wrapf(ErrInvalidResources, "time must not be negative, got %d", r.TimeMinutes)
	}
	if r.MemoryMB < 0 {
		return errors.Wrapf(ErrInvalidResources, "memory must not be negative, got %d", r.MemoryMB)
	}
	if r.CPUs < 0 {
		return errors.Wrapf(ErrInvalidResources, "cpus must not be negative, got %d", r.CPUs)
	}

	return nil
}

func (r Resources) IsZero() bool {
	return r == Resources{}
}

// Time returns the wall-clock limit as a duration.
func (r Resources) Time() time.Duration {
	return time.Duration(r.TimeMinutes) * time.Minute
}

func (r Resources) String() string {
	if r.IsZero() {
		return "unspecified"
	}

	return fmt.Sprintf("time=%s mem=%dMB cpus=%d", r.Time(), r.MemoryMB, r.CPUs)
}
