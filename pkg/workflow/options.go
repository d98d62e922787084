package workflow

import "github.com/askiada/go-workflow/pkg/workflow/model"

// TaskOption configures the arguments and the resource requirement of a task
// or of every task in a group.
type TaskOption func(c *taskConfig)

type taskConfig struct {
	args      []any
	resources model.Resources
}

func newTaskConfig(opts ...TaskOption) *taskConfig {
	cfg := &taskConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Args sets the auxiliary arguments referenced by [args[i]] placeholders.
func Args(values ...any) TaskOption {
	return func(c *taskConfig) {
		c.args = append([]any(nil), values...)
	}
}

// Time sets the wall-clock limit in minutes.
func Time(minutes int) TaskOption {
	return func(c *taskConfig) {
		c.resources.TimeMinutes = minutes
	}
}

// Memory sets the memory limit in megabytes.
func Memory(mb int) TaskOption {
	return func(c *taskConfig) {
		c.resources.MemoryMB = mb
	}
}

// CPUs sets the number of cores.
func CPUs(n int) TaskOption {
	return func(c *taskConfig) {
		c.resources.CPUs = n
	}
}

// WithResources replaces the whole resource requirement.
func WithResources(res model.Resources) TaskOption {
	return func(c *taskConfig) {
		c.resources = res
	}
}
