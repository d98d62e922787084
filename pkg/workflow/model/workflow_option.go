package model

// WorkflowOption defines the interface for workflow options. Options observe
// the graph while it is constructed; they never change it.
type WorkflowOption interface {
	// New initialises the workflow option.
	New() error
	// PrepareTask runs for every task before it is added to the graph.
	PrepareTask(task *Task) error
	// PrepareGroup runs once per task group, after PrepareTask ran for all of its tasks.
	PrepareGroup(group *TaskGroup) error
	// PrepareLink runs for every edge between a producer and a consumer.
	PrepareLink(from, to *Task) error
	// Finish runs when the workflow is finished.
	Finish() error
}
