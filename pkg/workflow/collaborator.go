package workflow

import "github.com/askiada/go-workflow/pkg/workflow/model"

// Collaborator is what pipeline stages build against: an output namer and the
// two task builders. *Workflow implements it.
type Collaborator interface {
	// NameOutputFiles derives one output path per input.
	NameOutputFiles(names []string, opts ...NamingOption) ([]string, error)
	// NameOutputFile derives the output path of a single input.
	NameOutputFile(name string, opts ...NamingOption) (string, error)
	// AddTask registers one aggregate task.
	AddTask(name, tmpl string, depends, targets []string, opts ...TaskOption) (*model.Task, error)
	// AddTaskGroup registers one task per pair of depends and targets tuples.
	AddTaskGroup(name, tmpl string, depends, targets [][]string, opts ...TaskOption) (*model.TaskGroup, error)
}

var _ Collaborator = (*Workflow)(nil)
