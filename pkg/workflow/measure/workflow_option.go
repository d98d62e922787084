package measure

import "github.com/askiada/go-workflow/pkg/workflow/model"

type workflowMeasure struct {
	Measure
}

func (wm *workflowMeasure) New() error { return nil }

func (wm *workflowMeasure) PrepareTask(task *model.Task) error {
	wm.AddTask(GroupOf(task), task.Resources())

	return nil
}

func (wm *workflowMeasure) PrepareGroup(group *model.TaskGroup) error { return nil }

func (wm *workflowMeasure) PrepareLink(from, to *model.Task) error { return nil }

func (wm *workflowMeasure) Finish() error { return nil }

// GroupOf returns the name a task is accounted under: its group, or its own
// id for a single task.
func GroupOf(task *model.Task) string {
	if task.Group() != "" {
		return task.Group()
	}

	return task.ID()
}

// WorkflowMeasure returns a workflow option feeding m with every task added
// to the workflow.
func WorkflowMeasure(m Measure) model.WorkflowOption {
	return &workflowMeasure{m}
}
