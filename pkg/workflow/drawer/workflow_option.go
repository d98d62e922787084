package drawer

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-workflow/pkg/workflow/measure"
	"github.com/askiada/go-workflow/pkg/workflow/model"
)

type workflowDrawer struct {
	Drawer
	m measure.Measure
}

func (wd *workflowDrawer) New() error { return nil }

func (wd *workflowDrawer) PrepareTask(task *model.Task) error {
	label := ""
	if res := task.Resources(); !res.IsZero() {
		label = res.String()
	}

	err := wd.AddTask(task.ID(), measure.GroupOf(task), label)
	if err != nil {
		return errors.Wrap(err, "unable to add task to drawer")
	}

	return nil
}

func (wd *workflowDrawer) PrepareGroup(group *model.TaskGroup) error { return nil }

func (wd *workflowDrawer) PrepareLink(from, to *model.Task) error {
	err := wd.AddLink(from.ID(), to.ID())
	if err != nil {
		return errors.Wrap(err, "unable to add link to drawer")
	}

	return nil
}

func (wd *workflowDrawer) Finish() error {
	if wd.m != nil {
		err := wd.AddMeasure(wd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := wd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw workflow")
	}

	return nil
}

// WorkflowDrawer returns a workflow option drawing the task graph when the
// workflow is finished. m is optional.
func WorkflowDrawer(drawer Drawer, m measure.Measure) model.WorkflowOption {
	return &workflowDrawer{drawer, m}
}
