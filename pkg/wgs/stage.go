package wgs

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/askiada/go-workflow/pkg/workflow"
)

func checkInputs(stage string, inputs []string) error {
	if len(inputs) == 0 {
		return workflow.NewConstructionError(stage, "inputs", errors.Wrap(workflow.ErrMissingUpstreamOutput, "no input file"))
	}
	for i, input := range inputs {
		if input == "" {
			return workflow.NewConstructionError(stage, "inputs", errors.Wrapf(workflow.ErrMissingUpstreamOutput, "input %d is empty", i))
		}
	}

	return nil
}

func checkThreads(stage string, threads int) error {
	if threads <= 0 {
		return workflow.NewConstructionError(stage, "threads", errors.Wrapf(workflow.ErrInvalidInput, "threads must be positive, got %d", threads))
	}

	return nil
}

func checkCollaborator(stage string, wf workflow.Collaborator) error {
	if wf == nil {
		return workflow.NewConstructionError(stage, "workflow", workflow.ErrWorkflowMustBeSet)
	}

	return nil
}

// folder is the directory shared by a batch of named outputs.
func folder(outputs []string) string {
	return filepath.Dir(outputs[0])
}
