package wgs_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-workflow/pkg/workflow"
	"github.com/askiada/go-workflow/pkg/workflow/model"
)

const outDir = "/out"

func out(parts ...string) string {
	return filepath.Join(append([]string{filepath.FromSlash(outDir)}, parts...)...)
}

func newWorkflow(t *testing.T) *workflow.Workflow {
	t.Helper()

	wf, err := workflow.New(context.Background(), filepath.FromSlash(outDir))
	require.NoError(t, err)

	return wf
}

func group(t *testing.T, wf *workflow.Workflow, name string) *model.TaskGroup {
	t.Helper()

	for _, g := range wf.Groups() {
		if g.Name() == name {
			return g
		}
	}
	require.FailNow(t, "group not found", name)

	return nil
}

func commands(t *testing.T, tasks []*model.Task) []string {
	t.Helper()

	cmds := make([]string, len(tasks))
	for i, task := range tasks {
		cmd, err := task.Command()
		require.NoError(t, err)
		cmds[i] = cmd
	}

	return cmds
}

// failingCollaborator rejects every task group.
type failingCollaborator struct {
	*workflow.Workflow
}

func (f failingCollaborator) AddTaskGroup(string, string, [][]string, [][]string, ...workflow.TaskOption) (*model.TaskGroup, error) {
	return nil, workflow.ErrInvalidInput
}

func ids(tasks []*model.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID()
	}

	return out
}
