package model_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-workflow/pkg/workflow/command"
	"github.com/askiada/go-workflow/pkg/workflow/model"
)

func groupID(name string, idx int) string {
	return fmt.Sprintf("%s/%d", name, idx)
}

func TestNewTask(t *testing.T) {
	t.Parallel()

	tpl := command.MustParse("tool --in [depends[0]] --out [targets[0]] --threads [args[0]]")
	task, err := model.NewTask("tool", "", tpl, []string{"a"}, []string{"b"}, []any{2}, model.Resources{CPUs: 2})
	require.NoError(t, err)

	assert.Equal(t, "tool", task.ID())
	assert.Empty(t, task.Group())
	assert.Equal(t, []string{"a"}, task.Depends())
	assert.Equal(t, []string{"b"}, task.Targets())
	assert.Equal(t, model.Resources{CPUs: 2}, task.Resources())

	cmd, err := task.Command()
	require.NoError(t, err)
	assert.Equal(t, "tool --in a --out b --threads 2", cmd)
}

func TestNewTaskIsNotAffectedByCallerSlices(t *testing.T) {
	t.Parallel()

	deps := []string{"a"}
	tpl := command.MustParse("cat [depends[0]]")
	task, err := model.NewTask("cat", "", tpl, deps, nil, nil, model.Resources{})
	require.NoError(t, err)

	deps[0] = "changed"
	got := task.Depends()
	got[0] = "changed again"
	assert.Equal(t, []string{"a"}, task.Depends())
}

func TestNewTaskErrors(t *testing.T) {
	t.Parallel()

	tpl := command.MustParse("tool [depends[0]] [targets[0]]")

	_, err := model.NewTask("", "", tpl, []string{"a"}, []string{"b"}, nil, model.Resources{})
	require.ErrorIs(t, err, model.ErrIDMustBeSet)

	_, err = model.NewTask("x", "", nil, []string{"a"}, []string{"b"}, nil, model.Resources{})
	require.ErrorIs(t, err, model.ErrTemplateMustBeSet)

	_, err = model.NewTask("x", "", tpl, []string{""}, []string{"b"}, nil, model.Resources{})
	require.ErrorIs(t, err, model.ErrEmptyIdentifier)

	_, err = model.NewTask("x", "", tpl, []string{"a"}, nil, nil, model.Resources{})
	require.ErrorIs(t, err, command.ErrPlaceholderOutOfRange)

	_, err = model.NewTask("x", "", tpl, []string{"a"}, []string{"b"}, nil, model.Resources{MemoryMB: -1})
	require.ErrorIs(t, err, model.ErrInvalidResources)
}

func TestNewTaskGroup(t *testing.T) {
	t.Parallel()

	tpl := command.MustParse("tool [depends[0]] [targets[0]] [args[0]]")
	group, err := model.NewTaskGroup("tool", tpl,
		[][]string{{"a"}, {"b"}},
		[][]string{{"a.out"}, {"b.out"}},
		[]any{"shared"},
		model.Resources{TimeMinutes: 5},
		groupID,
	)
	require.NoError(t, err)
	require.Equal(t, 2, group.Len())

	for i, task := range group.Tasks() {
		assert.Equal(t, groupID("tool", i), task.ID())
		assert.Equal(t, "tool", task.Group())
		assert.Equal(t, []any{"shared"}, task.Args())
		assert.Equal(t, model.Resources{TimeMinutes: 5}, task.Resources())
	}
	assert.Equal(t, [][]string{{"a.out"}, {"b.out"}}, group.Targets())
}

func TestNewTaskGroupLengthMismatch(t *testing.T) {
	t.Parallel()

	tpl := command.MustParse("tool [depends[0]] [targets[0]]")
	_, err := model.NewTaskGroup("tool", tpl,
		[][]string{{"a"}, {"b"}, {"c"}},
		[][]string{{"a.out"}, {"b.out"}},
		nil, model.Resources{}, groupID,
	)
	require.ErrorIs(t, err, model.ErrBatchLengthMismatch)
}

func TestNewTaskGroupReportsTaskIndex(t *testing.T) {
	t.Parallel()

	tpl := command.MustParse("tool [depends[1]] [targets[0]]")
	_, err := model.NewTaskGroup("tool", tpl,
		[][]string{{"a", "pa"}, {"b"}},
		[][]string{{"a.out"}, {"b.out"}},
		nil, model.Resources{}, groupID,
	)
	require.ErrorIs(t, err, command.ErrPlaceholderOutOfRange)
	assert.Contains(t, err.Error(), "task 1")
}

func TestResources(t *testing.T) {
	t.Parallel()

	res := model.Resources{TimeMinutes: 360, MemoryMB: 12 * 1024, CPUs: 4}
	require.NoError(t, res.Validate())
	assert.Equal(t, 6*time.Hour, res.Time())
	assert.False(t, res.IsZero())
	assert.Equal(t, "time=6h0m0s mem=12288MB cpus=4", res.String())

	assert.True(t, model.Resources{}.IsZero())
	assert.Equal(t, "unspecified", model.Resources{}.String())

	require.ErrorIs(t, model.Resources{TimeMinutes: -1}.Validate(), model.ErrInvalidResources)
	require.ErrorIs(t, model.Resources{CPUs: -2}.Validate(), model.ErrInvalidResources)
}
