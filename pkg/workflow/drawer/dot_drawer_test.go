package drawer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-workflow/pkg/workflow"
	"github.com/askiada/go-workflow/pkg/workflow/drawer"
	"github.com/askiada/go-workflow/pkg/workflow/measure"
)

func TestDOTDrawer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := drawer.NewDOTDrawer(&buf)
	require.NoError(t, d.AddTask("qc/0", "qc", "time=6h0m0s mem=12288MB cpus=4"))
	require.NoError(t, d.AddTask("join", "join", ""))
	require.NoError(t, d.AddLink("qc/0", "join"))
	require.Error(t, d.AddLink("qc/0", "missing"))
	require.Error(t, d.AddTask("join", "join", ""))
	require.NoError(t, d.Draw())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "strict digraph {"))
	assert.Contains(t, out, `"qc/0" -> "join";`)
	assert.Contains(t, out, `label=<qc/0 <BR /> <FONT POINT-SIZE="12">time=6h0m0s mem=12288MB cpus=4</FONT>>`)
	assert.Contains(t, out, `color="#0000f0"`)
	assert.Contains(t, out, `color="#f00000"`)
	assert.NotContains(t, out, "group=")
}

func TestWorkflowDrawer(t *testing.T) {
	t.Parallel()

	fileName := filepath.Join(t.TempDir(), "graph.dot")
	m := measure.NewDefaultMeasure()
	wf, err := workflow.New(context.Background(), "/out",
		measure.WorkflowMeasure(m),
		drawer.WorkflowDrawer(drawer.NewFileDrawer(fileName), m),
	)
	require.NoError(t, err)

	_, err = wf.AddTaskGroup("qc", "qc [depends[0]] [targets[0]]",
		workflow.Each([]string{"s1", "s2"}), workflow.Each([]string{"q1", "q2"}),
		workflow.Time(360), workflow.Memory(12288), workflow.CPUs(4))
	require.NoError(t, err)
	_, err = wf.AddTask("join", "join [depends[0]] [depends[1]]", []string{"q1", "q2"}, []string{"all"})
	require.NoError(t, err)
	require.NoError(t, wf.Finish())

	raw, err := os.ReadFile(fileName)
	require.NoError(t, err)
	out := string(raw)

	assert.Contains(t, out, `"qc/0" -> "join";`)
	assert.Contains(t, out, `"qc/1" -> "join";`)
	assert.Contains(t, out, "group: tasks=2 cpu=2880min peak=12288MB max=360min")
	assert.Contains(t, out, "group: tasks=1 cpu=0min peak=0MB max=0min")
}
