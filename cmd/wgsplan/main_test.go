package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-workflow/pkg/workflow"
	"github.com/askiada/go-workflow/pkg/workflow/manifest"
)

func writeDefinition(t *testing.T, dir string) string {
	t.Helper()

	for _, name := range []string{"s1.fastq", "s2.fastq"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	path := filepath.Join(dir, "pipeline.hcl")
	src := `
output_dir = "` + filepath.ToSlash(filepath.Join(dir, "out")) + `"
threads    = 4
inputs     = glob("` + filepath.ToSlash(dir) + `/*.fastq")

quality_control {
  databases = ["/db/hg38"]
}

taxonomic_profile {}

functional_profile {
  use_taxonomic_profiles = true
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	return path
}

func TestPlan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	def := writeDefinition(t, dir)
	manifestFile := filepath.Join(dir, "manifest.yaml")
	dotFile := filepath.Join(dir, "graph.dot")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"plan", "-f", def, "--manifest", manifestFile, "--dot", dotFile, "--check-inputs", "--log-format", "json"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, stderr.String(), `"msg":"Workflow planned."`)
	assert.Empty(t, stdout.String())

	file, err := os.Open(manifestFile)
	require.NoError(t, err)
	defer file.Close()

	mf, err := manifest.Read(file)
	require.NoError(t, err)
	assert.Len(t, mf.Tasks, 18)
	assert.Equal(t, 360+180+1440+600+300, mf.CriticalPathMinutes)

	dot, err := os.ReadFile(dotFile)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "strict digraph {")
	assert.Contains(t, string(dot), `"kneaddata/0" -> "metaphlan2/0";`)
}

func TestPlanToStdout(t *testing.T) {
	t.Parallel()

	def := writeDefinition(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"plan", "-f", def, "--log-level", "error"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, stdout.String(), "command: kneaddata --input")
	assert.Empty(t, stderr.String())
}

func TestPlanMissingInputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.hcl")
	src := `
output_dir = "out"
inputs     = ["` + filepath.ToSlash(filepath.Join(dir, "missing.fastq")) + `"]
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"plan", "-f", path, "--check-inputs"})
	err := cmd.ExecuteContext(context.Background())
	require.ErrorIs(t, err, workflow.ErrMissingUpstreamOutput)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, "wgsplan dev\n", stdout.String())
}
