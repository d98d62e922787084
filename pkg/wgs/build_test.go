package wgs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-workflow/pkg/wgs"
	"github.com/askiada/go-workflow/pkg/workflow"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	wf := newWorkflow(t)
	got, err := wgs.Build(context.Background(), wf, wgs.Params{
		Inputs:               []string{"s1.fastq", "s2.fastq"},
		Threads:              4,
		Databases:            wgs.Databases("/db/hg38"),
		TaxonomicProfile:     true,
		FunctionalProfile:    true,
		UseTaxonomicProfiles: true,
	})
	require.NoError(t, err)

	require.NotNil(t, got.Taxonomy)
	require.NotNil(t, got.Functional)
	assert.Len(t, got.Filtered, 2)
	assert.Equal(t, []string{"s1.fastq", "s2.fastq"}, wf.Inputs())

	humann, ok := wf.Producer(got.Functional.SampleGeneFamilies[0])
	require.True(t, ok)
	assert.Equal(t, []string{got.Filtered[0], got.Taxonomy.Profiles[0]}, humann.Depends())

	tasks, err := wf.Tasks()
	require.NoError(t, err)
	// 2 kneaddata, 2 metaphlan2, 1 join, 2 humann2, 2 regroup, 6 renorm, 3 joins
	assert.Len(t, tasks, 18)

	path, minutes, err := wf.CriticalPath()
	require.NoError(t, err)
	assert.Equal(t, 360+180+1440+600+300, minutes)
	assert.Equal(t, []string{
		"kneaddata/0", "metaphlan2/0", "humann2/0", "humann2_regroup_table/0", "humann2_renorm_table/2",
	}, ids(path))
}

func TestBuildQualityControlOnly(t *testing.T) {
	t.Parallel()

	wf := newWorkflow(t)
	got, err := wgs.Build(context.Background(), wf, wgs.Params{Inputs: []string{"s1.fastq"}, Threads: 1})
	require.NoError(t, err)
	assert.Nil(t, got.Taxonomy)
	assert.Nil(t, got.Functional)
	assert.Len(t, wf.Groups(), 1)
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	_, err := wgs.Build(context.Background(), newWorkflow(t), wgs.Params{
		Inputs:               []string{"s1.fastq"},
		Threads:              1,
		FunctionalProfile:    true,
		UseTaxonomicProfiles: true,
	})
	require.ErrorIs(t, err, workflow.ErrInvalidInput)

	_, err = wgs.Build(context.Background(), newWorkflow(t), wgs.Params{Threads: 1})
	require.ErrorIs(t, err, workflow.ErrMissingUpstreamOutput)
}
