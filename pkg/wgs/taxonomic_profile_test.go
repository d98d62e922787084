package wgs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-workflow/pkg/wgs"
	"github.com/askiada/go-workflow/pkg/workflow"
	"github.com/askiada/go-workflow/pkg/workflow/model"
)

func TestTaxonomicProfile(t *testing.T) {
	t.Parallel()

	wf := newWorkflow(t)
	got, err := wgs.TaxonomicProfile(wf, []string{"s1.fastq", "s2.fastq"}, 8)
	require.NoError(t, err)

	assert.Equal(t, []string{
		out("metaphlan2", "s1.fastq.taxonomic_profile.tsv"),
		out("metaphlan2", "s2.fastq.taxonomic_profile.tsv"),
	}, got.Profiles)
	assert.Equal(t, []string{
		out("metaphlan2", "s1.fastq.bowtie2.sam"),
		out("metaphlan2", "s2.fastq.bowtie2.sam"),
	}, got.Alignments)
	assert.Equal(t, out("taxonomic_profiles.tsv"), got.Merged)

	g := group(t, wf, "metaphlan2")
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, model.Resources{TimeMinutes: 180, MemoryMB: 12288, CPUs: 8}, g.Resources())
	assert.Equal(t, [][]string{
		{got.Profiles[0], got.Alignments[0]},
		{got.Profiles[1], got.Alignments[1]},
	}, g.Targets())
	assert.Equal(t,
		"metaphlan2.py s1.fastq --input_type fastq --output_file "+got.Profiles[0]+" --samout "+got.Alignments[0]+
			" --nproc 8 --no_map --tmp_dir "+out("metaphlan2"),
		commands(t, g.Tasks())[0])

	join, ok := wf.Producer(got.Merged)
	require.True(t, ok)
	assert.Equal(t, got.Profiles, join.Depends())
	assert.Equal(t, []string{got.Merged}, join.Targets())
	assert.True(t, join.Resources().IsZero())
	assert.Equal(t,
		"humann2_join_tables --input "+out("metaphlan2")+" --output "+got.Merged+" --file_name taxonomic_profile",
		commands(t, []*model.Task{join})[0])

	upstream, err := wf.Upstream(join.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"metaphlan2/0", "metaphlan2/1"}, upstream)
}

func TestTaxonomicProfileConsumesQualityControl(t *testing.T) {
	t.Parallel()

	wf := newWorkflow(t)
	filtered, err := wgs.QualityControl(wf, []string{"s1.fastq"}, 2, wgs.Databases())
	require.NoError(t, err)
	got, err := wgs.TaxonomicProfile(wf, filtered, 2)
	require.NoError(t, err)

	task, ok := wf.Producer(got.Profiles[0])
	require.True(t, ok)
	assert.Equal(t, filtered, task.Depends())

	upstream, err := wf.Upstream(task.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"kneaddata/0"}, upstream)
	assert.Equal(t, []string{"s1.fastq"}, wf.Inputs())
}

func TestTaxonomicProfileErrors(t *testing.T) {
	t.Parallel()

	_, err := wgs.TaxonomicProfile(newWorkflow(t), nil, 1)
	require.ErrorIs(t, err, workflow.ErrMissingUpstreamOutput)

	_, err = wgs.TaxonomicProfile(newWorkflow(t), []string{"s1"}, -1)
	require.ErrorIs(t, err, workflow.ErrInvalidInput)

	wf := newWorkflow(t)
	_, err = wgs.TaxonomicProfile(wf, []string{"s1"}, 1)
	require.NoError(t, err)
	_, err = wgs.TaxonomicProfile(wf, []string{"s2"}, 1)
	require.ErrorIs(t, err, workflow.ErrInvalidInput)

	var cErr *workflow.ConstructionError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, wgs.TaxonomicProfileStage, cErr.Stage)
}
