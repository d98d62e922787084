package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-workflow/pkg/workflow/command"
)

func TestParseAndRender(t *testing.T) {
	t.Parallel()

	tpl, err := command.Parse("metaphlan2.py [depends[0]] --output_file [targets[0]] --samout [targets[1]] --nproc [args[0]]")
	require.NoError(t, err)

	got, err := tpl.Render([]string{"in.fastq"}, []string{"p.tsv", "a.sam"}, []any{4})
	require.NoError(t, err)
	assert.Equal(t, "metaphlan2.py in.fastq --output_file p.tsv --samout a.sam --nproc 4", got)
}

func TestParseNoPlaceholders(t *testing.T) {
	t.Parallel()

	tpl, err := command.Parse("echo hello")
	require.NoError(t, err)
	assert.Empty(t, tpl.Placeholders())

	got, err := tpl.Render(nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "echo hello", got)
}

func TestParseRepeatedPlaceholder(t *testing.T) {
	t.Parallel()

	tpl, err := command.Parse("cp [depends[0]] [targets[0]] && ls [depends[0]]")
	require.NoError(t, err)

	got, err := tpl.Render([]string{"a"}, []string{"b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "cp a b && ls a", got)
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	tests := []string{
		"tool [depends[x]]",
		"tool [targets[0]",
		"tool [args[]]",
		"tool [depends[-1]]",
	}
	for _, tmpl := range tests {
		tmpl := tmpl
		t.Run(tmpl, func(t *testing.T) {
			t.Parallel()

			_, err := command.Parse(tmpl)
			require.ErrorIs(t, err, command.ErrMalformedPlaceholder)
		})
	}
}

func TestParseIgnoresOtherBrackets(t *testing.T) {
	t.Parallel()

	tpl, err := command.Parse("awk '{print $1}' [depends[0]] | grep '[a-z]'")
	require.NoError(t, err)
	assert.Len(t, tpl.Placeholders(), 1)
}

func TestArity(t *testing.T) {
	t.Parallel()

	tpl := command.MustParse("humann2 --input [depends[0]] --taxonomic-profile [depends[1]] --output [args[0]] --threads [args[1]]")
	deps, targets, args := tpl.Arity()
	assert.Equal(t, 2, deps)
	assert.Equal(t, 0, targets)
	assert.Equal(t, 2, args)
}

func TestValidateOutOfRange(t *testing.T) {
	t.Parallel()

	tpl := command.MustParse("join --input [args[0]] --output [targets[0]] --file_name [args[1]]")

	require.NoError(t, tpl.Validate(3, 1, 2))

	err := tpl.Validate(3, 1, 1)
	require.ErrorIs(t, err, command.ErrPlaceholderOutOfRange)
	assert.Contains(t, err.Error(), "[args[1]]")

	err = tpl.Validate(3, 0, 2)
	require.ErrorIs(t, err, command.ErrPlaceholderOutOfRange)
	assert.Contains(t, err.Error(), "[targets[0]]")
}

func TestRenderOutOfRangeProducesNoCommand(t *testing.T) {
	t.Parallel()

	tpl := command.MustParse("tool [depends[1]]")
	got, err := tpl.Render([]string{"only-one"}, nil, nil)
	require.ErrorIs(t, err, command.ErrPlaceholderOutOfRange)
	assert.Empty(t, got)
}

func TestRenderArgFragment(t *testing.T) {
	t.Parallel()

	tpl := command.MustParse("kneaddata --input [depends[0]] --threads [args[0]][args[1]]")
	got, err := tpl.Render([]string{"s1.fastq"}, nil, []any{2, " --reference-db a --reference-db b"})
	require.NoError(t, err)
	assert.Equal(t, "kneaddata --input s1.fastq --threads 2 --reference-db a --reference-db b", got)

	got, err = tpl.Render([]string{"s1.fastq"}, nil, []any{2, ""})
	require.NoError(t, err)
	assert.Equal(t, "kneaddata --input s1.fastq --threads 2", got)
}

func TestMustParsePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		command.MustParse("tool [args[oops]]")
	})
}
