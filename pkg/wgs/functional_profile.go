package wgs

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-workflow/pkg/workflow"
)

const (
	FunctionalProfileStage = "functional_profile"

	humannTime   = 24 * 60
	humannMemory = 36 * 1024

	regroupTemplate = "humann2_regroup_table --input [depends[0]] --output [targets[0]] --groups uniref90_level4ec"
	regroupTime     = 10 * 60
	regroupMemory   = 5 * 1024

	renormTemplate = "humann2_renorm_table --input [depends[0]] --output [targets[0]] --units relab"
	renormTime     = 5 * 60
	renormMemory   = 5 * 1024
)

// HumannVariant selects the humann2 command line. The variant fixes both the
// template and the shape of the dependency tuples.
type HumannVariant int

const (
	// HumannSampleOnly profiles each sample alone: depends = (sample).
	HumannSampleOnly HumannVariant = iota
	// HumannWithTaxonomy reuses a taxonomic profile per sample:
	// depends = (sample, profile).
	HumannWithTaxonomy
)

func (v HumannVariant) String() string {
	switch v {
	case HumannSampleOnly:
		return "sample_only"
	case HumannWithTaxonomy:
		return "with_taxonomy"
	default:
		return "unknown"
	}
}

// Template returns the humann2 command template of the variant.
func (v HumannVariant) Template() string {
	const base = "humann2 --input [depends[0]] --output [args[0]] --threads [args[1]]"
	if v == HumannWithTaxonomy {
		return base + " --taxonomic-profile [depends[1]]"
	}

	return base
}

// FunctionalInput is what functional profiling runs on.
type FunctionalInput struct {
	Variant           HumannVariant
	Samples           []string
	TaxonomicProfiles []string
}

// SampleOnly profiles samples without prior taxonomic information.
func SampleOnly(samples []string) FunctionalInput {
	return FunctionalInput{Variant: HumannSampleOnly, Samples: samples}
}

// WithTaxonomy pairs samples[i] with profiles[i].
func WithTaxonomy(samples, profiles []string) FunctionalInput {
	return FunctionalInput{Variant: HumannWithTaxonomy, Samples: samples, TaxonomicProfiles: profiles}
}

func (in FunctionalInput) depends() ([][]string, error) {
	switch in.Variant {
	case HumannSampleOnly:
		if len(in.TaxonomicProfiles) > 0 {
			return nil, errors.Wrap(workflow.ErrInvalidInput, "taxonomic profiles given to the sample only variant")
		}

		return workflow.Each(in.Samples), nil
	case HumannWithTaxonomy:
		if len(in.TaxonomicProfiles) == 0 {
			return nil, errors.Wrap(workflow.ErrMissingUpstreamOutput, "no taxonomic profile")
		}
		for i, profile := range in.TaxonomicProfiles {
			if profile == "" {
				return nil, errors.Wrapf(workflow.ErrMissingUpstreamOutput, "taxonomic profile %d is empty", i)
			}
		}

		return workflow.Zip(in.Samples, in.TaxonomicProfiles)
	default:
		return nil, errors.Wrapf(workflow.ErrInvalidInput, "unknown humann2 variant %d", in.Variant)
	}
}

// FunctionalProfiles are the outputs of the functional profiling stage.
type FunctionalProfiles struct {
	// GeneFamilies, ECs and PathAbundance are the cohort tables in relative
	// abundance.
	GeneFamilies  string
	ECs           string
	PathAbundance string

	// Per sample outputs of humann2.
	SampleGeneFamilies  []string
	SamplePathAbundance []string
	SamplePathCoverage  []string
	SampleECs           []string
}

type kind struct {
	name      string
	subfolder string
	merged    string
}

var relabKinds = []kind{
	{name: "genefamilies", subfolder: "genes", merged: "genefamilies_relab.tsv"},
	{name: "ecs", subfolder: "ecs", merged: "ecs_relab.tsv"},
	{name: "pathabundance", subfolder: "pathways", merged: "pathabundance_relab.tsv"},
}

// FunctionalProfile runs humann2 per sample, regroups gene families to
// enzyme commission numbers, normalizes gene families, ECs and pathway
// abundances to relative abundance and joins each kind into one table.
func FunctionalProfile(wf workflow.Collaborator, in FunctionalInput, threads int) (*FunctionalProfiles, error) {
	err := checkCollaborator(FunctionalProfileStage, wf)
	if err != nil {
		return nil, err
	}
	err = checkInputs(FunctionalProfileStage, in.Samples)
	if err != nil {
		return nil, err
	}
	err = checkThreads(FunctionalProfileStage, threads)
	if err != nil {
		return nil, err
	}
	depends, err := in.depends()
	if err != nil {
		return nil, workflow.NewConstructionError(FunctionalProfileStage, "taxonomic_profiles", err)
	}

	name := func(files []string, opts ...workflow.NamingOption) ([]string, error) {
		out, err := wf.NameOutputFiles(files, opts...)
		if err != nil {
			return nil, workflow.NewConstructionError(FunctionalProfileStage, "inputs", err)
		}

		return out, nil
	}

	out := &FunctionalProfiles{}
	humann := []struct {
		tag string
		dst *[]string
	}{
		{"genefamilies", &out.SampleGeneFamilies},
		{"pathabundance", &out.SamplePathAbundance},
		{"pathcoverage", &out.SamplePathCoverage},
	}
	for _, h := range humann {
		*h.dst, err = name(in.Samples, workflow.Subfolder("humann2"), workflow.Tag(h.tag), workflow.Extension("tsv"))
		if err != nil {
			return nil, err
		}
	}
	targets, err := workflow.Zip(out.SampleGeneFamilies, out.SamplePathAbundance, out.SamplePathCoverage)
	if err != nil {
		return nil, workflow.NewConstructionError(FunctionalProfileStage, "targets", err)
	}

	_, err = wf.AddTaskGroup("humann2", in.Variant.Template(),
		depends,
		targets,
		workflow.Args(folder(out.SampleGeneFamilies), threads),
		workflow.Time(humannTime),
		workflow.Memory(humannMemory),
		workflow.CPUs(threads),
	)
	if err != nil {
		return nil, workflow.NewConstructionError(FunctionalProfileStage, "", err)
	}

	out.SampleECs, err = name(out.SampleGeneFamilies, workflow.Subfolder("humann2"), workflow.Tag("ecs"))
	if err != nil {
		return nil, err
	}
	_, err = wf.AddTaskGroup("humann2_regroup_table", regroupTemplate,
		workflow.Each(out.SampleGeneFamilies),
		workflow.Each(out.SampleECs),
		workflow.Time(regroupTime),
		workflow.Memory(regroupMemory),
		workflow.CPUs(1),
	)
	if err != nil {
		return nil, workflow.NewConstructionError(FunctionalProfileStage, "", err)
	}

	sources := [][]string{out.SampleGeneFamilies, out.SampleECs, out.SamplePathAbundance}
	normalized := make([][]string, len(relabKinds))
	for i, k := range relabKinds {
		normalized[i], err = name(sources[i], workflow.Subfolder(k.subfolder), workflow.Tag("relab"))
		if err != nil {
			return nil, err
		}
	}
	_, err = wf.AddTaskGroup("humann2_renorm_table", renormTemplate,
		workflow.Concat(workflow.Each(sources[0]), workflow.Each(sources[1]), workflow.Each(sources[2])),
		workflow.Concat(workflow.Each(normalized[0]), workflow.Each(normalized[1]), workflow.Each(normalized[2])),
		workflow.Time(renormTime),
		workflow.Memory(renormMemory),
		workflow.CPUs(1),
	)
	if err != nil {
		return nil, workflow.NewConstructionError(FunctionalProfileStage, "", err)
	}

	merged := []*string{&out.GeneFamilies, &out.ECs, &out.PathAbundance}
	for i, k := range relabKinds {
		*merged[i], err = wf.NameOutputFile(k.merged)
		if err != nil {
			return nil, workflow.NewConstructionError(FunctionalProfileStage, "targets", err)
		}
		_, err = wf.AddTask("humann2_join_tables_"+k.name, joinTablesTemplate,
			normalized[i],
			[]string{*merged[i]},
			workflow.Args(folder(normalized[i])),
		)
		if err != nil {
			return nil, workflow.NewConstructionError(FunctionalProfileStage, "", err)
		}
	}

	return out, nil
}
