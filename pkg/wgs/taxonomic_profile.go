package wgs

import (
	"github.com/askiada/go-workflow/pkg/workflow"
)

const (
	TaxonomicProfileStage = "taxonomic_profile"

	metaphlanTemplate = "metaphlan2.py [depends[0]] --input_type fastq --output_file [targets[0]] --samout [targets[1]] --nproc [args[0]] --no_map --tmp_dir [args[1]]"
	metaphlanTime     = 3 * 60
	metaphlanMemory   = 12 * 1024

	profileTag        = "taxonomic_profile"
	mergedProfileName = "taxonomic_profiles.tsv"

	joinTablesTemplate       = "humann2_join_tables --input [args[0]] --output [targets[0]]"
	joinProfileTableTemplate = joinTablesTemplate + " --file_name [args[1]]"
)

// TaxonomicProfiles are the outputs of the taxonomic profiling stage.
type TaxonomicProfiles struct {
	// Merged is the cohort table joining every profile.
	Merged string
	// Profiles holds one profile per input.
	Profiles []string
	// Alignments holds one sam file per input.
	Alignments []string
}

// TaxonomicProfile runs metaphlan2 once per quality controlled file, then
// joins the profiles into one table.
func TaxonomicProfile(wf workflow.Collaborator, inputs []string, threads int) (*TaxonomicProfiles, error) {
	err := checkCollaborator(TaxonomicProfileStage, wf)
	if err != nil {
		return nil, err
	}
	err = checkInputs(TaxonomicProfileStage, inputs)
	if err != nil {
		return nil, err
	}
	err = checkThreads(TaxonomicProfileStage, threads)
	if err != nil {
		return nil, err
	}

	profiles, err := wf.NameOutputFiles(inputs, workflow.Subfolder("metaphlan2"), workflow.Tag(profileTag), workflow.Extension("tsv"))
	if err != nil {
		return nil, workflow.NewConstructionError(TaxonomicProfileStage, "inputs", err)
	}
	alignments, err := wf.NameOutputFiles(inputs, workflow.Subfolder("metaphlan2"), workflow.Tag("bowtie2"), workflow.Extension("sam"))
	if err != nil {
		return nil, workflow.NewConstructionError(TaxonomicProfileStage, "inputs", err)
	}
	targets, err := workflow.Zip(profiles, alignments)
	if err != nil {
		return nil, workflow.NewConstructionError(TaxonomicProfileStage, "targets", err)
	}
	profileFolder := folder(profiles)

	_, err = wf.AddTaskGroup("metaphlan2", metaphlanTemplate,
		workflow.Each(inputs),
		targets,
		workflow.Args(threads, profileFolder),
		workflow.Time(metaphlanTime),
		workflow.Memory(metaphlanMemory),
		workflow.CPUs(threads),
	)
	if err != nil {
		return nil, workflow.NewConstructionError(TaxonomicProfileStage, "", err)
	}

	merged, err := wf.NameOutputFile(mergedProfileName)
	if err != nil {
		return nil, workflow.NewConstructionError(TaxonomicProfileStage, "targets", err)
	}
	_, err = wf.AddTask("metaphlan2_join_tables", joinProfileTableTemplate,
		profiles,
		[]string{merged},
		workflow.Args(profileFolder, profileTag),
	)
	if err != nil {
		return nil, workflow.NewConstructionError(TaxonomicProfileStage, "", err)
	}

	return &TaxonomicProfiles{
		Merged:     merged,
		Profiles:   profiles,
		Alignments: alignments,
	}, nil
}
