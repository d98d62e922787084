package wgs

import (
	"github.com/askiada/go-workflow/pkg/workflow"
)

const (
	QualityControlStage = "quality_control"

	kneaddataTemplate = "kneaddata --input [depends[0]] --output [args[0]] --threads [args[1]][args[2]]"
	kneaddataTime     = 6 * 60
	kneaddataMemory   = 12 * 1024
)

// QualityControl runs kneaddata once per fastq file, filtering reads against
// dbs. It returns the filtered files, one per input.
func QualityControl(wf workflow.Collaborator, inputs []string, threads int, dbs ReferenceDBs) ([]string, error) {
	err := checkCollaborator(QualityControlStage, wf)
	if err != nil {
		return nil, err
	}
	err = checkInputs(QualityControlStage, inputs)
	if err != nil {
		return nil, err
	}
	err = checkThreads(QualityControlStage, threads)
	if err != nil {
		return nil, err
	}
	err = dbs.validate()
	if err != nil {
		return nil, workflow.NewConstructionError(QualityControlStage, "databases", err)
	}

	outputs, err := wf.NameOutputFiles(inputs, workflow.Tag("kneaddata"), workflow.Subfolder("kneaddata"))
	if err != nil {
		return nil, workflow.NewConstructionError(QualityControlStage, "inputs", err)
	}

	_, err = wf.AddTaskGroup("kneaddata", kneaddataTemplate,
		workflow.Each(inputs),
		workflow.Each(outputs),
		workflow.Args(folder(outputs), threads, dbs.Flag()),
		workflow.Time(kneaddataTime),
		workflow.Memory(kneaddataMemory),
		workflow.CPUs(threads),
	)
	if err != nil {
		return nil, workflow.NewConstructionError(QualityControlStage, "", err)
	}

	return outputs, nil
}
