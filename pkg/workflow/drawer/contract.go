package drawer

import "github.com/askiada/go-workflow/pkg/workflow/measure"

// Drawer is an interface that defines the methods for drawing a workflow.
type Drawer interface {
	// AddTask adds a task vertex, labelled with its resources.
	AddTask(id, group, label string) error
	// AddLink adds a link between a producer and a consumer.
	AddLink(from, to string) error
	// AddMeasure colours each group by its share of the CPU budget.
	AddMeasure(m measure.Measure) error
	// Draw writes the workflow graph.
	Draw() error
}
