package measure

import "github.com/askiada/go-workflow/pkg/workflow/model"

// Measure accumulates resource budgets per task group.
type Measure interface {
	// AddTask accounts the resources of one task to a group.
	AddTask(group string, res model.Resources)
	// Budget returns the budget of one group.
	Budget(group string) (Budget, bool)
	// Groups returns the group names in the order they were first seen.
	Groups() []string
	// Total sums every group.
	Total() Budget
}
