package measure

import (
	"sync"

	"github.com/askiada/go-workflow/pkg/workflow/model"
)

type DefaultMeasure struct {
	mu      sync.Mutex
	budgets map[string]*Budget
	order   []string
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		budgets: make(map[string]*Budget),
	}
}

func (m *DefaultMeasure) AddTask(group string, res model.Resources) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.budgets[group]
	if !ok {
		b = &Budget{}
		m.budgets[group] = b
		m.order = append(m.order, group)
	}
	b.Add(res)
}

func (m *DefaultMeasure) Budget(group string) (Budget, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.budgets[group]
	if !ok {
		return Budget{}, false
	}

	return *b, true
}

func (m *DefaultMeasure) Groups() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.order...)
}

func (m *DefaultMeasure) Total() Budget {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total Budget
	for _, group := range m.order {
		total.Merge(*m.budgets[group])
	}

	return total
}

var _ Measure = (*DefaultMeasure)(nil)
