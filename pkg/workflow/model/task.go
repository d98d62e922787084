package model

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-workflow/pkg/workflow/command"
)

var (
	ErrTemplateMustBeSet   = errors.New("template must be set")
	ErrIDMustBeSet         = errors.New("task id must be set")
	ErrEmptyIdentifier     = errors.New("file identifier must not be empty")
	ErrBatchLengthMismatch = errors.New("depends and targets batches must have the same length")
)

// Task is one external-tool invocation with declared inputs and outputs.
// A Task is never mutated after NewTask returns.
type Task struct {
	id        string
	group     string
	template  *command.Template
	depends   []string
	targets   []string
	args      []any
	resources Resources
}

// NewTask builds a task and checks that every placeholder of the template
// resolves against the given sequences.
func NewTask(id, group string, tpl *command.Template, depends, targets []string, args []any, res Resources) (*Task, error) {
	if id == "" {
		return nil, ErrIDMustBeSet
	}
	if tpl == nil {
		return nil, ErrTemplateMustBeSet
	}
	for i, dep := range depends {
		if dep == "" {
			return nil, errors.Wrapf(ErrEmptyIdentifier, "depends[%d]", i)
		}
	}
	for i, target := range targets {
		if target == "" {
			return nil, errors.Wrapf(ErrEmptyIdentifier, "targets[%d]", i)
		}
	}
	err := res.Validate()
	if err != nil {
		return nil, err
	}
	err = tpl.Validate(len(depends), len(targets), len(args))
	if err != nil {
		return nil, err
	}

	return &Task{
		id:        id,
		group:     group,
		template:  tpl,
		depends:   append([]string(nil), depends...),
		targets:   append([]string(nil), targets...),
		args:      append([]any(nil), args...),
		resources: res,
	}, nil
}

func (t *Task) ID() string { return t.id }

// Group returns the name of the group the task belongs to, or an empty
// string for a single task.
func (t *Task) Group() string { return t.group }

func (t *Task) Template() *command.Template { return t.template }

func (t *Task) Depends() []string { return append([]string(nil), t.depends...) }

func (t *Task) Targets() []string { return append([]string(nil), t.targets...) }

func (t *Task) Args() []any { return append([]any(nil), t.args...) }

func (t *Task) Resources() Resources { return t.resources }

// Command renders the literal command line.
func (t *Task) Command() (string, error) {
	return t.template.Render(t.depends, t.targets, t.args)
}

// TaskGroup is a batch of independent tasks sharing a template, arguments and
// a resource profile.
type TaskGroup struct {
	name      string
	template  *command.Template
	args      []any
	resources Resources
	tasks     []*Task
}

// NewTaskGroup zips depends[i] with targets[i] into one task per index. Task
// ids are built by idFn from the group name and the index.
func NewTaskGroup(
	name string,
	tpl *command.Template,
	depends, targets [][]string,
	args []any,
	res Resources,
	idFn func(name string, idx int) string,
) (*TaskGroup, error) {
	if len(depends) != len(targets) {
		return nil, errors.Wrapf(ErrBatchLengthMismatch, "%d depends, %d targets", len(depends), len(targets))
	}

	group := &TaskGroup{
		name:      name,
		template:  tpl,
		args:      append([]any(nil), args...),
		resources: res,
		tasks:     make([]*Task, 0, len(depends)),
	}
	for i := range depends {
		task, err := NewTask(idFn(name, i), name, tpl, depends[i], targets[i], args, res)
		if err != nil {
			return nil, errors.Wrapf(err, "task %d", i)
		}
		group.tasks = append(group.tasks, task)
	}

	return group, nil
}

func (g *TaskGroup) Name() string { return g.name }

func (g *TaskGroup) Template() *command.Template { return g.template }

func (g *TaskGroup) Args() []any { return append([]any(nil), g.args...) }

func (g *TaskGroup) Resources() Resources { return g.resources }

func (g *TaskGroup) Len() int { return len(g.tasks) }

func (g *TaskGroup) Tasks() []*Task { return append([]*Task(nil), g.tasks...) }

// Targets returns the targets of every task, in task order.
func (g *TaskGroup) Targets() [][]string {
	out := make([][]string, len(g.tasks))
	for i, task := range g.tasks {
		out[i] = task.Targets()
	}

	return out
}
