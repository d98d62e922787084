package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/askiada/go-workflow/internal/criticalpath"
	"github.com/askiada/go-workflow/internal/ctxlog"
	"github.com/askiada/go-workflow/internal/store"
	"github.com/askiada/go-workflow/pkg/workflow/command"
	"github.com/askiada/go-workflow/pkg/workflow/model"
)

// Workflow collects tasks into a static dependency graph. Edges are derived
// from file identifiers: a task that depends on a file is linked to the task
// that declares it as a target.
//
// A Workflow that returned a construction error from AddTask or AddTaskGroup
// because of the graph itself (a cycle) must be discarded.
type Workflow struct {
	mu        sync.Mutex
	logger    *slog.Logger
	outputDir string
	opts      []model.WorkflowOption

	store  store.CustomStore[string, *model.Task]
	graph  graph.Graph[string, *model.Task]
	groups []*model.TaskGroup
	names  map[string]struct{}

	producers map[string]string   // target -> task id
	consumers map[string][]string // dependency -> task ids
}

func taskHash(t *model.Task) string { return t.ID() }

func groupTaskID(name string, idx int) string {
	return fmt.Sprintf("%s/%d", name, idx)
}

// New creates a new workflow writing its outputs under outputDir. The logger
// is taken from ctx.
func New(ctx context.Context, outputDir string, opts ...model.WorkflowOption) (*Workflow, error) {
	st := store.NewMemoryStore[string, *model.Task]()
	wf := &Workflow{
		logger:    ctxlog.FromContext(ctx),
		outputDir: outputDir,
		opts:      opts,
		store:     st,
		graph:     graph.NewWithStore(taskHash, st, graph.Directed(), graph.PreventCycles()),
		names:     make(map[string]struct{}),
		producers: make(map[string]string),
		consumers: make(map[string][]string),
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply workflow option")
		}
	}

	return wf, nil
}

// OutputDir returns the root directory outputs are named under.
func (w *Workflow) OutputDir() string {
	return w.outputDir
}

func (w *Workflow) checkName(name string) error {
	if name == "" {
		return ErrNameMustBeSet
	}
	if strings.Contains(name, "/") {
		return errors.Wrapf(ErrInvalidInput, "name %q must not contain '/'", name)
	}
	if _, ok := w.names[name]; ok {
		return errors.Wrapf(ErrInvalidInput, "name %q is already used", name)
	}

	return nil
}

func parseTemplate(tmpl string) (*command.Template, error) {
	if strings.TrimSpace(tmpl) == "" {
		return nil, errors.Wrap(ErrInvalidInput, "template must not be empty")
	}

	return command.Parse(tmpl)
}

// AddTask registers a single task. It is meant for aggregation steps whose
// dependencies are the full output set of a previous group.
func (w *Workflow) AddTask(name, tmpl string, depends, targets []string, opts ...TaskOption) (*model.Task, error) {
	if w == nil {
		return nil, ErrWorkflowMustBeSet
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.checkName(name)
	if err != nil {
		return nil, NewConstructionError(name, "name", err)
	}
	tpl, err := parseTemplate(tmpl)
	if err != nil {
		return nil, NewConstructionError(name, "template", err)
	}
	if len(depends) == 0 {
		return nil, NewConstructionError(name, "depends", errors.Wrap(ErrMissingUpstreamOutput, "task has no dependency"))
	}

	cfg := newTaskConfig(opts...)
	task, err := model.NewTask(name, "", tpl, depends, targets, cfg.args, cfg.resources)
	if err != nil {
		return nil, NewConstructionError(name, parameterOf(err), err)
	}

	err = w.insert(nil, []*model.Task{task})
	if err != nil {
		return nil, NewConstructionError(name, parameterOf(err), err)
	}
	w.names[name] = struct{}{}

	w.logger.Debug("Task added.",
		"stage", name,
		"template", tmpl,
		"depends", len(depends),
		"targets", len(targets),
		"resources", cfg.resources.String(),
	)

	return task, nil
}

// AddTaskGroup registers one task per index of depends and targets. Every task
// shares the template, the arguments and the resource requirement. Tasks of a
// group never depend on each other and may run in parallel.
func (w *Workflow) AddTaskGroup(name, tmpl string, depends, targets [][]string, opts ...TaskOption) (*model.TaskGroup, error) {
	if w == nil {
		return nil, ErrWorkflowMustBeSet
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.checkName(name)
	if err != nil {
		return nil, NewConstructionError(name, "name", err)
	}
	tpl, err := parseTemplate(tmpl)
	if err != nil {
		return nil, NewConstructionError(name, "template", err)
	}
	if len(depends) == 0 && len(targets) == 0 {
		return nil, NewConstructionError(name, "depends", errors.Wrap(ErrMissingUpstreamOutput, "empty batch"))
	}

	cfg := newTaskConfig(opts...)
	group, err := model.NewTaskGroup(name, tpl, depends, targets, cfg.args, cfg.resources, groupTaskID)
	if err != nil {
		return nil, NewConstructionError(name, parameterOf(err), err)
	}

	err = w.insert(group, group.Tasks())
	if err != nil {
		return nil, NewConstructionError(name, parameterOf(err), err)
	}
	w.names[name] = struct{}{}
	w.groups = append(w.groups, group)

	w.logger.Debug("Task group added.",
		"stage", name,
		"template", tmpl,
		"tasks", group.Len(),
		"resources", cfg.resources.String(),
	)

	return group, nil
}

// validate checks new tasks against the graph before anything is inserted.
func (w *Workflow) validate(group *model.TaskGroup, tasks []*model.Task) error {
	newTargets := make(map[string]string)
	for _, task := range tasks {
		for _, target := range task.Targets() {
			if owner, ok := w.producers[target]; ok {
				return errors.Wrapf(ErrDuplicateTarget, "%q is produced by %q", target, owner)
			}
			if owner, ok := newTargets[target]; ok {
				return errors.Wrapf(ErrDuplicateTarget, "%q is produced by %q and %q", target, owner, task.ID())
			}
			newTargets[target] = task.ID()
		}
	}

	for _, task := range tasks {
		for _, dep := range task.Depends() {
			owner, ok := newTargets[dep]
			if !ok {
				continue
			}
			if group != nil {
				return errors.Wrapf(ErrIntraGroupDependency, "%q depends on %q produced by %q", task.ID(), dep, owner)
			}

			return errors.Wrapf(ErrInvalidInput, "%q depends on its own target %q", task.ID(), dep)
		}
	}

	return nil
}

func (w *Workflow) insert(group *model.TaskGroup, tasks []*model.Task) error {
	err := w.validate(group, tasks)
	if err != nil {
		return err
	}

	for _, opt := range w.opts {
		for _, task := range tasks {
			err := opt.PrepareTask(task)
			if err != nil {
				return errors.Wrap(err, "unable to run prepare task function")
			}
		}
		if group != nil {
			err := opt.PrepareGroup(group)
			if err != nil {
				return errors.Wrap(err, "unable to run prepare group function")
			}
		}
	}

	for _, task := range tasks {
		err := w.graph.AddVertex(task)
		if err != nil {
			return errors.Wrapf(err, "unable to add task %q", task.ID())
		}
		for _, target := range task.Targets() {
			w.producers[target] = task.ID()
		}
	}

	for _, task := range tasks {
		for _, dep := range task.Depends() {
			if producer, ok := w.producers[dep]; ok {
				err := w.link(producer, task.ID())
				if err != nil {
					return err
				}
			}
		}
		for _, target := range task.Targets() {
			for _, consumer := range w.consumers[target] {
				err := w.link(task.ID(), consumer)
				if err != nil {
					return err
				}
			}
		}
	}

	for _, task := range tasks {
		for _, dep := range task.Depends() {
			w.consumers[dep] = append(w.consumers[dep], task.ID())
		}
	}

	return nil
}

func (w *Workflow) link(from, to string) error {
	err := w.graph.AddEdge(from, to)
	if errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "unable to link %q to %q", from, to)
	}

	fromTask, err := w.graph.Vertex(from)
	if err != nil {
		return errors.Wrapf(err, "unable to get task %q", from)
	}
	toTask, err := w.graph.Vertex(to)
	if err != nil {
		return errors.Wrapf(err, "unable to get task %q", to)
	}
	for _, opt := range w.opts {
		err := opt.PrepareLink(fromTask, toTask)
		if err != nil {
			return errors.Wrap(err, "unable to run prepare link function")
		}
	}

	return nil
}

func (w *Workflow) less(a, b string) bool {
	ia, _ := w.store.Index(a)
	ib, _ := w.store.Index(b)

	return ia < ib
}

// Tasks returns every task, dependencies first. Tasks that do not depend on
// each other keep the order they were added in.
func (w *Workflow) Tasks() ([]*model.Task, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ids, err := graph.StableTopologicalSort(w.graph, w.less)
	if err != nil {
		return nil, errors.Wrap(err, "unable to sort tasks")
	}

	tasks := make([]*model.Task, 0, len(ids))
	for _, id := range ids {
		task, err := w.graph.Vertex(id)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to get task %q", id)
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// Task returns the task with the given id.
func (w *Workflow) Task(id string) (*model.Task, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	task, err := w.graph.Vertex(id)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to get task %q", id)
	}

	return task, nil
}

// Groups returns the task groups in the order they were added.
func (w *Workflow) Groups() []*model.TaskGroup {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]*model.TaskGroup(nil), w.groups...)
}

// Producer returns the task declaring file as a target.
func (w *Workflow) Producer(file string) (*model.Task, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id, ok := w.producers[file]
	if !ok {
		return nil, false
	}
	task, err := w.graph.Vertex(id)
	if err != nil {
		return nil, false
	}

	return task, true
}

// Upstream returns the ids of the tasks a task directly waits for, in the
// order they were added.
func (w *Workflow) Upstream(id string) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	predecessors, err := w.graph.PredecessorMap()
	if err != nil {
		return nil, errors.Wrap(err, "unable to get predecessor map")
	}
	preds, ok := predecessors[id]
	if !ok {
		return nil, errors.Wrapf(graph.ErrVertexNotFound, "task %q", id)
	}

	out := make([]string, 0, len(preds))
	for pred := range preds {
		out = append(out, pred)
	}
	sort.Slice(out, func(i, j int) bool { return w.less(out[i], out[j]) })

	return out, nil
}

// Inputs returns the dependencies no task produces, sorted.
func (w *Workflow) Inputs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var inputs []string
	for dep := range w.consumers {
		if _, ok := w.producers[dep]; !ok {
			inputs = append(inputs, dep)
		}
	}
	sort.Strings(inputs)

	return inputs
}

// CriticalPath returns the chain of tasks with the largest summed time limit,
// and that sum in minutes.
func (w *Workflow) CriticalPath() ([]*model.Task, int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	path, err := criticalpath.Longest(w.graph, func(t *model.Task) int {
		return t.Resources().TimeMinutes
	}, w.less)
	if err != nil {
		return nil, 0, errors.Wrap(err, "unable to compute critical path")
	}

	tasks := make([]*model.Task, 0, len(path.Vertices))
	for _, id := range path.Vertices {
		task, err := w.graph.Vertex(id)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "unable to get task %q", id)
		}
		tasks = append(tasks, task)
	}

	return tasks, path.Weight, nil
}

// Edge is a producer to consumer link of the task graph.
type Edge struct {
	From string
	To   string
}

// Edges returns every link of the task graph, ordered by producer then by
// consumer insertion.
func (w *Workflow) Edges() ([]Edge, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	edges, err := w.store.ListEdges()
	if err != nil {
		return nil, errors.Wrap(err, "unable to list edges")
	}

	out := make([]Edge, len(edges))
	for i, edge := range edges {
		out[i] = Edge{From: edge.Source, To: edge.Target}
	}

	return out, nil
}

// Finish runs the finish hook of every workflow option.
func (w *Workflow) Finish() error {
	for _, opt := range w.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish workflow option")
		}
	}

	w.mu.Lock()
	count, _ := w.store.VertexCount()
	w.mu.Unlock()
	w.logger.Debug("Workflow finished.", "groups", len(w.groups), "tasks", count)

	return nil
}
