package manifest

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-workflow/internal/ctxlog"
	"github.com/askiada/go-workflow/pkg/workflow"
	"github.com/askiada/go-workflow/pkg/workflow/model"
)

// Manifest is the static task graph handed to an execution engine.
type Manifest struct {
	ID                  string   `yaml:"id"`
	OutputDir           string   `yaml:"output_dir,omitempty"`
	Inputs              []string `yaml:"inputs"`
	CriticalPathMinutes int      `yaml:"critical_path_minutes"`
	Groups              []Group  `yaml:"groups"`
	Tasks               []Task   `yaml:"tasks"`
}

// Group summarises a task group.
type Group struct {
	Name      string          `yaml:"name"`
	Template  string          `yaml:"template"`
	Tasks     int             `yaml:"tasks"`
	Resources model.Resources `yaml:"resources"`
}

// Task is one rendered command line with its files.
type Task struct {
	ID        string          `yaml:"id"`
	Group     string          `yaml:"group,omitempty"`
	Command   string          `yaml:"command"`
	Depends   []string        `yaml:"depends"`
	Targets   []string        `yaml:"targets,omitempty"`
	Resources model.Resources `yaml:"resources,omitempty"`
	After     []string        `yaml:"after,omitempty"`
}

const maxConcurrentRenders = 8

// Build renders every task of wf in dependency order.
func Build(ctx context.Context, wf *workflow.Workflow) (*Manifest, error) {
	if wf == nil {
		return nil, workflow.ErrWorkflowMustBeSet
	}

	tasks, err := wf.Tasks()
	if err != nil {
		return nil, errors.Wrap(err, "unable to list tasks")
	}
	_, minutes, err := wf.CriticalPath()
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		ID:                  uuid.New().String(),
		OutputDir:           wf.OutputDir(),
		Inputs:              wf.Inputs(),
		CriticalPathMinutes: minutes,
		Tasks:               make([]Task, len(tasks)),
	}
	for _, group := range wf.Groups() {
		m.Groups = append(m.Groups, Group{
			Name:      group.Name(),
			Template:  group.Template().String(),
			Tasks:     group.Len(),
			Resources: group.Resources(),
		})
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRenders)
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			cmd, err := task.Command()
			if err != nil {
				return errors.Wrapf(err, "unable to render task %q", task.ID())
			}
			after, err := wf.Upstream(task.ID())
			if err != nil {
				return err
			}

			m.Tasks[i] = Task{
				ID:        task.ID(),
				Group:     task.Group(),
				Command:   cmd,
				Depends:   task.Depends(),
				Targets:   task.Targets(),
				Resources: task.Resources(),
				After:     after,
			}

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, errors.Wrap(err, "unable to build manifest")
	}

	ctxlog.FromContext(ctx).Debug("Manifest built.", "id", m.ID, "tasks", len(m.Tasks))

	return m, nil
}

// Write encodes the manifest as YAML.
func (m *Manifest) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err := enc.Encode(m)
	if err != nil {
		return errors.Wrap(err, "unable to encode manifest")
	}

	err = enc.Close()
	if err != nil {
		return errors.Wrap(err, "unable to flush manifest")
	}

	return nil
}

// WriteFile writes the manifest to fileName.
func (m *Manifest) WriteFile(fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", fileName)
	}

	err = m.Write(file)
	if err != nil {
		file.Close() //nolint:errcheck

		return err
	}

	return errors.Wrapf(file.Close(), "unable to close file %s", fileName)
}

// Read decodes a manifest written by Write.
func Read(r io.Reader) (*Manifest, error) {
	m := &Manifest{}

	err := yaml.NewDecoder(r).Decode(m)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode manifest")
	}

	return m, nil
}
