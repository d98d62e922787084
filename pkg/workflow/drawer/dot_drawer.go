package drawer

import (
	"fmt"
	"io"
	"os"
	"slices"
	"text/template"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-workflow/internal/store"
	"github.com/askiada/go-workflow/pkg/workflow/measure"
)

// DOTDrawer renders the task graph in Graphviz DOT format.
type DOTDrawer struct {
	graph  graph.Graph[string, string]
	store  store.CustomStore[string, string]
	groups []string
	output func() (io.WriteCloser, error)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// NewDOTDrawer creates a drawer writing to w.
func NewDOTDrawer(w io.Writer) *DOTDrawer {
	return newDOTDrawer(func() (io.WriteCloser, error) {
		return nopCloser{w}, nil
	})
}

// NewFileDrawer creates a drawer writing to fileName when the workflow is
// finished.
func NewFileDrawer(fileName string) *DOTDrawer {
	return newDOTDrawer(func() (io.WriteCloser, error) {
		file, err := os.Create(fileName)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to create file %s", fileName)
		}

		return file, nil
	})
}

func newDOTDrawer(output func() (io.WriteCloser, error)) *DOTDrawer {
	st := store.NewMemoryStore[string, string]()

	return &DOTDrawer{
		graph:  graph.NewWithStore(graph.StringHash, st, graph.Directed()),
		store:  st,
		output: output,
	}
}

// AddTask adds a task to the workflow graph.
func (d *DOTDrawer) AddTask(id, group, label string) error {
	attrs := []func(*graph.VertexProperties){graph.VertexAttribute("group", group)}
	if label != "" {
		attrs = append(attrs, graph.VertexAttribute("xlabel", label))
	}

	err := d.graph.AddVertex(id, attrs...)
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", id)
	}

	if !slices.Contains(d.groups, group) {
		d.groups = append(d.groups, group)
	}

	return nil
}

// AddLink adds a link between a producer and a consumer.
func (d *DOTDrawer) AddLink(from, to string) error {
	err := d.graph.AddEdge(from, to)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", from, to)
	}

	return nil
}

const maxRGB = 240

// gradient maps fraction in [0, 1] from blue to red.
func gradient(fraction float64) (string, error) {
	red := maxRGB * fraction
	blue := maxRGB - red

	c, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}

	return c.ToHEX().String(), nil
}

// palette spreads one colour per group.
func (d *DOTDrawer) palette() (map[string]string, error) {
	out := make(map[string]string, len(d.groups))
	for i, group := range d.groups {
		fraction := 0.0
		if len(d.groups) > 1 {
			fraction = float64(i) / float64(len(d.groups)-1)
		}
		c, err := gradient(fraction)
		if err != nil {
			return nil, err
		}
		out[group] = c
	}

	return out, nil
}

// AddMeasure colours groups from blue (cheapest) to red (most CPU-minutes)
// and appends the group budget to the label of its tasks.
func (d *DOTDrawer) AddMeasure(m measure.Measure) error {
	minValue, maxValue := -1, 0
	for _, group := range m.Groups() {
		b, _ := m.Budget(group)
		if minValue < 0 || b.CPUMinutes < minValue {
			minValue = b.CPUMinutes
		}
		maxValue = max(maxValue, b.CPUMinutes)
	}

	ids, err := d.store.ListVertices()
	if err != nil {
		return errors.Wrap(err, "unable to list vertices")
	}
	for _, id := range ids {
		_, properties, err := d.graph.VertexWithProperties(id)
		if err != nil {
			return errors.Wrap(err, "unable to get vertex properties")
		}

		b, ok := m.Budget(properties.Attributes["group"])
		if !ok {
			continue
		}

		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(b.CPUMinutes-minValue) / float64(maxValue-minValue)
		}
		c, err := gradient(fraction)
		if err != nil {
			return err
		}
		properties.Attributes["color"] = c

		if label := properties.Attributes["xlabel"]; label != "" {
			properties.Attributes["xlabel"] = label + ", group: " + b.String()
		} else {
			properties.Attributes["xlabel"] = "group: " + b.String()
		}
	}

	return nil
}

// Draw writes the workflow graph.
func (d *DOTDrawer) Draw() error {
	wrt, err := d.output()
	if err != nil {
		return err
	}

	err = d.dot(wrt)
	if err != nil {
		wrt.Close() //nolint:errcheck

		return errors.Wrap(err, "unable to write dot graph")
	}

	err = wrt.Close()
	if err != nil {
		return errors.Wrap(err, "unable to close dot output")
	}

	return nil
}

//nolint:lll //this is a template
const dotTemplate = `strict digraph {
{{- range $k, $v := .Attributes}}
	{{$k}}="{{$v}}";
{{- end}}
{{- range .Statements}}
	{{if .Target}}"{{.Source}}" -> "{{.Target}}";{{else}}"{{.Source}}" [ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}}{{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}}];{{end}}
{{- end}}
}
`

type description struct {
	Attributes map[string]string
	Statements []statement
}

type statement struct {
	Source           string
	Target           string
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
}

func (d *DOTDrawer) describe() (description, error) {
	desc := description{
		Attributes: map[string]string{"rankdir": "LR"},
	}

	colours, err := d.palette()
	if err != nil {
		return desc, err
	}

	ids, err := d.store.ListVertices()
	if err != nil {
		return desc, errors.Wrap(err, "unable to list vertices")
	}
	for _, id := range ids {
		_, properties, err := d.graph.VertexWithProperties(id)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		attrs := make(map[string]string, len(properties.Attributes))
		html := make(map[string]string)
		for k, v := range properties.Attributes {
			switch k {
			case "group":
			case "xlabel":
				html["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, id, v)
			default:
				attrs[k] = v
			}
		}
		if _, ok := attrs["color"]; !ok {
			attrs["color"] = colours[properties.Attributes["group"]]
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           id,
			SourceAttributes: attrs,
			HTMLAttributes:   html,
		})
	}

	edges, err := d.store.ListEdges()
	if err != nil {
		return desc, errors.Wrap(err, "unable to list edges")
	}
	for _, edge := range edges {
		desc.Statements = append(desc.Statements, statement{Source: edge.Source, Target: edge.Target})
	}

	return desc, nil
}

func (d *DOTDrawer) dot(wrt io.Writer) error {
	desc, err := d.describe()
	if err != nil {
		return errors.Wrap(err, "unable to generate DOT description")
	}

	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
