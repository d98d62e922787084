package workflow

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// NamingOption sets one naming parameter of the output namer.
type NamingOption func(n *naming)

type naming struct {
	tag       string
	subfolder string
	extension string
}

// Tag appends ".<tag>" to the base name to distinguish the kind of output.
func Tag(tag string) NamingOption {
	return func(n *naming) {
		n.tag = tag
	}
}

// Subfolder places the outputs under "<root>/<subfolder>".
func Subfolder(subfolder string) NamingOption {
	return func(n *naming) {
		n.subfolder = subfolder
	}
}

// Extension appends ".<extension>" after the tag. A leading dot is ignored.
func Extension(extension string) NamingOption {
	return func(n *naming) {
		n.extension = extension
	}
}

func (n *naming) validate() error {
	if strings.ContainsAny(n.tag, `/\`) || n.tag == "." || n.tag == ".." {
		return errors.Wrapf(ErrInvalidInput, "tag %q must be a plain name", n.tag)
	}
	if n.subfolder != "" && !filepath.IsLocal(n.subfolder) {
		return errors.Wrapf(ErrInvalidInput, "subfolder %q must be a relative path inside the output directory", n.subfolder)
	}
	if strings.ContainsAny(n.extension, `/\`) {
		return errors.Wrapf(ErrInvalidInput, "extension %q must be a plain suffix", n.extension)
	}

	return nil
}

func (n *naming) file(base string) string {
	var b strings.Builder
	b.WriteString(base)
	if n.tag != "" {
		b.WriteString(".")
		b.WriteString(n.tag)
	}
	if n.extension != "" {
		b.WriteString(".")
		b.WriteString(n.extension)
	}

	return b.String()
}

// NameOutputs derives one output path per input: the base name of the input,
// followed by the optional tag and extension, placed in root and the optional
// subfolder. An empty root places each output next to its input.
//
// The same inputs and options always yield the same outputs, and two distinct
// inputs of one batch never share an output.
func NameOutputs(root string, names []string, opts ...NamingOption) ([]string, error) {
	if len(names) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "no input to name outputs from")
	}

	n := &naming{}
	for _, opt := range opts {
		opt(n)
	}
	if n.extension != "" {
		n.extension = strings.TrimPrefix(n.extension, ".")
		if n.extension == "" {
			return nil, errors.Wrap(ErrInvalidInput, "extension must not be a lone dot")
		}
	}
	err := n.validate()
	if err != nil {
		return nil, err
	}

	outputs := make([]string, len(names))
	seen := make(map[string]string, len(names))
	for i, name := range names {
		if name == "" {
			return nil, errors.Wrapf(ErrInvalidInput, "input %d is empty", i)
		}
		base := filepath.Base(name)
		if base == "." || base == ".." || base == string(filepath.Separator) {
			return nil, errors.Wrapf(ErrInvalidInput, "input %q has no base name", name)
		}

		dir := root
		if dir == "" {
			dir = filepath.Dir(name)
		}
		out := filepath.Join(dir, n.subfolder, n.file(base))

		if prev, ok := seen[out]; ok {
			return nil, errors.Wrapf(ErrInvalidInput, "inputs %q and %q both map to %q", prev, name, out)
		}
		seen[out] = name
		outputs[i] = out
	}

	return outputs, nil
}

// NameOutputFiles names outputs relative to the workflow output directory.
func (w *Workflow) NameOutputFiles(names []string, opts ...NamingOption) ([]string, error) {
	return NameOutputs(w.outputDir, names, opts...)
}

// NameOutputFile is NameOutputFiles for a single name.
func (w *Workflow) NameOutputFile(name string, opts ...NamingOption) (string, error) {
	outputs, err := w.NameOutputFiles([]string{name}, opts...)
	if err != nil {
		return "", err
	}

	return outputs[0], nil
}
