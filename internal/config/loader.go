package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/askiada/go-workflow/internal/ctxlog"
)

// Loader decodes HCL pipeline definitions. Expressions can read environment
// variables through the env object and list files with glob.
type Loader struct {
	env map[string]string
}

// NewLoader creates a loader exposing env to expressions.
func NewLoader(env map[string]string) *Loader {
	return &Loader{env: env}
}

// EnvFromOS returns the environment of the process as a map.
func EnvFromOS() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k != "" {
			env[k] = v
		}
	}

	return env
}

// Load reads and decodes the definition at path.
func (l *Loader) Load(ctx context.Context, path string) (*Definition, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	return l.Parse(ctx, src, path)
}

// Parse decodes a definition from src. filename is only used in diagnostics.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (*Definition, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "unable to parse %s", filename)
	}

	def := &Definition{}
	diags = gohcl.DecodeBody(file.Body, l.evalContext(), def)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "unable to decode %s", filename)
	}

	err := def.validate()
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filename)
	}

	logger.Debug("Pipeline definition loaded.",
		"file", filename,
		"inputs", len(def.Inputs),
		"threads", def.Threads,
		"taxonomic_profile", def.TaxonomicProfile != nil,
		"functional_profile", def.FunctionalProfile != nil,
	)

	return def, nil
}

func (l *Loader) evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value, len(l.env))
	for k, v := range l.env {
		env[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"glob":   globFunc,
			"concat": stdlib.ConcatFunc,
			"format": stdlib.FormatFunc,
			"lower":  stdlib.LowerFunc,
			"upper":  stdlib.UpperFunc,
		},
	}
}

// globFunc lists the files matching a pattern, sorted.
var globFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "pattern", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.List(cty.String)),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		matches, err := filepath.Glob(args[0].AsString())
		if err != nil {
			return cty.NilVal, errors.Wrapf(err, "invalid pattern %q", args[0].AsString())
		}
		if len(matches) == 0 {
			return cty.ListValEmpty(cty.String), nil
		}
		sort.Strings(matches)

		values := make([]cty.Value, len(matches))
		for i, match := range matches {
			values[i] = cty.StringVal(match)
		}

		return cty.ListVal(values), nil
	},
})
