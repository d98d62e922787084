package config

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-workflow/pkg/wgs"
)

var ErrInvalidDefinition = errors.New("invalid pipeline definition")

// Definition is a decoded pipeline definition file.
type Definition struct {
	OutputDir string   `hcl:"output_dir"`
	Threads   int      `hcl:"threads,optional"`
	Inputs    []string `hcl:"inputs"`

	QualityControl    *QualityControl    `hcl:"quality_control,block"`
	TaxonomicProfile  *TaxonomicProfile  `hcl:"taxonomic_profile,block"`
	FunctionalProfile *FunctionalProfile `hcl:"functional_profile,block"`
}

type QualityControl struct {
	Databases []string `hcl:"databases,optional"`
}

// TaxonomicProfile enables metaphlan2 when present.
type TaxonomicProfile struct{}

// FunctionalProfile enables humann2 when present.
type FunctionalProfile struct {
	UseTaxonomicProfiles bool `hcl:"use_taxonomic_profiles,optional"`
}

const defaultThreads = 1

func (d *Definition) validate() error {
	if d.OutputDir == "" {
		return errors.Wrap(ErrInvalidDefinition, "output_dir must be set")
	}
	if len(d.Inputs) == 0 {
		return errors.Wrap(ErrInvalidDefinition, "inputs must not be empty")
	}
	if d.Threads < 0 {
		return errors.Wrapf(ErrInvalidDefinition, "threads must be positive, got %d", d.Threads)
	}
	if d.Threads == 0 {
		d.Threads = defaultThreads
	}

	return nil
}

// Params turns the definition into stage parameters. Quality control always
// runs; the profiling stages run when their block is present.
func (d *Definition) Params() wgs.Params {
	params := wgs.Params{
		Inputs:            append([]string(nil), d.Inputs...),
		Threads:           d.Threads,
		TaxonomicProfile:  d.TaxonomicProfile != nil,
		FunctionalProfile: d.FunctionalProfile != nil,
	}
	if d.QualityControl != nil {
		params.Databases = wgs.Databases(d.QualityControl.Databases...)
	}
	if d.FunctionalProfile != nil {
		params.UseTaxonomicProfiles = d.FunctionalProfile.UseTaxonomicProfiles
	}

	return params
}
