package wgs

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-workflow/internal/ctxlog"
	"github.com/askiada/go-workflow/pkg/workflow"
)

// Params selects the stages of a whole genome shotgun run.
type Params struct {
	Inputs    []string
	Threads   int
	Databases ReferenceDBs

	TaxonomicProfile  bool
	FunctionalProfile bool
	// UseTaxonomicProfiles feeds the per-sample taxonomic profiles to
	// humann2. It requires TaxonomicProfile.
	UseTaxonomicProfiles bool
}

// Outputs collects what every stage declared.
type Outputs struct {
	Filtered   []string
	Taxonomy   *TaxonomicProfiles
	Functional *FunctionalProfiles
}

// Build runs quality control, then the enabled profiling stages on the
// filtered reads.
func Build(ctx context.Context, wf workflow.Collaborator, params Params) (*Outputs, error) {
	logger := ctxlog.FromContext(ctx)

	if params.UseTaxonomicProfiles && !params.TaxonomicProfile {
		return nil, workflow.NewConstructionError(FunctionalProfileStage, "use_taxonomic_profiles",
			errors.Wrap(workflow.ErrInvalidInput, "taxonomic profiling is disabled"))
	}

	filtered, err := QualityControl(wf, params.Inputs, params.Threads, params.Databases)
	if err != nil {
		return nil, err
	}
	logger.Info("Stage declared.", "stage", QualityControlStage, "samples", len(filtered), "databases", params.Databases.Shape().String())

	out := &Outputs{Filtered: filtered}

	if params.TaxonomicProfile {
		out.Taxonomy, err = TaxonomicProfile(wf, filtered, params.Threads)
		if err != nil {
			return nil, err
		}
		logger.Info("Stage declared.", "stage", TaxonomicProfileStage, "merged", out.Taxonomy.Merged)
	}

	if params.FunctionalProfile {
		in := SampleOnly(filtered)
		if params.UseTaxonomicProfiles {
			in = WithTaxonomy(filtered, out.Taxonomy.Profiles)
		}

		out.Functional, err = FunctionalProfile(wf, in, params.Threads)
		if err != nil {
			return nil, err
		}
		logger.Info("Stage declared.", "stage", FunctionalProfileStage, "variant", in.Variant.String())
	}

	return out, nil
}
