package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-workflow/internal/config"
	"github.com/askiada/go-workflow/internal/ctxlog"
	"github.com/askiada/go-workflow/pkg/wgs"
	"github.com/askiada/go-workflow/pkg/workflow"
	"github.com/askiada/go-workflow/pkg/workflow/drawer"
	"github.com/askiada/go-workflow/pkg/workflow/manifest"
	"github.com/askiada/go-workflow/pkg/workflow/measure"
	"github.com/askiada/go-workflow/pkg/workflow/model"
)

type planFlags struct {
	file        string
	manifest    string
	dot         string
	checkInputs bool
}

func newPlanCmd() *cobra.Command {
	flags := &planFlags{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build the task graph of a pipeline definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.file, "file", "f", "pipeline.hcl", "pipeline definition")
	cmd.Flags().StringVar(&flags.manifest, "manifest", "", "write the manifest to this file instead of stdout")
	cmd.Flags().StringVar(&flags.dot, "dot", "", "write the task graph in DOT format to this file")
	cmd.Flags().BoolVar(&flags.checkInputs, "check-inputs", false, "fail when an input file does not exist")

	return cmd
}

func runPlan(cmd *cobra.Command, flags *planFlags) error {
	ctx := cmd.Context()
	logger := ctxlog.FromContext(ctx)

	def, err := config.NewLoader(config.EnvFromOS()).Load(ctx, flags.file)
	if err != nil {
		return err
	}

	m := measure.NewDefaultMeasure()
	opts := []model.WorkflowOption{measure.WorkflowMeasure(m)}
	if flags.dot != "" {
		opts = append(opts, drawer.WorkflowDrawer(drawer.NewFileDrawer(flags.dot), m))
	}

	wf, err := workflow.New(ctx, def.OutputDir, opts...)
	if err != nil {
		return errors.Wrap(err, "unable to create workflow")
	}

	_, err = wgs.Build(ctx, wf, def.Params())
	if err != nil {
		return err
	}

	if flags.checkInputs {
		err = wf.CheckInputs(ctx)
		if err != nil {
			return err
		}
	}

	err = wf.Finish()
	if err != nil {
		return err
	}

	mf, err := manifest.Build(ctx, wf)
	if err != nil {
		return err
	}
	if flags.manifest != "" {
		err = mf.WriteFile(flags.manifest)
	} else {
		err = mf.Write(cmd.OutOrStdout())
	}
	if err != nil {
		return err
	}

	total := m.Total()
	logger.Info("Workflow planned.",
		"id", mf.ID,
		"tasks", total.Tasks,
		"cpu_minutes", total.CPUMinutes,
		"peak_memory_mb", total.PeakMemoryMB,
		"critical_path_minutes", mf.CriticalPathMinutes,
	)

	return nil
}
