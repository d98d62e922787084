package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/askiada/go-workflow/internal/ctxlog"
)

var version = "dev"

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var logLevel, logFormat string

	root := &cobra.Command{
		Use:          "wgsplan",
		Short:        "Plan whole genome shotgun workflows",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := newLogger(logLevel, logFormat, stderr)
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(newPlanCmd(), newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show wgsplan version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "wgsplan "+version)
		},
	}
}
