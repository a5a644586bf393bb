package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/boardcarbon/internal/bom"
	"github.com/rshade/boardcarbon/internal/emissions"
	"github.com/rshade/boardcarbon/internal/report"
)

// estimateParams holds the estimate command flags.
type estimateParams struct {
	bomPath  string
	models   string
	format   string
	location string
}

func newEstimateCmd() *cobra.Command {
	var params estimateParams

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate embodied carbon for a bill of materials",
		Example: `  # Estimate with the embedded factor tables
  boardcarbon estimate --bom board.yaml

  # Override factor tables and emit JSON
  boardcarbon estimate --bom board.yaml --models ./factors --format json

  # Assume manufacturing in china for lines without a location
  boardcarbon estimate --bom board.yaml --location china`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.bomPath, "bom", "", "path to the bill-of-materials file (required)")
	cmd.Flags().StringVar(&params.models, "models", "", "directory of model file overrides")
	cmd.Flags().StringVar(&params.format, "format", "table", "output format (table, json)")
	cmd.Flags().StringVar(&params.location, "location", "",
		"default manufacturing location for lines without one")
	_ = cmd.MarkFlagRequired("bom")

	return cmd
}

func runEstimate(cmd *cobra.Command, params estimateParams) error {
	logger := newLogger(cmd)

	if params.format != "table" && params.format != "json" {
		return fmt.Errorf("unknown format %q (want table or json)", params.format)
	}

	estimator, err := bom.NewEstimator(params.models, logger)
	if err != nil {
		return fmt.Errorf("assembling models: %w", err)
	}
	if params.location != "" {
		if _, ok := emissions.ParseEnergyLocation(params.location); !ok {
			logger.Warn().
				Str("location", params.location).
				Msg("unknown location, affected lines will use the world average")
		}
		estimator.SetDefaultLocation(emissions.EnergyLocation(params.location))
	}

	b, err := bom.Load(params.bomPath)
	if err != nil {
		return err
	}

	summary, err := estimator.Estimate(b)
	if err != nil {
		return err
	}

	if params.format == "json" {
		return report.WriteJSON(cmd.OutOrStdout(), summary)
	}
	return report.WriteText(cmd.OutOrStdout(), summary)
}
