package main

import (
	"path/filepath"

	"github.com/ritzau/electre-kernel/pkg/logging"
	"github.com/ritzau/electre-kernel/pkg/output"
	"github.com/ritzau/electre-kernel/pkg/outranking"
	"github.com/ritzau/electre-kernel/pkg/xmcda"
	"github.com/spf13/cobra"
)

func newCutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cut",
		Short: "Cut a credibility matrix into crisp relations",
		Long: `Reads alternatives.xml and credibility.xml and classifies every pair as
preference, indifference, incomparability or none at the cut threshold.

With comparison_with set to boundary_profiles or central_profiles in
method_parameters.xml, alternatives are compared with the profiles listed
in categories_profiles.xml. The result is written to outranking.xml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			if err := checkOutputDir(cfg.Output); err != nil {
				return err
			}

			if err := runCut(cmd, cfg.Input, cfg.Output); err != nil {
				reportFailure(cfg.Output, err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringP("input", "i", ".", "input directory with XMCDA files")
	cmd.Flags().StringP("output", "o", ".", "output directory for outranking.xml and messages.xml")
	cmd.Flags().Float64("cut-threshold", 1.0, "minimal credibility for an outranking")
	return cmd
}

func runCut(cmd *cobra.Command, input, out string) error {
	in, err := xmcda.LoadCutInput(input)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, in.Parameters)
	if err != nil {
		return err
	}

	as, bs := in.Comparables()
	relations, err := outranking.Cut(as, bs, in.Credibility, cfg.CutThreshold)
	if err != nil {
		return err
	}
	pairs := relations.Pairs(as, bs)

	concept := ""
	if in.Profiles != nil {
		concept = xmcda.ProfilesComparisonsConcept
	}
	if err := xmcda.WriteRelations(filepath.Join(out, xmcda.OutrankingFile), pairs, concept); err != nil {
		return err
	}
	if err := xmcda.WriteMessages(filepath.Join(out, xmcda.MessagesFile), []string{"Everything OK."}, nil); err != nil {
		return err
	}

	logging.Info("relations cut", "pairs", len(pairs), "comparison_with", in.ComparisonWith)
	output.PrintCutReport(cmd.OutOrStdout(), cfg.CutThreshold, pairs)
	return nil
}
