package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/quizmin/quizmin/pkg/ilp"
)

type coverageOpts struct {
	in                 string
	configFile         string
	threshold          float64
	categoryThresholds []string
	allow              []string
	deny               []string
	cost               string
	timeout            time.Duration
}

var coverageopts = coverageOpts{}

// NewCoverageCmd is a shorthand for solve in population-coverage mode.
func NewCoverageCmd() *cobra.Command {

	coverageCmd := &cobra.Command{
		Use:   "coverage",
		Short: "computes the smallest answer set reaching a weight threshold per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(coverageopts.configFile)
			if err != nil {
				return err
			}
			opts := buildOpts(cfg)
			opts.Mode = ilp.PopulationCoverage
			if cmd.Flags().Changed("threshold") {
				opts.Threshold = coverageopts.threshold
			}
			if cmd.Flags().Changed("cost") {
				opts.Cost = ilp.CostFunc(coverageopts.cost)
			}
			if len(coverageopts.allow) > 0 {
				opts.AllowRegex = coverageopts.allow
			}
			if len(coverageopts.deny) > 0 {
				opts.DenyRegex = coverageopts.deny
			}
			if thresholds, err := parseCategoryThresholds(coverageopts.categoryThresholds); err != nil {
				return err
			} else if thresholds != nil {
				opts.CategoryThresholds = thresholds
			}

			solution, err := runPipeline(pipelineOpts{
				input:   coverageopts.in,
				layout:  cfg.CSV,
				build:   opts,
				timeout: coverageopts.timeout,
			})
			if err != nil {
				return err
			}
			printSolution(solution)
			return nil
		},
	}

	coverageCmd.PersistentFlags().StringVarP(&coverageopts.in, "input", "i", "answers.csv", "answer-space CSV file")
	coverageCmd.PersistentFlags().StringVarP(&coverageopts.configFile, "config", "c", "", "config file (defaults to quizmin.yaml, then the xdg config home)")
	coverageCmd.PersistentFlags().Float64VarP(&coverageopts.threshold, "threshold", "t", 0, "global coverage fraction in (0,1]")
	coverageCmd.PersistentFlags().StringArrayVar(&coverageopts.categoryThresholds, "category-threshold", nil, "per-category threshold override, e.g. country=0.8")
	coverageCmd.PersistentFlags().StringArrayVar(&coverageopts.allow, "allow", nil, "regex limiting the selectable items")
	coverageCmd.PersistentFlags().StringArrayVar(&coverageopts.deny, "deny", nil, "regex removing items from the selectable set")
	coverageCmd.PersistentFlags().StringVar(&coverageopts.cost, "cost", string(ilp.CostUniform), "objective cost per item (uniform or length)")
	coverageCmd.PersistentFlags().DurationVar(&coverageopts.timeout, "timeout", 0, "abort the solver call after this duration (0 disables)")
	return coverageCmd
}
