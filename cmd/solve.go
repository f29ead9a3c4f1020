package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/quizmin/quizmin/pkg/ilp"
)

type solveOpts struct {
	in                 string
	configFile         string
	mode               string
	threshold          float64
	categoryThresholds []string
	allow              []string
	deny               []string
	cost               string
	prefixClosure      bool
	timeout            time.Duration
}

var solveopts = solveOpts{}

func NewSolveCmd() *cobra.Command {

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "computes the smallest answer set for the configured coverage mode",
		Long:  `computes the minimum-cost set of answers which either covers every observed category value (exact-cover) or reaches the configured weight threshold in every category (population-coverage)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(solveopts.configFile)
			if err != nil {
				return err
			}
			opts := buildOpts(cfg)
			if cmd.Flags().Changed("mode") {
				opts.Mode = ilp.Mode(solveopts.mode)
			}
			if cmd.Flags().Changed("threshold") {
				opts.Threshold = solveopts.threshold
			}
			if cmd.Flags().Changed("cost") {
				opts.Cost = ilp.CostFunc(solveopts.cost)
			}
			if cmd.Flags().Changed("prefix-closure") {
				opts.PrefixClosure = solveopts.prefixClosure
			}
			if len(solveopts.allow) > 0 {
				opts.AllowRegex = solveopts.allow
			}
			if len(solveopts.deny) > 0 {
				opts.DenyRegex = solveopts.deny
			}
			if thresholds, err := parseCategoryThresholds(solveopts.categoryThresholds); err != nil {
				return err
			} else if thresholds != nil {
				opts.CategoryThresholds = thresholds
			}

			solution, err := runPipeline(pipelineOpts{
				input:   solveopts.in,
				layout:  cfg.CSV,
				build:   opts,
				timeout: solveopts.timeout,
			})
			if err != nil {
				return err
			}
			printSolution(solution)
			return nil
		},
	}

	solveCmd.PersistentFlags().StringVarP(&solveopts.in, "input", "i", "answers.csv", "answer-space CSV file")
	solveCmd.PersistentFlags().StringVarP(&solveopts.configFile, "config", "c", "", "config file (defaults to quizmin.yaml, then the xdg config home)")
	solveCmd.PersistentFlags().StringVarP(&solveopts.mode, "mode", "m", string(ilp.ExactCover), "coverage mode (exact-cover or population-coverage)")
	solveCmd.PersistentFlags().Float64VarP(&solveopts.threshold, "threshold", "t", 0, "global coverage fraction in (0,1] for population-coverage")
	solveCmd.PersistentFlags().StringArrayVar(&solveopts.categoryThresholds, "category-threshold", nil, "per-category threshold override, e.g. country=0.8")
	solveCmd.PersistentFlags().StringArrayVar(&solveopts.allow, "allow", nil, "regex limiting the selectable items")
	solveCmd.PersistentFlags().StringArrayVar(&solveopts.deny, "deny", nil, "regex removing items from the selectable set")
	solveCmd.PersistentFlags().StringVar(&solveopts.cost, "cost", string(ilp.CostUniform), "objective cost per item (uniform or length)")
	solveCmd.PersistentFlags().BoolVar(&solveopts.prefixClosure, "prefix-closure", false, "selecting an item also requires all items whose identifier is a strict prefix of it")
	solveCmd.PersistentFlags().DurationVar(&solveopts.timeout, "timeout", 0, "abort the solver call after this duration (0 disables)")
	return solveCmd
}
