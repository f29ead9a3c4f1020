package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quizmin/quizmin/pkg/api"
	"github.com/quizmin/quizmin/pkg/api/quizmin"
	"github.com/quizmin/quizmin/pkg/ilp"
	"github.com/quizmin/quizmin/pkg/solver"
	"github.com/quizmin/quizmin/pkg/table"
)

type pipelineOpts struct {
	input   string
	layout  quizmin.CSVLayout
	build   ilp.BuildOpts
	timeout time.Duration
}

func runPipeline(opts pipelineOpts) (*api.Solution, error) {
	logrus.Info("Loading the answer space.")
	rows, err := table.CSVLoader{File: opts.input, Layout: opts.layout}.Load()
	if err != nil {
		return nil, err
	}
	t, err := table.Build(rows)
	if err != nil {
		return nil, err
	}

	logrus.Info("Building the optimization problem.")
	problem, err := ilp.NewBuilder(opts.build).Build(t)
	if err != nil {
		return nil, err
	}

	// the timeout guards only the solver call, everything else is cheap
	ctx := context.Background()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}
	logrus.Info("Solving.")
	assignment, err := solver.NewMaxSAT().Solve(ctx, problem)
	if err != nil {
		return nil, err
	}

	logrus.Info("Verifying the selection.")
	return ilp.Extract(problem, assignment, t)
}

func printSolution(solution *api.Solution) {
	fmt.Printf("Selected %d items:\n", len(solution.Selected))
	for _, name := range solution.Selected {
		fmt.Println("  " + name)
	}
	fmt.Println("Coverage:")
	for _, c := range solution.Coverage {
		fmt.Printf("  %s: %.1f%% (%v of %v)\n", c.Category, c.Fraction*100, c.CoveredWeight, c.TotalWeight)
	}
}
