package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizmin/quizmin/pkg/table"
)

type inspectOpts struct {
	in         string
	configFile string
}

var inspectopts = inspectOpts{}

func NewInspectCmd() *cobra.Command {

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "prints the parsed answer space without solving",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(inspectopts.configFile)
			if err != nil {
				return err
			}
			rows, err := table.CSVLoader{File: inspectopts.in, Layout: cfg.CSV}.Load()
			if err != nil {
				return err
			}
			t, err := table.Build(rows)
			if err != nil {
				return err
			}
			fmt.Printf("%d items, %d categories\n", len(t.Items), len(t.Categories))
			for _, category := range t.Categories {
				fmt.Printf("%s: %d values, total weight %v\n", category.Name, len(category.Values), category.TotalWeight)
				for _, value := range category.Values {
					fmt.Printf("  %s: %d items, weight %v\n", value.Value, len(value.Items), value.Weight)
				}
			}
			return nil
		},
	}

	inspectCmd.PersistentFlags().StringVarP(&inspectopts.in, "input", "i", "answers.csv", "answer-space CSV file")
	inspectCmd.PersistentFlags().StringVarP(&inspectopts.configFile, "config", "c", "", "config file (defaults to quizmin.yaml, then the xdg config home)")
	return inspectCmd
}
