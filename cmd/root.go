package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizmin",
	Short: "quizmin computes the smallest set of quiz answers covering all scoring dimensions",
	Long:  `The tool reads a quiz answer-space CSV, builds a minimum set cover problem over its categorical attributes and solves it, either for full coverage of every observed value or for a population-weighted coverage threshold per category`,
	Run: func(cmd *cobra.Command, args []string) {
	},
}

func Execute() {
	rootCmd.AddCommand(NewSolveCmd())
	rootCmd.AddCommand(NewCoverageCmd())
	rootCmd.AddCommand(NewInspectCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
