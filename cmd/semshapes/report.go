package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/semshapes/report"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Inspect a serialized validation report",
		Long: `Report parses a Turtle validation report and prints a summary of
its findings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.setupLogging()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read report: %w", err)
			}

			rep, err := report.Parse(string(data))
			if err != nil {
				return fmt.Errorf("parse report: %w", err)
			}

			printReport(rep)
			return nil
		},
	}
	return cmd
}

func printReport(rep *report.Report) {
	if rep.Conforms {
		fmt.Println("conforms: true")
	} else {
		fmt.Println("conforms: false")
	}
	fmt.Printf("violations: %d, warnings: %d, info: %d\n",
		len(rep.Violations), len(rep.Warnings), len(rep.Info))

	printResults("violation", rep.Violations)
	printResults("warning", rep.Warnings)
	printResults("info", rep.Info)
}

func printResults(label string, results []report.Result) {
	for _, res := range results {
		fmt.Printf("\n[%s] %s\n", label, res.FocusNode.Value)
		if res.Message != "" {
			fmt.Printf("  message: %s\n", res.Message)
		}
		if res.Path != nil {
			fmt.Printf("  path: %s\n", res.Path.Value)
		}
		if res.Value != nil {
			fmt.Printf("  value: %s\n", res.Value.Value)
		}
		if res.SourceShape != nil {
			fmt.Printf("  shape: %s\n", res.SourceShape.Value)
		}
		if res.ConstraintComponent != nil {
			fmt.Printf("  constraint: %s\n", res.ConstraintComponent.Value)
		}
	}
}
