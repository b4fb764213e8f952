package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/qichaozhao/ab-testing/adapters/excel"
	"github.com/qichaozhao/ab-testing/adapters/rng"
	"github.com/qichaozhao/ab-testing/adapters/stats/ab"
	"github.com/qichaozhao/ab-testing/app"
	"github.com/qichaozhao/ab-testing/domain/experiment"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ab-testing",
		Short: "A/B test sizing and evaluation toolkit",
	}

	rootCmd.AddCommand(
		newSizeCmd(),
		newDrawCmd(),
		newEvaluateCmd(),
		newRunCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSizeCmd() *cobra.Command {
	var params experiment.TestParams
	var varType string

	cmd := &cobra.Command{
		Use:   "size",
		Short: "Compute the minimum per-group sample size for a test design",
		Long: `Compute the minimum sample size needed to detect the minimum
detectable effect at the requested significance and power.

Example: ab-testing size --sig 0.01 --power 0.8 --mde 0.01 --baseline 0.04 --tails 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Variance = experiment.VarianceType(varType)

			size, err := ab.NewSampleSizeEstimator().Estimate(params)
			if err != nil {
				return err
			}

			fmt.Printf("%.2f samples required\n", size)
			return nil
		},
	}

	cmd.Flags().Float64Var(&params.Significance, "sig", 0.05, "Significance level (alpha)")
	cmd.Flags().Float64Var(&params.Power, "power", 0.8, "Power target (1-beta)")
	cmd.Flags().Float64Var(&params.MDE, "mde", 0.01, "Minimum detectable effect")
	cmd.Flags().Float64Var(&params.BaselineRate, "baseline", 0.04, "Baseline conversion rate (binomial)")
	cmd.Flags().Float64Var(&params.Sigma, "sigma", 0, "Metric std dev (continuous)")
	cmd.Flags().StringVar(&varType, "variance", "binomial", "Variance type: binomial or continuous")
	cmd.Flags().IntVar(&params.Tails, "tails", 1, "Tail count: 1 or 2")

	return cmd
}

func newDrawCmd() *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "draw [p] [n]",
		Short: "Draw n Bernoulli outcomes with success probability p",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid p: %w", err)
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid n: %w", err)
			}

			source, err := rng.NewStreamAdapter().SeededStream(cmd.Context(), "draw", seed)
			if err != nil {
				return err
			}

			outcomes, err := ab.NewSampleDrawer(source).Draw(p, n)
			if err != nil {
				return err
			}

			ctr := 0.0
			if len(outcomes) > 0 {
				ctr, _ = outcomes.CTR()
			}
			fmt.Printf("drew %d outcomes, CTR %.2f%%\n", len(outcomes), ctr*100)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic draws")

	return cmd
}

func newEvaluateCmd() *cobra.Command {
	var observedCol, expectedCol string

	cmd := &cobra.Command{
		Use:   "evaluate [file]",
		Short: "Evaluate recorded outcome columns from an Excel or CSV export",
		Long: `Evaluate a recorded experiment: computes group CTRs, the chi-square
statistic with its p-value, and the achieved power.

Example: ab-testing evaluate results.xlsx --observed treatment --expected control`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := app.NewExperimentService(rng.NewStreamAdapter())
			report, err := service.EvaluateRecorded(excel.NewOutcomeReader(args[0]), observedCol, expectedCol)
			if err != nil {
				return err
			}

			printReport(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&observedCol, "observed", "treatment", "Observed (treatment) outcome column")
	cmd.Flags().StringVar(&expectedCol, "expected", "control", "Expected (control) outcome column")

	return cmd
}

func newRunCmd() *cobra.Command {
	var params experiment.TestParams
	var varType string
	var treatmentRate float64
	var seed int64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full simulated workflow: size, draw both groups, evaluate",
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Variance = experiment.VarianceType(varType)

			service := app.NewExperimentService(rng.NewStreamAdapter())
			report, err := service.Run(cmd.Context(), app.ExperimentRequest{
				Params:        params,
				TreatmentRate: treatmentRate,
				Seed:          seed,
			})
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Printf("%.2f samples required\n", report.RequiredSize)
			fmt.Printf("drew %d samples per group\n", report.DrawnPerGroup)
			printReport(report)
			return nil
		},
	}

	cmd.Flags().Float64Var(&params.Significance, "sig", 0.05, "Significance level (alpha)")
	cmd.Flags().Float64Var(&params.Power, "power", 0.8, "Power target (1-beta)")
	cmd.Flags().Float64Var(&params.MDE, "mde", 0.01, "Minimum detectable effect")
	cmd.Flags().Float64Var(&params.BaselineRate, "baseline", 0.04, "Baseline conversion rate")
	cmd.Flags().Float64Var(&params.Sigma, "sigma", 0, "Metric std dev (continuous)")
	cmd.Flags().StringVar(&varType, "variance", "binomial", "Variance type: binomial or continuous")
	cmd.Flags().IntVar(&params.Tails, "tails", 1, "Tail count: 1 or 2")
	cmd.Flags().Float64Var(&treatmentRate, "treatment", 0.05, "True treatment conversion rate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic draws")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full report as JSON")

	return cmd
}

func printReport(report *app.ExperimentReport) {
	fmt.Printf("control CTR: %.2f%%\n", report.ControlCTR*100)
	fmt.Printf("treatment CTR: %.2f%%\n", report.TreatmentCTR*100)
	fmt.Printf("chi-square statistic: %.4f, p-value: %.4g\n", report.Statistic, report.PValue)
	fmt.Printf("achieved power: %.4f\n", report.AchievedPower)
}
