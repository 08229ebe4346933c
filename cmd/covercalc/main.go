package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/lifegap/coverage-calculator/internal/calculation"
	"github.com/lifegap/coverage-calculator/internal/config"
	"github.com/lifegap/coverage-calculator/internal/domain"
	"github.com/lifegap/coverage-calculator/internal/logging"
	"github.com/lifegap/coverage-calculator/internal/output"
)

var (
	flagInput  string
	flagFormat string
	flagOutput string
	flagDebug  bool

	flagFace    float64
	flagPremium float64
	flagRate    float64
	flagHorizon int
	flagAge     int

	flagExamplePath string
)

func main() {
	// A .env file may supply defaults (COVERCALC_FORMAT, COVERCALC_DEBUG);
	// it is optional.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		exitCode := 1
		var ve *calculation.ValidationError
		if errors.As(err, &ve) {
			exitCode = 2
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "covercalc",
		Short: "Life-insurance coverage gap and cash-value calculator",
		Long: `covercalc computes a coverage gap from an assessment file, scores an
existing portfolio, recommends Term vs. IUL coverage, and illustrates
IUL cash-value growth year by year.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", envBool("COVERCALC_DEBUG"), "enable debug logging")

	root.AddCommand(newCalculateCmd())
	root.AddCommand(newProjectCmd())
	root.AddCommand(newExampleCmd())
	return root
}

func newCalculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Run a full coverage evaluation from an assessment file",
		RunE:  runCalculate,
	}
	cmd.Flags().StringVarP(&flagInput, "input", "i", "", "assessment YAML file (required)")
	cmd.Flags().StringVarP(&flagFormat, "format", "f", envOr("COVERCALC_FORMAT", "console"), "output format: console, json, csv, detailed-csv")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write output to file instead of stdout")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runCalculate(cmd *cobra.Command, args []string) error {
	file, err := config.NewInputParser().LoadFromFile(flagInput)
	if err != nil {
		return err
	}

	cfg := calculation.DefaultPolicyConfig()
	if file.Projection != nil {
		if file.Projection.CreditingRate != nil {
			cfg.DefaultCreditingRate = *file.Projection.CreditingRate
		}
		if file.Projection.HorizonYears != nil {
			cfg.IULIllustrationYears = *file.Projection.HorizonYears
		}
	}

	engine, err := calculation.NewEngineWithConfig(cfg)
	if err != nil {
		return err
	}
	attachLogger(engine)

	result, err := engine.Evaluate(&file.Assessment, file.Portfolio)
	if err != nil {
		return err
	}

	return writeResult(result)
}

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run a standalone IUL cash-value projection",
		RunE:  runProject,
	}
	cmd.Flags().Float64Var(&flagFace, "face", 500000, "policy face amount")
	cmd.Flags().Float64Var(&flagPremium, "premium", 6000, "annual premium")
	cmd.Flags().Float64Var(&flagRate, "rate", 0.065, "assumed crediting rate (0.06-0.08)")
	cmd.Flags().IntVar(&flagHorizon, "horizon", 30, "projection horizon in years (20-40)")
	cmd.Flags().IntVar(&flagAge, "age", 40, "current age")
	cmd.Flags().StringVarP(&flagFormat, "format", "f", envOr("COVERCALC_FORMAT", "console"), "output format: console, json, detailed-csv")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write output to file instead of stdout")
	return cmd
}

func runProject(cmd *cobra.Command, args []string) error {
	projector := calculation.NewCashValueProjector(calculation.DefaultPolicyConfig())

	projection, err := projector.Project(calculation.PolicyParameters{
		FaceAmount:    decimal.NewFromFloat(flagFace),
		AnnualPremium: decimal.NewFromFloat(flagPremium),
		CreditingRate: decimal.NewFromFloat(flagRate),
		HorizonYears:  flagHorizon,
		CurrentAge:    flagAge,
	})
	if err != nil {
		return err
	}

	// A standalone projection renders through the same formatters, with
	// just the projection's face amount echoed as the recommendation.
	return writeResult(&domain.EvaluationResult{
		Recommendation: domain.ProductRecommendation{
			Track:                  domain.TrackIUL,
			FaceAmount:             projection.FaceAmount,
			DurationYears:          projection.HorizonYears,
			EstimatedAnnualPremium: projection.AnnualPremium,
			RationaleTags:          []string{"standalone-projection"},
		},
		Projection: projection,
	})
}

func newExampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write a starter assessment file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.NewInputParser().WriteExampleFile(flagExamplePath); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", flagExamplePath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&flagExamplePath, "output", "o", "assessment_example.yaml", "path for the example file")
	return cmd
}

func attachLogger(engine *calculation.Engine) {
	if !flagDebug {
		return
	}
	logger, err := logging.New(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to set up logger: %v\n", err)
		return
	}
	engine.SetLogger(logger)
}

func writeResult(result *domain.EvaluationResult) error {
	formatter := output.GetFormatterByName(flagFormat)
	if formatter == nil {
		return fmt.Errorf("unknown format %q (available: %v)", flagFormat, output.AvailableFormatterNames())
	}
	data, err := formatter.Format(result)
	if err != nil {
		return fmt.Errorf("formatting failed: %w", err)
	}
	if flagOutput != "" {
		if err := os.WriteFile(flagOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", flagOutput, err)
		}
		fmt.Printf("Wrote %s\n", flagOutput)
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v := os.Getenv(key)
	return v == "1" || v == "true" || v == "yes"
}
