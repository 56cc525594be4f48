// finsim is the what-if financial simulator CLI. It runs simulations from
// profile files, analyzes stored history, and can serve the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/finsim/whatif-simulator/internal/api"
	"github.com/finsim/whatif-simulator/internal/calculation"
	"github.com/finsim/whatif-simulator/internal/config"
	"github.com/finsim/whatif-simulator/internal/output"
	"github.com/finsim/whatif-simulator/internal/store"
)

var (
	flagInput  string
	flagFormat string
	flagSave   bool
	flagDebug  bool
	flagDB     string
	flagSince  string
)

var rootCmd = &cobra.Command{
	Use:   "finsim",
	Short: "Personal-finance what-if simulator",
	Long: `finsim projects the financial impact of life decisions: job changes,
city moves, starting a business, large purchases. It compares the current
path against an optimized savings path, scores investment risk, and keeps a
history so past decisions can be reviewed.`,
	SilenceUsage: true,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a what-if simulation from a profile file",
	RunE:  runSimulate,
}

var retrospectiveCmd = &cobra.Command{
	Use:   "retrospective <user-id>",
	Short: "Score a user's stored simulation history",
	Args:  cobra.ExactArgs(1),
	RunE:  runRetrospective,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation HTTP API",
	RunE:  runServe,
}

var exampleCmd = &cobra.Command{
	Use:   "example [filename]",
	Short: "Write an example profile file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExample,
}

func init() {
	simulateCmd.Flags().StringVarP(&flagInput, "input", "i", "", "Profile YAML file (required)")
	simulateCmd.Flags().StringVarP(&flagFormat, "format", "f", "console", "Output format: console, json, csv")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Write output to a timestamped file instead of stdout")
	simulateCmd.Flags().BoolVar(&flagDebug, "debug", false, "Verbose calculation logging")
	simulateCmd.MarkFlagRequired("input")

	retrospectiveCmd.Flags().StringVar(&flagDB, "db", "./data/simulations.db", "History database path")
	retrospectiveCmd.Flags().StringVar(&flagSince, "since", "", "Only consider simulations on or after this date (YYYY-MM-DD)")

	rootCmd.AddCommand(simulateCmd, retrospectiveCmd, serveCmd, exampleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSimulate(cmd *cobra.Command, args []string) error {
	formatter := output.GetFormatterByName(flagFormat)
	if formatter == nil {
		return fmt.Errorf("unknown format %q, available: %v", flagFormat, output.AvailableFormatterNames())
	}

	parser := config.NewInputParser()
	profile, err := parser.LoadFromFile(flagInput)
	if err != nil {
		return err
	}

	engine, err := engineFor(profile)
	if err != nil {
		return err
	}
	if flagDebug {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		engine.SetLogger(calculation.NewZerologAdapter(log))
	}

	result, err := engine.RunSimulation(cmd.Context(), &profile.Snapshot, profile.Scenario)
	if err != nil {
		return err
	}

	if flagSave {
		filename, err := output.WriteFormatted(formatter, result, output.NormalizeFormatName(flagFormat))
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", filename)
		return nil
	}

	data, err := formatter.Format(result)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func engineFor(profile *config.Profile) (*calculation.CalculationEngine, error) {
	if profile.Assumptions == nil {
		return calculation.NewCalculationEngine(), nil
	}
	return calculation.NewCalculationEngineWithAssumptions(*profile.Assumptions)
}

func runRetrospective(cmd *cobra.Command, args []string) error {
	userID := args[0]

	since := time.Time{}
	if flagSince != "" {
		parsed, err := time.Parse("2006-01-02", flagSince)
		if err != nil {
			return fmt.Errorf("invalid --since value %q: expected YYYY-MM-DD", flagSince)
		}
		since = parsed
	}

	st, err := store.New(flagDB)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.ListHistory(userID)
	if err != nil {
		return err
	}

	summary, err := calculation.NewCalculationEngine().AnalyzeRetrospective(entries, since)
	if err != nil {
		return err
	}

	fmt.Printf("Retrospective for %s (%d simulations)\n", userID, len(summary.Records))
	fmt.Printf("Success rate: %s%%  Trend: %s\n\n", summary.SuccessRate.StringFixed(1), summary.Trend)
	for _, r := range summary.Records {
		fmt.Printf("  %s  %-10s  net gain %12s  risk %-8s  confidence %-8s\n",
			r.Date.Format("2006-01-02"), r.ScenarioKind, r.NetGain.StringFixed(2), r.RiskLevel, r.Confidence)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if cfg.DevMode {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	} else {
		log = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	st, err := store.New(cfg.DatabasePath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DatabasePath).Msg("Failed to open history database")
		return err
	}
	defer st.Close()

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(calculation.NewZerologAdapter(log))

	srv := api.New(api.Config{
		Port:   cfg.Port,
		Log:    log,
		Engine: engine,
		Store:  st,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func runExample(cmd *cobra.Command, args []string) error {
	filename := "example_profile.yaml"
	if len(args) == 1 {
		filename = args[0]
	}
	if err := config.NewInputParser().WriteExampleProfile(filename); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", filename)
	return nil
}
