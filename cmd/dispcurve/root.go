package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/katalvlaran/surfwave/dispersion"
	"github.com/katalvlaran/surfwave/dispfun"
	"github.com/katalvlaran/surfwave/model"
	"github.com/spf13/cobra"
)

// errNoFrequencies is returned when neither --freq nor the model file lists any.
var errNoFrequencies = errors.New("dispcurve: no frequencies given (use --freq or a frequencies list in the model file)")

var validate = validator.New()

// flags holds the parsed command line.
type flags struct {
	ModelPath   string    `validate:"required"`
	Freqs       []float64 `validate:"dive,gt=0"`
	Verbose     bool
	Workers     int     `validate:"min=1"`
	Iterations  int     `validate:"min=1"`
	MinVelocity float64 `validate:"gt=0"`
	Step        float64 `validate:"gt=0"`
	MaxSteps    int     `validate:"min=0"`
	Tolerance   float64 `validate:"gte=0"`
	Output      string  `validate:"oneof=table yaml csv"`
	PlotPath    string
	MetricsPath string
}

func newRootCmd() *cobra.Command {
	def := dispersion.DefaultConfig()
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "dispcurve --model FILE [--freq HZ ...]",
		Short: "Compute a fundamental-mode Rayleigh-wave dispersion curve",
		Long: `Compute the fundamental-mode Rayleigh-wave phase velocity of a layered
elastic model for a list of frequencies.

The model file is YAML:

  name: two-layer
  layers:
    - {alpha: 519.6, beta: 300, rho: 1800, thickness: 20}
    - {alpha: 1125.8, beta: 650, rho: 2000}
  frequencies: [1, 2, 5, 10]

The last layer is the half-space. --freq overrides the file's frequencies.

Examples:
  dispcurve --model two-layer.yaml
  dispcurve --model two-layer.yaml --freq 0.5 --freq 20 --output yaml
  dispcurve --model two-layer.yaml --workers 4 --verbose
  dispcurve --model two-layer.yaml --output csv --plot curve.png`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.ModelPath, "model", "m", "", "YAML model file (required)")
	fl.Float64SliceVarP(&f.Freqs, "freq", "f", nil, "frequency in Hz (repeatable)")
	fl.BoolVarP(&f.Verbose, "verbose", "v", false, "log progress to stderr")
	fl.IntVar(&f.Workers, "workers", 1, "frequencies solved concurrently")
	fl.IntVar(&f.Iterations, "iterations", def.Iterations, "quadratic refinement passes")
	fl.Float64Var(&f.MinVelocity, "min-velocity", def.MinVelocity, "lowest trial phase velocity")
	fl.Float64Var(&f.Step, "step", def.Step, "bracketing step")
	fl.IntVar(&f.MaxSteps, "max-steps", def.MaxSteps, "bracketing step cap per frequency (0 = none)")
	fl.Float64Var(&f.Tolerance, "tolerance", def.Tolerance, "relative convergence stop (0 = fixed passes)")
	fl.StringVarP(&f.Output, "output", "o", "table", "output format: table, yaml or csv")
	fl.StringVar(&f.PlotPath, "plot", "", "also draw the curve to this file (.png, .svg, .pdf)")
	fl.StringVar(&f.MetricsPath, "metrics-file", "", "write Prometheus textfile metrics of the run")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

// run loads the model, solves the curve and prints it.
func run(cmd *cobra.Command, f *flags) error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("dispcurve: invalid flags: %w", err)
	}

	file, err := model.Load(f.ModelPath)
	if err != nil {
		return err
	}
	m, err := file.Model()
	if err != nil {
		return err
	}
	freqs := file.Frequencies
	if len(f.Freqs) > 0 {
		freqs = f.Freqs
	}
	if len(freqs) == 0 {
		return errNoFrequencies
	}

	ev, err := dispfun.NewRayleigh(m)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil)).With("run", uuid.NewString())
	if f.Verbose {
		logger.Info("model loaded", "path", f.ModelPath, "layers", m.N(), "frequencies", len(freqs))
	}

	start := time.Now()
	sols, err := dispersion.Solve(ev, freqs,
		dispersion.WithContext(cmd.Context()),
		dispersion.WithIterations(f.Iterations),
		dispersion.WithMinVelocity(f.MinVelocity),
		dispersion.WithStep(f.Step),
		dispersion.WithMaxSteps(f.MaxSteps),
		dispersion.WithTolerance(f.Tolerance),
		dispersion.WithWorkers(f.Workers),
		dispersion.WithVerbose(f.Verbose),
		dispersion.WithLogger(logger),
	)
	if f.MetricsPath != "" {
		metrics := newRunMetrics()
		metrics.observe(sols, err, time.Since(start))
		if werr := metrics.write(f.MetricsPath); werr != nil {
			return errors.Join(err, werr)
		}
	}
	if err != nil {
		return err
	}

	if f.PlotPath != "" {
		if err := savePlot(f.PlotPath, file.Name, sols); err != nil {
			return err
		}
		if f.Verbose {
			logger.Info("plot written", "path", f.PlotPath)
		}
	}

	switch f.Output {
	case "yaml":
		return writeYAML(cmd.OutOrStdout(), file.Name, sols)
	case "csv":
		return writeCSV(cmd.OutOrStdout(), sols)
	default:
		return writeTable(cmd.OutOrStdout(), sols)
	}
}
