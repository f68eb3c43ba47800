// Package main provides the entry point for the uniform-power fan delay table generator.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shini4i/fan-delays/internal/dbus"
	"github.com/shini4i/fan-delays/internal/phase"
	"github.com/shini4i/fan-delays/internal/profile"
	"github.com/shini4i/fan-delays/internal/render"
)

// options holds the command line flags of the root command.
type options struct {
	frequency    float64
	halfCycleUs  float64
	halfCycleSet bool
	levels       int
	minPower     float64
	includeOff   bool
	out          string
	generateAll  bool
	configPath   string
	outputDir    string
}

var (
	verbose bool
	noColor bool
	opts    options
	rootCmd = &cobra.Command{
		Use:   "fan-delays",
		Short: "Compute uniform-power triac delay tables for fan firmware",
		Long: `fan-delays computes FAN_DELAY_US and DELAY_FROM_PERCENT tables for a
phase-control triac fan controller. Successive levels are evenly spaced in
delivered conduction power rather than in firing angle.

Each run writes a text file with the tables as C arrays ready to paste into
the firmware sources.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging()
			opts.halfCycleSet = cmd.Flags().Changed("half-cycle-us")

			jobs, limits, err := resolveJobs(opts)
			if err != nil {
				return err
			}

			dir := opts.outputDir
			if dir == "" {
				if dir, err = os.Getwd(); err != nil {
					return fmt.Errorf("failed to get working directory: %w", err)
				}
			}

			_, err = generate(cmd.OutOrStdout(), jobs, limits, dir)
			return err
		},
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve delay tables over the D-Bus session bus",
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging()
			return serve()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	flags := rootCmd.Flags()
	flags.Float64VarP(&opts.frequency, "freq", "f", profile.DefaultFrequency, "mains frequency in Hz")
	flags.Float64Var(&opts.halfCycleUs, "half-cycle-us", 0, "explicit half-cycle duration in microseconds (overrides --freq)")
	flags.IntVar(&opts.levels, "levels", profile.DefaultLevels, "number of fan levels")
	flags.Float64Var(&opts.minPower, "min-power", profile.DefaultMinPower, "conduction power of level 1 (0 to 1)")
	flags.BoolVar(&opts.includeOff, "include-off", false, "prepend a 0 for index 0 (OFF) in the FAN_DELAY_US array")
	flags.StringVarP(&opts.out, "out", "o", "", "output file name (default generated from frequency)")
	flags.BoolVar(&opts.generateAll, "generate-all", false, "generate 50Hz and 60Hz outputs, with and without OFF")
	flags.StringVarP(&opts.configPath, "config", "c", "", "TOML profile file (overrides the single-profile flags)")
	flags.StringVar(&opts.outputDir, "output-dir", "", "directory to write outputs to (default current directory)")

	rootCmd.AddCommand(serveCmd)
}

func configureLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if noColor {
		color.NoColor = true
	}
}

// resolveJobs turns the flags into validated profiles and the delay limits to apply.
func resolveJobs(o options) ([]profile.Profile, phase.Limits, error) {
	if o.configPath != "" {
		f, err := profile.Load(o.configPath)
		if err != nil {
			return nil, phase.Limits{}, err
		}
		log.Debug().Str("config", o.configPath).Int("profiles", len(f.Profiles)).Msg("Loaded profile file")
		return f.Profiles, f.Limits, nil
	}

	if o.generateAll {
		return profile.GenerateAll(), phase.DefaultLimits(), nil
	}

	p := profile.Default()
	p.Frequency = o.frequency
	p.Levels = o.levels
	p.MinPower = o.minPower
	p.IncludeOff = o.includeOff
	p.Output = o.out
	if o.halfCycleSet {
		if o.halfCycleUs == 0 {
			return nil, phase.Limits{}, fmt.Errorf("%w: half-cycle must be positive", phase.ErrInvalidConfiguration)
		}
		p.HalfCycleUs = o.halfCycleUs
	}
	if err := p.Validate(); err != nil {
		return nil, phase.Limits{}, err
	}
	p.Name = p.OutputName()
	return []profile.Profile{p}, phase.DefaultLimits(), nil
}

// buildArtifact computes both tables for a profile and renders them.
func buildArtifact(generator *phase.Generator, p profile.Profile) (string, error) {
	half := p.HalfCycle()

	levels, err := generator.LevelTable(p.Levels, p.MinPower, half)
	if err != nil {
		return "", fmt.Errorf("profile %s: %w", p.Name, err)
	}
	percent, err := generator.PercentTable(half)
	if err != nil {
		return "", fmt.Errorf("profile %s: %w", p.Name, err)
	}

	return render.Render(render.Document{
		Levels:      levels,
		Percent:     percent,
		HalfCycleUs: half,
		Frequency:   p.FrequencyLabel(),
		IncludeOff:  p.IncludeOff,
	}), nil
}

// generate renders every job into dir and reports each written path to w.
// All artifacts are computed before any file is written.
func generate(w io.Writer, jobs []profile.Profile, limits phase.Limits, dir string) ([]string, error) {
	generator := phase.NewGenerator(phase.WithLimits(limits))

	texts := make([]string, len(jobs))
	for i, p := range jobs {
		text, err := buildArtifact(generator, p)
		if err != nil {
			return nil, err
		}
		texts[i] = text
		log.Debug().
			Str("profile", p.Name).
			Float64("half_cycle_us", p.HalfCycle()).
			Int("levels", p.Levels).
			Msg("Computed tables")
	}

	wrote := color.New(color.FgGreen, color.Bold)
	paths := make([]string, 0, len(jobs))
	for i, p := range jobs {
		path, err := render.WriteFile(dir, p.OutputName(), texts[i])
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
		log.Info().Str("profile", p.Name).Str("path", path).Msg("Wrote delay tables")
		if _, err := wrote.Fprint(w, "Wrote:"); err != nil {
			return paths, err
		}
		if _, err := fmt.Fprintf(w, " %s\n", path); err != nil {
			return paths, err
		}
	}
	return paths, nil
}

func serve() error {
	log.Info().Msg("Starting fan-delays table service")

	server := dbus.NewServer(phase.NewGenerator())
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start D-Bus server: %w", err)
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info().Msg("Service running, press Ctrl+C to stop")
	<-sigChan

	log.Info().Msg("Shutting down...")
	if err := server.Stop(); err != nil {
		log.Error().Err(err).Msg("Failed to stop D-Bus server")
	}

	log.Info().Msg("Service stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Failed to execute command")
	}
}
