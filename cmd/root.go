// =============================================================================
// dzcb - Root Command
// =============================================================================
//
// This file defines the root command of the CLI. Every other command is
// attached to it.
//
// COBRA CLI STRUCTURE:
//   dzcb
//   ├── convert  (dzcb convert INPUT_DIR OUTPUT_DIR)
//   ├── radios   (dzcb radios)
//   └── version  (dzcb version)
//
// The root command owns the global flags, loads the configuration and
// builds the logger before any subcommand runs.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mycodeplug/dzcb/internal/config"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	// cfgFile is the --config flag. Empty means dzcb.yaml if present.
	cfgFile string

	// verbose is the -v flag.
	verbose bool

	cfg *config.Config
	log *zap.Logger
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "dzcb",
		Short: "dzcb: DMR Zone Channel Builder for Anytone 878/890",
		Long: `dzcb builds Anytone 878 and 890 codeplugs from K7ABD format CSV files.

The input directory holds files named by category:
  Talkgroups__*.csv         talkgroup name and DMR ID
  Analog__*.csv             analog channels
  Digital-Others__*.csv     digital channels with one talkgroup each
  Digital-Repeaters__*.csv  repeaters with a column per talkgroup

Sheets with the same prefixes inside .xlsx workbooks are read as well.

Example Usage:
  dzcb convert ./k7abd ./out                  # Both radios, alphabetical zones
  dzcb convert ./k7abd ./out --radio 878      # A single radio
  dzcb convert ./k7abd ./out --sort repeaters-first --summary
  dzcb radios --fields                        # Show the CPS columns`,

		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&a.cfgFile,
		"config",
		"",
		"Path to the configuration file (default is "+config.DefaultConfigFile+" if present)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&a.verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.AddCommand(
		newConvertCmd(a),
		newRadiosCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. It is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init loads the configuration and builds the logger.
func (a *app) init() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Level()
	if a.verbose {
		level = zapcore.DebugLevel
	}
	log, err := newLogger(level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.log = log
	return nil
}

// newLogger builds a console logger writing to stderr.
func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zc.DisableStacktrace = true
	zc.Sampling = nil
	return zc.Build()
}
