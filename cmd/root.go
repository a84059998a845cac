package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/formula/engine"
	"github.com/gnoswap-labs/formula/formatter"
)

var (
	cfgFile string
	timeout time.Duration
	verbose bool
	noColor bool

	logger *zap.Logger
)

// errFailed signals that at least one formula failed and its diagnostic
// has already been printed.
var errFailed = errors.New("one or more formulas failed")

var rootCmd = &cobra.Command{
	Use:              "formula [expressions...]",
	Short:            "formula - parse, simplify and differentiate symbolic expressions",
	TraverseChildren: true, // Prioritize subcommands
	SilenceUsage:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		return err
	},
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		// Format: formula [expr1 expr2 ...] => behaves like the simplify subcommand
		simplifyCmd.Run(simplifyCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file (default "+engine.DefaultConfigFile+" when present)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for batch processing")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every rewrite and derivative")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(simplifyCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(watchCmd)
}

// configPath returns the --config value, or the default file when it exists
// in the working directory.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat(engine.DefaultConfigFile); err == nil {
		return engine.DefaultConfigFile
	}
	return ""
}

func newEngine(opts ...engine.Option) *engine.Engine {
	e, err := engine.New(configPath(), logger, opts...)
	if err != nil {
		logger.Fatal("Failed to initialize formula engine", zap.Error(err))
	}
	return e
}

// newPrinter colors output unless disabled by flag or the terminal does
// not support it.
func newPrinter() *formatter.Printer {
	return formatter.New(!noColor && !color.NoColor)
}

// exitOnFailure ends the process with status 1 when err is set. Diagnostics
// are printed before, so only unexpected errors are logged here.
func exitOnFailure(err error) {
	if err == nil {
		return
	}
	if !errors.Is(err, errFailed) {
		logger.Error("Command failed", zap.Error(err))
	}
	os.Exit(1)
}
