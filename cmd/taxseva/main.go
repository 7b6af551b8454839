// Package main provides the taxseva CLI entry point.
// Running the bare binary launches the interactive payment wizard; the
// lookup subcommand exercises the same core without a TUI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"taxseva/cmd/taxseva/wizard"
	"taxseva/internal/config"
	"taxseva/internal/logging"
	"taxseva/internal/payment"
	"taxseva/internal/records"
	"taxseva/internal/session"
)

var (
	// Global flags
	cfgPath  string
	dataPath string
	verbose  bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "taxseva",
	Short: "taxseva - municipal property-tax lookup and payment wizard",
	Long: `taxseva is a simulated municipal property-tax portal for the terminal.

Search for a building by mobile number, Aadhaar number, or building ID,
review its tax status, and walk through a simulated UPI payment. No real
payment gateway is involved: identifiers containing "fail" are declined,
everything else is captured.

Run without arguments to start the interactive wizard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The wizard owns the terminal; zap only serves the plain commands.
		if cmd.Use == "taxseva" && cmd.CalledAs() == "taxseva" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWizard()
	},
}

// versionCmd prints the build version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the taxseva version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.DefaultConfig().Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "taxseva.yaml", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "override the building records file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(lookupCmd)
}

// bootstrap loads config and wires the store, simulator, and controller.
func bootstrap() (config.Config, *session.Controller, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, nil, err
	}
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}
	if verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, fmt.Errorf("invalid config: %w", err)
	}

	workspace, err := os.Getwd()
	if err != nil {
		return cfg, nil, err
	}
	if err := logging.Initialize(workspace, logging.Options{
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return cfg, nil, err
	}

	store, err := records.Load(cfg.Data.Path)
	if err != nil {
		return cfg, nil, err
	}

	sim := payment.NewSimulator(store, cfg.Payment.Latency())
	ctrl := session.New(store, sim, session.Merchant{
		VPA:  cfg.Merchant.VPA,
		Name: cfg.Merchant.Name,
	})
	return cfg, ctrl, nil
}

func runWizard() error {
	cfg, ctrl, err := bootstrap()
	if err != nil {
		return err
	}
	defer logging.CloseAll()

	return wizard.Run(ctrl, cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
