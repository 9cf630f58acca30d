// Package cmd provides the CLI commands for landedcost.
package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/99minutos/landed-cost/internal/pkg/config"
	"github.com/99minutos/landed-cost/pkg/logger"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

var (
	logLevel string
	pretty   bool

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "landedcost",
	Short: "Calculate the landed cost of imported goods",
	Long: `landedcost computes the full cost of importing goods: product value,
import duty, consumption tax, freight, insurance, customs clearance, last-mile
delivery and handling.

Examples:
  landedcost serve
  landedcost estimate --hs-code 8517.62 --origin CN --destination US --value 250 --weight 3
  landedcost seed --backend sqlite --sqlite-path rates.db`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "human-readable console logs")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	cfg = c

	log = logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  pretty,
		Output:  cmd.ErrOrStderr(),
		Service: "landed-cost",
	})
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "landedcost version %s\n", Version)
	},
}
