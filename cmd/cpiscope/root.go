package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sartorproj/cpiscope/config"
	"github.com/sartorproj/cpiscope/logging"
)

// app holds the state shared by every subcommand.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "cpiscope",
		Short: "Explore Corruption Perceptions Index time series",
		Long: `cpiscope loads a cross-country Corruption Perceptions Index dataset,
normalizes its schema and charts, diagnoses and models the scores of
selected countries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = logging.New(cmd.ErrOrStderr(), a.verbose)

			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.DefaultFile+")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newAnalyzeCmd(a), newCleanCmd(a), newConfigCmd(a))
	return root
}
