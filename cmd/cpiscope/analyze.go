package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sartorproj/cpiscope/analysis"
	"github.com/sartorproj/cpiscope/plotting"
	"github.com/sartorproj/cpiscope/table"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		source      string
		countries   []string
		lag         int
		mode        string
		outDir      string
		interactive bool
		summary     bool
		forecast    int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Chart, diagnose or model the CPI scores of selected countries",
		Long: `Load and clean the CPI source, show the line chart of the selected
countries and then, depending on --mode:

  plot  print the year by country view as CSV
  acf   show an ACF/PACF figure per country
  fit   fit AR(2) per country and print its parameters

Figures are written as PNG files to --out. With --interactive each figure
waits for Enter before the run continues.`,
		Example: `  cpiscope analyze --countries USA,RUS --mode fit
  cpiscope analyze --source CPI2023.xlsx --mode acf --lag 5 --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.cfg
			f := cmd.Flags()
			if f.Changed("source") {
				cfg.Source = source
			}
			if f.Changed("countries") {
				cfg.Countries = countries
			}
			if f.Changed("lag") {
				cfg.Lag = lag
			}
			if f.Changed("mode") {
				cfg.Mode = mode
			}
			if f.Changed("out") {
				cfg.OutDir = outDir
			}
			if f.Changed("interactive") {
				cfg.Interactive = interactive
			}
			if f.Changed("summary") {
				cfg.Summary = summary
			}
			if f.Changed("forecast") {
				cfg.Forecast = forecast
			}

			opts, err := cfg.AnalysisOptions()
			if err != nil {
				return err
			}
			loaderOpts, err := cfg.LoaderOptions()
			if err != nil {
				return err
			}
			tbl, err := table.NewLoader(a.logger, loaderOpts).LoadAndClean(cfg.Source)
			if err != nil {
				return err
			}

			var prompt io.Reader
			if cfg.Interactive {
				prompt = cmd.InOrStdin()
			}
			viewer := plotting.NewFileViewer(cfg.OutDir, prompt, cmd.ErrOrStderr(), a.logger)

			res, err := analysis.New(viewer, a.logger, cmd.OutOrStdout()).Analyze(cmd.Context(), tbl, opts)
			if err != nil {
				return err
			}
			if res.Mode == analysis.PlotOnly {
				return res.View.WriteCSV(cmd.OutOrStdout(), opts.Countries...)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&source, "source", "s", "", "CPI source file (.csv, .tsv or .xlsx)")
	f.StringSliceVarP(&countries, "countries", "c", nil, "ISO3 codes of the countries to analyze")
	f.IntVar(&lag, "lag", analysis.DefaultLag, "number of correlogram lags")
	f.StringVarP(&mode, "mode", "m", "", "analysis mode: plot, acf or fit")
	f.StringVarP(&outDir, "out", "o", "", "directory for figure files")
	f.BoolVarP(&interactive, "interactive", "i", false, "wait for Enter after each figure")
	f.BoolVar(&summary, "summary", false, "print information criteria and residual diagnostics")
	f.IntVar(&forecast, "forecast", 0, "print this many point forecasts per model")

	return cmd
}
