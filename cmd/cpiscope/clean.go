package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sartorproj/cpiscope/table"
	"github.com/sartorproj/cpiscope/timeseries"
)

func newCleanCmd(a *app) *cobra.Command {
	var (
		source   string
		head     int
		describe bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Load and clean the CPI source and print its first rows",
		Long: `clean loads and cleans the CPI source and prints its first rows as CSV.
With --describe it prints one summary row per country instead.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.cfg
			if cmd.Flags().Changed("source") {
				cfg.Source = source
			}
			if head < 0 {
				return fmt.Errorf("--head must not be negative, got %d", head)
			}

			loaderOpts, err := cfg.LoaderOptions()
			if err != nil {
				return err
			}
			tbl, err := table.NewLoader(a.logger, loaderOpts).LoadAndClean(cfg.Source)
			if err != nil {
				return err
			}

			if describe {
				return writeDescription(cmd.OutOrStdout(), timeseries.NewView(tbl))
			}

			top := tbl.Head(head)
			w := csv.NewWriter(cmd.OutOrStdout())
			if err := w.Write(append([]string{table.KeyColumn}, top.Columns()...)); err != nil {
				return err
			}
			keys := top.Keys()
			for i, key := range keys {
				if err := w.Write(append([]string{key}, top.RowAt(i)...)); err != nil {
					return err
				}
			}
			w.Flush()
			return w.Error()
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "CPI source file (.csv, .tsv or .xlsx)")
	cmd.Flags().IntVarP(&head, "head", "n", 5, "number of rows to print")
	cmd.Flags().BoolVar(&describe, "describe", false, "print per-country score statistics")
	return cmd
}

func writeDescription(out io.Writer, view *timeseries.View) error {
	desc, err := view.Describe()
	if err != nil {
		return err
	}

	w := csv.NewWriter(out)
	if err := w.Write([]string{"country", "observed", "missing", "mean", "std", "min", "max"}); err != nil {
		return err
	}
	for _, d := range desc {
		record := []string{d.Country, strconv.Itoa(d.Observed), strconv.Itoa(d.Missing)}
		for _, x := range []float64{d.Mean, d.Std, d.Min, d.Max} {
			record = append(record, formatStat(x))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// formatStat leaves undefined statistics empty.
func formatStat(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return strconv.FormatFloat(x, 'f', 2, 64)
}
