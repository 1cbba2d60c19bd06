// Package analysis turns a cleaned CPI table into a per-country time-series
// analysis.
//
// Every call reshapes the table into a year by country view and shows the
// line chart of the requested countries. What follows depends on the mode:
//
//   - PlotOnly returns the view.
//   - ACFDiagnostics shows an ACF/PACF figure for each country.
//   - FitModel fits an AR(2) model for each country, prints its parameters
//     and returns the models keyed "<country>_arma20".
//
// # Basic Usage
//
//	viewer := plotting.NewFileViewer("figures", nil, nil, logger)
//	a := analysis.New(viewer, logger, os.Stdout)
//
//	res, err := a.Analyze(ctx, tbl, analysis.Options{
//	    Countries: []string{"USA", "RUS"},
//	    Lag:       3,
//	    Mode:      analysis.FitModel,
//	})
//	if err != nil {
//	    return err
//	}
//	usa := res.Models[analysis.ModelKey("USA")]
//
// Unknown countries are rejected with *timeseries.UnknownCountryError
// before anything is shown. A failed fit aborts the whole batch.
package analysis
