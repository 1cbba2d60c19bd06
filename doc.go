// Package cpiscope loads Corruption Perceptions Index data and analyzes the
// scores of individual countries as annual time series.
//
// The module is organized as a small pipeline. A source file is cleaned into
// a country-keyed table, the table is reshaped into a year by country view,
// and the view is charted, diagnosed or modeled.
//
// # Features
//
//   - CSV, TSV and XLSX sources keyed by ISO3 code (package table)
//   - Year by country views with missing-score handling (package timeseries)
//   - ACF/PACF with 95% confidence bounds, Ljung-Box, Durbin-Watson (package stats)
//   - AR(p) fitting by conditional least squares with forecasts (package arima)
//   - PNG line charts and correlograms (package plotting)
//   - Mode-driven analysis of selected countries (package analysis)
//
// # Quick Start
//
// Fit AR(2) models for two countries:
//
//	tbl, _ := table.LoadAndClean("policy_growth/CPI_data.csv")
//	viewer := plotting.NewFileViewer("figures", nil, nil, nil)
//	res, _ := analysis.New(viewer, nil, os.Stdout).Analyze(ctx, tbl, analysis.Options{
//	    Countries: []string{"USA", "RUS"},
//	    Lag:       3,
//	    Mode:      analysis.FitModel,
//	})
//	usa := res.Models["USA_arma20"]
//
// Or from the command line:
//
//	cpiscope analyze --countries USA,RUS --mode fit
//	cpiscope analyze --mode acf --lag 3 --interactive
//	cpiscope clean --head 5
package cpiscope
