// Package timeseries provides the Series type and the per-country View of a
// cleaned CPI table.
//
// # Building a View
//
// A View transposes the CPI score columns of a cleaned table so that years
// become rows and countries become columns:
//
//	t, _ := table.LoadAndClean("CPI_data.csv")
//	view := timeseries.NewView(t)
//	fmt.Println(view.Years)     // [2012 2013 ...] in source column order
//	fmt.Println(view.Countries) // [AFG ALB ...] in table row order
//
// Years are never re-sorted. Cells that do not parse as numbers are NaN.
//
// # Per-country series
//
//	usa, err := view.Series("USA")
//	var unknown *timeseries.UnknownCountryError
//	if errors.As(err, &unknown) {
//	    // USA is not in the table
//	}
//	observed := usa.DropMissing()
//
// # Basic Statistics
//
//	mean := series.Mean()
//	std := series.Std()
//	min := series.Min()
//	max := series.Max()
//
// # Export
//
// Write the view as CSV, one column per requested country:
//
//	err := view.WriteCSV(os.Stdout, "USA", "RUS")
package timeseries
