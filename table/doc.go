// Package table loads Corruption Perceptions Index sources and cleans them
// into a country-keyed Table.
//
// # Loading
//
// Load a CSV export and clean it in one step:
//
//	t, err := table.LoadAndClean("policy_growth/CPI_data.csv")
//	if errors.Is(err, table.ErrMissingFile) {
//	    // path does not exist
//	}
//
// Workbooks (.xlsx) are read with excelize; the header is the first row
// containing an ISO3 cell:
//
//	loader := table.NewLoader(logger, &table.Options{Sheet: "CPI2023"})
//	t, err := loader.LoadAndClean("CPI2023.xlsx")
//
// # Cleaning
//
// Cleaning keys every row by its ISO3 code, lowercases column names and
// replaces spaces with underscores ("CPI Score 2015" becomes
// "cpi_score_2015"), and drops any column whose cleaned name starts with
// "rank". Cell values are left exactly as read.
//
// Duplicate ISO3 codes are not rejected: both rows are kept and lookups by
// key return the first one.
package table
