package timeseries

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
)

// WriteCSV writes the view with a "year" column followed by one column per
// country. With no countries given, every country is written. Missing
// values are written as empty cells.
func (v *View) WriteCSV(w io.Writer, countries ...string) error {
	if len(countries) == 0 {
		countries = v.Countries
	}
	if err := v.Validate(countries); err != nil {
		return err
	}

	writer := csv.NewWriter(w)

	header := append([]string{"year"}, countries...)
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i, year := range v.Years {
		record[0] = year
		for j, c := range countries {
			val, _ := v.At(i, c)
			if math.IsNaN(val) {
				record[j+1] = ""
				continue
			}
			record[j+1] = strconv.FormatFloat(val, 'f', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
