package timeseries

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/cpiscope/table"
)

const (
	scorePrefix = "cpi"
	yearPrefix  = "cpi_score_"
)

// UnknownCountryError is returned when a requested country is not a
// column of the view.
type UnknownCountryError struct {
	Country string
}

func (e *UnknownCountryError) Error() string {
	return fmt.Sprintf("unknown country %q", e.Country)
}

// View is the time-indexed form of a cleaned table: one row per year, one
// column per country. Years keep the order of the source columns.
type View struct {
	Years     []string
	Countries []string
	data      *mat.Dense // len(Years) x len(Countries); nil when either is empty
	columns   map[string]int
}

// NewView selects the CPI score columns of t, strips the "cpi_score_"
// prefix to obtain the year labels and transposes the result. Cells that
// do not parse as numbers become NaN.
func NewView(t *table.Table) *View {
	var colIdx []int
	var years []string
	for i, c := range t.Columns() {
		if !strings.HasPrefix(c, scorePrefix) {
			continue
		}
		colIdx = append(colIdx, i)
		years = append(years, strings.ReplaceAll(c, yearPrefix, ""))
	}

	v := &View{
		Years:     years,
		Countries: t.Keys(),
		columns:   make(map[string]int, t.Len()),
	}
	for j, c := range v.Countries {
		if _, ok := v.columns[c]; !ok {
			v.columns[c] = j
		}
	}
	if len(years) == 0 || t.Len() == 0 {
		return v
	}

	v.data = mat.NewDense(len(years), t.Len(), nil)
	for j := 0; j < t.Len(); j++ {
		row := t.RowAt(j)
		for i, idx := range colIdx {
			v.data.Set(i, j, parseScore(row[idx]))
		}
	}
	return v
}

// NewViewFromColumns builds a view directly from per-country values.
func NewViewFromColumns(years []string, countries []string, columns [][]float64) (*View, error) {
	if len(columns) != len(countries) {
		return nil, fmt.Errorf("got %d columns for %d countries", len(columns), len(countries))
	}
	v := &View{
		Years:     years,
		Countries: countries,
		columns:   make(map[string]int, len(countries)),
	}
	for j, c := range countries {
		if len(columns[j]) != len(years) {
			return nil, fmt.Errorf("country %s: got %d values for %d years", c, len(columns[j]), len(years))
		}
		if _, ok := v.columns[c]; !ok {
			v.columns[c] = j
		}
	}
	if len(years) == 0 || len(countries) == 0 {
		return v, nil
	}
	v.data = mat.NewDense(len(years), len(countries), nil)
	for j, col := range columns {
		v.data.SetCol(j, col)
	}
	return v, nil
}

// Dims returns the number of years and countries.
func (v *View) Dims() (years, countries int) {
	return len(v.Years), len(v.Countries)
}

// Has reports whether country is a column of the view.
func (v *View) Has(country string) bool {
	_, ok := v.columns[country]
	return ok
}

// At returns the score of country in the i-th year.
func (v *View) At(i int, country string) (float64, error) {
	j, ok := v.columns[country]
	if !ok {
		return 0, &UnknownCountryError{Country: country}
	}
	return v.data.At(i, j), nil
}

// Validate returns an UnknownCountryError for the first country that is
// not a column of the view.
func (v *View) Validate(countries []string) error {
	for _, c := range countries {
		if !v.Has(c) {
			return &UnknownCountryError{Country: c}
		}
	}
	return nil
}

// Series returns the country's scores as a series indexed by year.
func (v *View) Series(country string) (*Series, error) {
	j, ok := v.columns[country]
	if !ok {
		return nil, &UnknownCountryError{Country: country}
	}
	values := make([]float64, len(v.Years))
	if v.data != nil {
		mat.Col(values, j, v.data)
	}
	index := make([]string, len(v.Years))
	copy(index, v.Years)
	return &Series{Index: index, Values: values, Name: country}, nil
}

// Matrix returns the years x countries values. It is nil for an empty view.
func (v *View) Matrix() mat.Matrix {
	if v.data == nil {
		return nil
	}
	return v.data
}

func parseScore(s string) float64 {
	s = strings.TrimSpace(strings.Trim(s, "\""))
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
