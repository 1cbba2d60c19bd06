// Package timeseries provides the series and view types used by the analysis.
package timeseries

import (
	"errors"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series represents a labelled time series, one value per period.
type Series struct {
	Index  []string // Period labels, e.g. "2015"
	Values []float64
	Name   string
}

// New creates a new series from values, indexed 0..n-1.
func New(values []float64) *Series {
	index := make([]string, len(values))
	for i := range index {
		index[i] = strconv.Itoa(i)
	}
	return &Series{
		Index:  index,
		Values: values,
	}
}

// NewWithIndex creates a series with explicit period labels.
func NewWithIndex(name string, index []string, values []float64) (*Series, error) {
	if len(index) != len(values) {
		return nil, errors.New("index and values must have the same length")
	}
	return &Series{
		Index:  index,
		Values: values,
		Name:   name,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance calculates the sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// Std calculates the standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Min(s.Values)
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.Values)
}

// HasMissing reports whether any value is NaN.
func (s *Series) HasMissing() bool {
	return floats.HasNaN(s.Values)
}

// DropMissing returns a copy without the NaN periods.
func (s *Series) DropMissing() *Series {
	out := &Series{Name: s.Name}
	for i, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		out.Values = append(out.Values, v)
		out.Index = append(out.Index, s.label(i))
	}
	return out
}

// Diff calculates the first difference of the series (d=1).
func (s *Series) Diff() *Series {
	return s.DiffN(1)
}

// DiffN calculates the lag-n difference of the series.
func (s *Series) DiffN(n int) *Series {
	if n <= 0 || len(s.Values) <= n {
		return &Series{Values: []float64{}, Name: s.Name + "_diff"}
	}

	result := make([]float64, len(s.Values)-n)
	index := make([]string, len(result))
	for i := n; i < len(s.Values); i++ {
		result[i-n] = s.Values[i] - s.Values[i-n]
		index[i-n] = s.label(i)
	}

	return &Series{
		Index:  index,
		Values: result,
		Name:   s.Name + "_diff",
	}
}

func (s *Series) label(i int) string {
	if i < len(s.Index) {
		return s.Index[i]
	}
	return strconv.Itoa(i)
}
