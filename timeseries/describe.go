package timeseries

import "math"

// Description summarizes the observed scores of one country.
type Description struct {
	Country  string
	Observed int
	Missing  int
	Mean     float64
	Std      float64
	Min      float64
	Max      float64
}

// Describe summarizes each country's scores, skipping missing years. With
// no countries given, every country is described. A country without any
// observation has NaN statistics.
func (v *View) Describe(countries ...string) ([]Description, error) {
	if len(countries) == 0 {
		countries = v.Countries
	}
	if err := v.Validate(countries); err != nil {
		return nil, err
	}

	out := make([]Description, 0, len(countries))
	for _, c := range countries {
		s, _ := v.Series(c)
		observed := s
		if s.HasMissing() {
			observed = s.DropMissing()
		}
		d := Description{
			Country:  c,
			Observed: observed.Len(),
			Missing:  s.Len() - observed.Len(),
			Mean:     math.NaN(),
			Std:      math.NaN(),
			Min:      math.NaN(),
			Max:      math.NaN(),
		}
		if d.Observed > 0 {
			d.Mean = observed.Mean()
			d.Std = observed.Std()
			d.Min = observed.Min()
			d.Max = observed.Max()
		}
		out = append(out, d)
	}
	return out, nil
}
