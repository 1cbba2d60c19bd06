// Package stats provides autocorrelation and residual diagnostics.
package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/cpiscope/timeseries"
)

var (
	// ErrTooShort is returned when a series has fewer than two observations.
	ErrTooShort = errors.New("stats: series needs at least two observations")
	// ErrZeroVariance is returned for a constant series.
	ErrZeroVariance = errors.New("stats: series has zero variance")
)

// confZ is the two-sided 95% normal quantile used for correlogram bounds.
const confZ = 1.96

// ACF calculates the Autocorrelation Function for the given series.
// Returns ACF values for lags 0 to maxLag; maxLag is capped at n-1.
func ACF(series *timeseries.Series, maxLag int) []float64 {
	n := series.Len()
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := stat.Mean(series.Values, nil)
	variance := 0.0
	for _, v := range series.Values {
		diff := v - mean
		variance += diff * diff
	}

	if variance == 0 || math.IsNaN(variance) {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (series.Values[i] - mean) * (series.Values[i-k] - mean)
		}
		acf[k] = sum / variance
	}

	return acf
}

// PACF calculates the Partial Autocorrelation Function using the Durbin-Levinson algorithm.
// Returns PACF values for lags 0 to maxLag, with lag 0 fixed at 1.
func PACF(series *timeseries.Series, maxLag int) []float64 {
	n := series.Len()
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 1 {
		return nil
	}

	acf := ACF(series, maxLag)
	if acf == nil {
		return nil
	}

	pacf := make([]float64, maxLag+1)
	pacf[0] = 1.0

	phi := make([][]float64, maxLag+1)
	for i := range phi {
		phi[i] = make([]float64, maxLag+1)
	}

	phi[1][1] = acf[1]
	pacf[1] = acf[1]

	for k := 2; k <= maxLag; k++ {
		num := acf[k]
		den := 1.0
		for j := 1; j < k; j++ {
			num -= phi[k-1][j] * acf[k-j]
			den -= phi[k-1][j] * acf[j]
		}

		if den == 0 {
			pacf[k] = 0
			continue
		}

		phi[k][k] = num / den
		pacf[k] = phi[k][k]

		for j := 1; j < k; j++ {
			phi[k][j] = phi[k-1][j] - phi[k][k]*phi[k-1][k-j]
		}
	}

	return pacf
}

// ConfidenceBound returns the 95% white-noise bound for n observations.
func ConfidenceBound(n int) float64 {
	if n <= 0 {
		return math.Inf(1)
	}
	return confZ / math.Sqrt(float64(n))
}

// Correlogram holds ACF and PACF values for lags 1..MaxLag.
type Correlogram struct {
	Lags       []int
	ACF        []float64
	PACF       []float64
	ConfBounds float64 // 95% confidence bounds (±1.96/sqrt(n))
	NObs       int
}

// NewCorrelogram computes the ACF and PACF of series for lags 1..maxLag.
// maxLag is capped at n-1 so no lag exceeds the available history.
func NewCorrelogram(series *timeseries.Series, maxLag int) (*Correlogram, error) {
	n := series.Len()
	if n < 2 {
		return nil, ErrTooShort
	}
	if maxLag > n-1 {
		maxLag = n - 1
	}
	if maxLag < 1 {
		maxLag = 1
	}

	acf := ACF(series, maxLag)
	pacf := PACF(series, maxLag)
	if acf == nil || pacf == nil {
		return nil, ErrZeroVariance
	}

	c := &Correlogram{
		Lags:       make([]int, maxLag),
		ACF:        acf[1:],
		PACF:       pacf[1:],
		ConfBounds: ConfidenceBound(n),
		NObs:       n,
	}
	for i := range c.Lags {
		c.Lags[i] = i + 1
	}
	return c, nil
}

// SignificantACF returns the lags whose autocorrelation exceeds the bounds.
func (c *Correlogram) SignificantACF() []int {
	return significant(c.Lags, c.ACF, c.ConfBounds)
}

// SignificantPACF returns the lags whose partial autocorrelation exceeds the bounds.
func (c *Correlogram) SignificantPACF() []int {
	return significant(c.Lags, c.PACF, c.ConfBounds)
}

func significant(lags []int, values []float64, bound float64) []int {
	var out []int
	for i, v := range values {
		if math.Abs(v) > bound {
			out = append(out, lags[i])
		}
	}
	return out
}
