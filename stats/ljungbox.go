package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/cpiscope/timeseries"
)

// LjungBoxResult represents the result of a Ljung-Box test.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int // Degrees of freedom
}

// LjungBox performs the Ljung-Box test for autocorrelation in residuals.
// The null hypothesis is that there is no autocorrelation up to lag h.
// fitdf is the number of parameters estimated in the model (p + q for ARIMA).
// Returns nil for series shorter than four observations.
func LjungBox(series *timeseries.Series, lags, fitdf int) *LjungBoxResult {
	n := series.Len()
	if n < 4 || lags < 1 {
		return nil
	}

	if lags >= n {
		lags = n - 1
	}

	acf := ACF(series, lags)
	if acf == nil {
		return nil
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += (acf[k] * acf[k]) / float64(n-k)
	}
	q *= float64(n * (n + 2))

	dof := lags - fitdf
	if dof < 1 {
		dof = 1
	}

	chi := distuv.ChiSquared{K: float64(dof)}

	return &LjungBoxResult{
		Statistic: q,
		PValue:    chi.Survival(q),
		Lags:      lags,
		DOF:       dof,
	}
}

// DurbinWatsonResult holds the Durbin-Watson statistic of a residual
// series. Values near 2 indicate no first-order autocorrelation, values
// toward 0 positive and toward 4 negative autocorrelation.
type DurbinWatsonResult struct {
	Statistic float64
}

// DurbinWatson returns the Durbin-Watson statistic of residuals, or nil
// for fewer than two residuals or an all-zero series.
func DurbinWatson(residuals []float64) *DurbinWatsonResult {
	n := len(residuals)
	if n < 2 {
		return nil
	}

	ss := floats.Dot(residuals, residuals)
	if ss == 0 {
		return nil
	}
	steps := make([]float64, n-1)
	floats.SubTo(steps, residuals[1:], residuals[:n-1])

	return &DurbinWatsonResult{Statistic: floats.Dot(steps, steps) / ss}
}
