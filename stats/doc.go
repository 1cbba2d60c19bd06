// Package stats provides autocorrelation analysis and residual diagnostics
// for CPI series.
//
// # Autocorrelation Functions
//
//	acf := stats.ACF(series, 3)   // lags 0..3
//	pacf := stats.PACF(series, 3) // lags 0..3, lag 0 fixed at 1
//
// A Correlogram pairs both for lags 1..maxLag, capped at n-1, with the 95%
// white-noise bound:
//
//	c, err := stats.NewCorrelogram(series, 3)
//	if err != nil {
//	    // ErrTooShort or ErrZeroVariance
//	}
//	fmt.Println(c.Lags, c.ACF, c.PACF, c.ConfBounds)
//	fmt.Println(c.SignificantACF())
//
// # Residual Diagnostics
//
//	lb := stats.LjungBox(residuals, 10, p+q)
//	if lb != nil && lb.PValue > 0.05 {
//	    // Residuals are white noise
//	}
//	dw := stats.DurbinWatson(residuals.Values)
//
// # Information Criteria
//
//	ic := stats.CalculateIC(logLik, nObs, nParams)
//	fmt.Printf("AIC=%.2f AICc=%.2f BIC=%.2f\n", ic.AIC, ic.AICc, ic.BIC)
package stats
