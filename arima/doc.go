// Package arima implements autoregressive models for short annual series.
//
// An ARIMA(p,d,0) model differences the series d times and regresses each
// demeaned value on its p predecessors. Coefficients are estimated by
// conditional least squares (a QR solve via gonum/mat). Moving-average
// terms are not supported.
//
// # Basic Usage
//
//	model := arima.New(2, 0, 0)
//	if err := model.Fit(series); err != nil {
//	    var conv *arima.ConvergenceError
//	    if errors.As(err, &conv) {
//	        // singular lag matrix, missing values or too little data
//	    }
//	    return err
//	}
//
//	for _, p := range model.Params() {
//	    fmt.Printf("%-6s %8.4f\n", p.Name, p.Value) // const, ar.L1, ar.L2
//	}
//
// # Model Selection
//
// Information criteria are computed from the conditional residuals:
//
//	summary := model.Summary()
//	fmt.Printf("AIC: %.2f, BIC: %.2f\n", summary.AIC, summary.BIC)
//
// # Forecasting
//
//	forecasts, _ := model.Predict(3)
//
// # Residual Analysis
//
// Summary includes the Ljung-Box and Durbin-Watson statistics of the
// residuals when the series is long enough.
package arima
