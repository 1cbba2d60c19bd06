// Package arima implements autoregressive models fitted by conditional least squares.
package arima

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/cpiscope/stats"
	"github.com/sartorproj/cpiscope/timeseries"
)

var (
	// ErrUnsupportedOrder is returned for orders with moving-average terms.
	ErrUnsupportedOrder = errors.New("arima: moving-average terms are not supported")
	// ErrInsufficientData is wrapped by a ConvergenceError when the series
	// is too short for the requested order.
	ErrInsufficientData = errors.New("arima: insufficient data points for the specified order")
	// ErrNotFitted is returned by methods that need a fitted model.
	ErrNotFitted = errors.New("arima: model must be fitted first")
)

// ConvergenceError reports a fit that produced no usable estimate.
type ConvergenceError struct {
	Order  Order
	Reason string
	Err    error
}

func (e *ConvergenceError) Error() string {
	msg := fmt.Sprintf("arima: %s fit did not converge", e.Order)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConvergenceError) Unwrap() error {
	return e.Err
}

// Order represents ARIMA model order (p, d, q).
type Order struct {
	P int // AR order (number of autoregressive terms)
	D int // Differencing order
	Q int // MA order (number of moving average terms)
}

func (o Order) String() string {
	return fmt.Sprintf("ARIMA(%d,%d,%d)", o.P, o.D, o.Q)
}

// Tag returns the short model tag used in result keys, e.g. "arma20".
func (o Order) Tag() string {
	if o.D == 0 {
		return fmt.Sprintf("arma%d%d", o.P, o.Q)
	}
	return fmt.Sprintf("arima%d%d%d", o.P, o.D, o.Q)
}

// MinObservations is the shortest series Fit accepts for the order: the
// lag regression needs more rows than parameters.
func (o Order) MinObservations() int {
	return 2*o.P + o.D + 2
}

// Model represents an autoregressive model.
type Model struct {
	Order      Order
	ARCoeffs   []float64 // AR coefficients (phi)
	Intercept  float64   // Process mean of the (differenced) series
	Variance   float64   // Residual variance (sigma2)
	AIC        float64
	AICc       float64 // Corrected AIC for small sample sizes
	BIC        float64
	LogLik     float64
	fitted     bool
	data       *timeseries.Series
	diffData   *timeseries.Series
	residuals  []float64
	fittedVals []float64
}

// New creates a new model with the specified order.
func New(p, d, q int) *Model {
	return &Model{
		Order:    Order{P: p, D: d, Q: q},
		ARCoeffs: make([]float64, p),
	}
}

// Fit fits the model to the given series.
func (m *Model) Fit(series *timeseries.Series) error {
	if m.Order.Q != 0 {
		return ErrUnsupportedOrder
	}
	if m.Order.P < 0 || m.Order.D < 0 {
		return fmt.Errorf("arima: invalid order %s", m.Order)
	}
	if series.Len() < m.Order.MinObservations() {
		return &ConvergenceError{
			Order:  m.Order,
			Reason: fmt.Sprintf("%d observations, need %d", series.Len(), m.Order.MinObservations()),
			Err:    ErrInsufficientData,
		}
	}
	if floats.HasNaN(series.Values) {
		return &ConvergenceError{Order: m.Order, Reason: "series has missing values"}
	}

	m.fitted = false
	m.data = series

	diffSeries := series
	for i := 0; i < m.Order.D; i++ {
		diffSeries = diffSeries.Diff()
	}
	m.diffData = diffSeries

	if err := m.fitCLS(); err != nil {
		return err
	}

	m.calculateIC()

	m.fitted = true
	return nil
}

// fitCLS estimates the AR coefficients by least squares on the demeaned
// series, conditioning on the first p observations.
func (m *Model) fitCLS() error {
	y := m.diffData.Values
	n := len(y)
	p := m.Order.P

	mean := stat.Mean(y, nil)
	m.Intercept = mean
	m.ARCoeffs = make([]float64, p)

	if p > 0 {
		rows := n - p
		x := mat.NewDense(rows, p, nil)
		b := mat.NewVecDense(rows, nil)
		for t := p; t < n; t++ {
			b.SetVec(t-p, y[t]-mean)
			for i := 0; i < p; i++ {
				x.Set(t-p, i, y[t-i-1]-mean)
			}
		}

		var phi mat.VecDense
		if err := phi.SolveVec(x, b); err != nil {
			return &ConvergenceError{Order: m.Order, Reason: "singular lag matrix", Err: err}
		}
		for i := 0; i < p; i++ {
			m.ARCoeffs[i] = phi.AtVec(i)
		}
		if !allFinite(m.ARCoeffs) {
			return &ConvergenceError{Order: m.Order, Reason: "non-finite coefficients"}
		}
	}

	m.residuals = make([]float64, n)
	m.fittedVals = make([]float64, n)
	for t := 0; t < n; t++ {
		pred := m.predictAt(y, t)
		m.fittedVals[t] = pred
		m.residuals[t] = y[t] - pred
	}

	sse := 0.0
	count := 0
	for t := p; t < n; t++ {
		sse += m.residuals[t] * m.residuals[t]
		count++
	}
	if count > p+1 {
		m.Variance = sse / float64(count-p-1)
	} else {
		m.Variance = sse / float64(count)
	}
	if math.IsNaN(m.Variance) || math.IsInf(m.Variance, 0) {
		return &ConvergenceError{Order: m.Order, Reason: "non-finite residual variance"}
	}

	return nil
}

// predictAt returns the one-step prediction for y[t]. The first p points
// have no full lag history and are predicted by the mean.
func (m *Model) predictAt(y []float64, t int) float64 {
	pred := m.Intercept
	if t < m.Order.P {
		return pred
	}
	for i := 0; i < m.Order.P; i++ {
		pred += m.ARCoeffs[i] * (y[t-i-1] - m.Intercept)
	}
	return pred
}

// calculateIC calculates AIC, AICc, and BIC from the conditional residuals.
func (m *Model) calculateIC() {
	resid := m.residuals[m.Order.P:]
	k := m.Order.P + m.Order.Q + 1 // AR + MA + intercept

	m.LogLik = stats.GaussianLogLik(resid, m.Variance)
	ic := stats.CalculateIC(m.LogLik, len(resid), k)
	m.AIC = ic.AIC
	m.AICc = ic.AICc
	m.BIC = ic.BIC
}

// Param is a named model coefficient.
type Param struct {
	Name  string
	Value float64
}

// Params returns the fitted coefficients: the constant followed by one
// "ar.L<i>" entry per AR lag.
func (m *Model) Params() []Param {
	if !m.fitted {
		return nil
	}
	params := make([]Param, 0, m.Order.P+1)
	params = append(params, Param{Name: "const", Value: m.Intercept})
	for i, c := range m.ARCoeffs {
		params = append(params, Param{Name: fmt.Sprintf("ar.L%d", i+1), Value: c})
	}
	return params
}

// Fitted reports whether Fit has succeeded.
func (m *Model) Fitted() bool {
	return m.fitted
}

// Predict generates forecasts for the specified number of steps ahead.
func (m *Model) Predict(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}

	if steps < 1 {
		return nil, errors.New("arima: steps must be at least 1")
	}

	y := m.diffData.Values
	n := len(y)

	ext := make([]float64, n+steps)
	copy(ext, y)

	for h := 0; h < steps; h++ {
		ext[n+h] = m.predictAt(ext, n+h)
	}

	forecasts := make([]float64, steps)
	copy(forecasts, ext[n:])

	if m.Order.D > 0 {
		forecasts = m.integrate(forecasts)
	}

	return forecasts, nil
}

// integrate undoes differencing to return forecasts on original scale.
func (m *Model) integrate(forecasts []float64) []float64 {
	// Levels of the series at each differencing stage, last value first.
	levels := make([]float64, m.Order.D)
	s := m.data
	for i := 0; i < m.Order.D; i++ {
		levels[i] = s.Values[s.Len()-1]
		s = s.Diff()
	}

	result := forecasts
	for i := m.Order.D - 1; i >= 0; i-- {
		undone := make([]float64, len(result))
		prev := levels[i]
		for j, v := range result {
			undone[j] = prev + v
			prev = undone[j]
		}
		result = undone
	}

	return result
}

// Residuals returns the model residuals.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.residuals))
	copy(result, m.residuals)
	return result
}

// FittedValues returns the fitted values.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.fittedVals))
	copy(result, m.fittedVals)
	return result
}

// Summary describes a fitted model.
type Summary struct {
	Order        Order
	Params       []Param
	Variance     float64
	AIC          float64
	AICc         float64 // Corrected AIC
	BIC          float64
	LogLik       float64
	NObs         int
	LjungBox     *stats.LjungBoxResult     // nil for very short series
	DurbinWatson *stats.DurbinWatsonResult // nil for zero residuals
}

// Summary returns a summary of the fitted model.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}

	resid := m.residuals[m.Order.P:]
	lags := 10
	if lags > len(resid)-1 {
		lags = len(resid) - 1
	}
	lb := stats.LjungBox(timeseries.New(resid), lags, m.Order.P+m.Order.Q)

	return &Summary{
		Order:        m.Order,
		Params:       m.Params(),
		Variance:     m.Variance,
		AIC:          m.AIC,
		AICc:         m.AICc,
		BIC:          m.BIC,
		LogLik:       m.LogLik,
		NObs:         m.data.Len(),
		LjungBox:     lb,
		DurbinWatson: stats.DurbinWatson(resid),
	}
}

func allFinite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
