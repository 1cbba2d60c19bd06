package arima

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/sartorproj/cpiscope/timeseries"
)

// usaScores are the USA CPI scores 2012-2023.
var usaScores = []float64{73, 73, 74, 76, 74, 75, 71, 69, 67, 67, 69, 69}

func TestNewARIMA(t *testing.T) {
	model := New(2, 1, 0)

	if model.Order.P != 2 {
		t.Errorf("Expected P=2, got %d", model.Order.P)
	}
	if model.Order.D != 1 {
		t.Errorf("Expected D=1, got %d", model.Order.D)
	}
	if model.Order.Q != 0 {
		t.Errorf("Expected Q=0, got %d", model.Order.Q)
	}
	if model.Fitted() {
		t.Error("New model should not be fitted")
	}
}

func TestOrderTag(t *testing.T) {
	tests := []struct {
		order Order
		tag   string
	}{
		{Order{P: 2}, "arma20"},
		{Order{P: 1, Q: 1}, "arma11"},
		{Order{P: 1, D: 1}, "arima110"},
	}
	for _, tt := range tests {
		if got := tt.order.Tag(); got != tt.tag {
			t.Errorf("%s: expected tag %q, got %q", tt.order, tt.tag, got)
		}
	}
}

func TestFitAR2(t *testing.T) {
	// Generate AR(2) data around a mean of 50
	rng := rand.New(rand.NewSource(42))
	n := 500
	phi1, phi2 := 0.5, -0.3
	values := make([]float64, n)
	values[0], values[1] = 50, 50
	for i := 2; i < n; i++ {
		values[i] = 50 + phi1*(values[i-1]-50) + phi2*(values[i-2]-50) + rng.NormFloat64()
	}

	model := New(2, 0, 0)
	if err := model.Fit(timeseries.New(values)); err != nil {
		t.Fatalf("Failed to fit AR(2) model: %v", err)
	}

	t.Logf("True AR coeffs: %f %f, Estimated: %v", phi1, phi2, model.ARCoeffs)

	if math.Abs(model.ARCoeffs[0]-phi1) > 0.15 {
		t.Errorf("ar.L1 estimate off: true=%f, est=%f", phi1, model.ARCoeffs[0])
	}
	if math.Abs(model.ARCoeffs[1]-phi2) > 0.15 {
		t.Errorf("ar.L2 estimate off: true=%f, est=%f", phi2, model.ARCoeffs[1])
	}
	if math.Abs(model.Intercept-50) > 1 {
		t.Errorf("const estimate off: true=50, est=%f", model.Intercept)
	}
	if math.Abs(model.Variance-1) > 0.3 {
		t.Errorf("sigma2 estimate off: true=1, est=%f", model.Variance)
	}
}

func TestParams(t *testing.T) {
	model := New(2, 0, 0)
	if model.Params() != nil {
		t.Error("Params should be nil before fitting")
	}

	if err := model.Fit(timeseries.New(usaScores)); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	params := model.Params()
	if len(params) != 3 {
		t.Fatalf("Expected 3 params, got %d", len(params))
	}
	names := []string{"const", "ar.L1", "ar.L2"}
	for i, name := range names {
		if params[i].Name != name {
			t.Errorf("Param %d: expected %q, got %q", i, name, params[i].Name)
		}
		if math.IsNaN(params[i].Value) {
			t.Errorf("Param %s is NaN", name)
		}
	}
	if params[1].Value != model.ARCoeffs[0] || params[2].Value != model.ARCoeffs[1] {
		t.Error("Params do not match ARCoeffs")
	}
}

func TestFitConstantSeries(t *testing.T) {
	model := New(2, 0, 0)
	err := model.Fit(timeseries.New([]float64{29, 29, 29, 29, 29, 29, 29, 29}))

	var conv *ConvergenceError
	if !errors.As(err, &conv) {
		t.Fatalf("Expected ConvergenceError, got %v", err)
	}
	if model.Fitted() {
		t.Error("Model should not be fitted after a failed fit")
	}
}

func TestFitInsufficientData(t *testing.T) {
	model := New(2, 0, 0)
	err := model.Fit(timeseries.New([]float64{76, 74, 73, 75, 71}))

	var conv *ConvergenceError
	if !errors.As(err, &conv) {
		t.Fatalf("Expected ConvergenceError, got %v", err)
	}
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData in chain, got %v", err)
	}
}

func TestFitMissingValues(t *testing.T) {
	values := append([]float64{}, usaScores...)
	values[3] = math.NaN()

	err := New(2, 0, 0).Fit(timeseries.New(values))
	var conv *ConvergenceError
	if !errors.As(err, &conv) {
		t.Fatalf("Expected ConvergenceError, got %v", err)
	}
}

func TestFitUnsupportedOrder(t *testing.T) {
	err := New(1, 0, 1).Fit(timeseries.New(usaScores))
	if !errors.Is(err, ErrUnsupportedOrder) {
		t.Errorf("Expected ErrUnsupportedOrder, got %v", err)
	}
}

func TestPredictRequiresFit(t *testing.T) {
	if _, err := New(2, 0, 0).Predict(3); !errors.Is(err, ErrNotFitted) {
		t.Errorf("Expected ErrNotFitted, got %v", err)
	}
}

func TestPredictRandomWalkWithDrift(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = float64(i + 1)
	}

	model := New(0, 1, 0)
	if err := model.Fit(timeseries.New(values)); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	forecasts, err := model.Predict(3)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	expected := []float64{21, 22, 23}
	for i, v := range expected {
		if math.Abs(forecasts[i]-v) > 1e-9 {
			t.Errorf("Step %d: expected %f, got %f", i+1, v, forecasts[i])
		}
	}
}

func TestPredictSecondDifference(t *testing.T) {
	values := make([]float64, 10)
	for i := range values {
		x := float64(i + 1)
		values[i] = x * x
	}

	model := New(0, 2, 0)
	if err := model.Fit(timeseries.New(values)); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	forecasts, err := model.Predict(2)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	expected := []float64{121, 144}
	for i, v := range expected {
		if math.Abs(forecasts[i]-v) > 1e-9 {
			t.Errorf("Step %d: expected %f, got %f", i+1, v, forecasts[i])
		}
	}

	if _, err := model.Predict(0); err == nil {
		t.Error("Expected error for zero steps")
	}
}

func TestPredictAR2(t *testing.T) {
	model := New(2, 0, 0)
	if err := model.Fit(timeseries.New(usaScores)); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	forecasts, err := model.Predict(2)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	n := len(usaScores)
	mu := model.Intercept
	step1 := mu + model.ARCoeffs[0]*(usaScores[n-1]-mu) + model.ARCoeffs[1]*(usaScores[n-2]-mu)
	step2 := mu + model.ARCoeffs[0]*(step1-mu) + model.ARCoeffs[1]*(usaScores[n-1]-mu)
	if math.Abs(forecasts[0]-step1) > 1e-9 || math.Abs(forecasts[1]-step2) > 1e-9 {
		t.Errorf("Expected [%f %f], got %v", step1, step2, forecasts)
	}
}

func TestResidualsAndFittedValues(t *testing.T) {
	model := New(2, 0, 0)
	if model.Residuals() != nil || model.FittedValues() != nil {
		t.Error("Residuals and fitted values should be nil before fitting")
	}

	if err := model.Fit(timeseries.New(usaScores)); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	residuals := model.Residuals()
	fitted := model.FittedValues()
	if len(residuals) != len(usaScores) || len(fitted) != len(usaScores) {
		t.Fatalf("Expected %d residuals and fitted values, got %d and %d",
			len(usaScores), len(residuals), len(fitted))
	}
	for i := range usaScores {
		if math.Abs(fitted[i]+residuals[i]-usaScores[i]) > 1e-9 {
			t.Errorf("fitted+residual != observed at %d", i)
		}
	}
}

func TestSummary(t *testing.T) {
	model := New(2, 0, 0)
	if model.Summary() != nil {
		t.Error("Summary should be nil before fitting")
	}

	if err := model.Fit(timeseries.New(usaScores)); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	summary := model.Summary()
	if summary.NObs != len(usaScores) {
		t.Errorf("Expected NObs %d, got %d", len(usaScores), summary.NObs)
	}
	if len(summary.Params) != 3 {
		t.Errorf("Expected 3 params, got %d", len(summary.Params))
	}
	if summary.LjungBox == nil {
		t.Error("Expected Ljung-Box result for 12 observations")
	}
	if summary.AICc < summary.AIC {
		t.Errorf("AICc (%f) should be >= AIC (%f)", summary.AICc, summary.AIC)
	}

	t.Logf("AIC=%.2f BIC=%.2f sigma2=%.3f", summary.AIC, summary.BIC, summary.Variance)
}
