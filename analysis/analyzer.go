package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/sartorproj/cpiscope/arima"
	"github.com/sartorproj/cpiscope/plotting"
	"github.com/sartorproj/cpiscope/stats"
	"github.com/sartorproj/cpiscope/table"
	"github.com/sartorproj/cpiscope/timeseries"
)

// DefaultLag is the number of correlogram lags used when Options.Lag is not
// positive.
const DefaultLag = 3

// ModelOrder is the order fitted in FitModel mode.
var ModelOrder = arima.Order{P: 2, D: 0, Q: 0}

// ErrNoViewer is returned by Analyze when the analyzer has no viewer.
var ErrNoViewer = errors.New("analysis: no viewer configured")

// ModelKey returns the result key of the model fitted for country,
// e.g. "USA_arma20".
func ModelKey(country string) string {
	return country + "_" + ModelOrder.Tag()
}

// Options configures one Analyze call.
type Options struct {
	Countries []string
	Lag       int
	Mode      Mode

	// Summary prints information criteria and residual diagnostics after
	// each parameter listing.
	Summary bool
	// Forecast prints that many point forecasts per model when positive.
	Forecast int
}

// Result is the outcome of Analyze. Which fields are set depends on Mode:
// View for PlotOnly, Correlograms for ACFDiagnostics and Models/Keys for
// FitModel.
type Result struct {
	Mode         Mode
	View         *timeseries.View
	Correlograms map[string]*stats.Correlogram
	Models       map[string]*arima.Model
	// Keys lists the model keys in first-request order.
	Keys []string
}

// Analyzer runs the reshape, plot and model pipeline over a cleaned table.
type Analyzer struct {
	viewer plotting.Viewer
	logger *zap.Logger
	out    io.Writer
}

// New creates an Analyzer. Figures go to viewer, parameter listings to out.
func New(viewer plotting.Viewer, logger *zap.Logger, out io.Writer) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}
	return &Analyzer{viewer: viewer, logger: logger, out: out}
}

// Analyze reshapes tbl into a year by country view, shows the line chart of
// the requested countries and then acts according to opts.Mode.
func (a *Analyzer) Analyze(ctx context.Context, tbl *table.Table, opts Options) (*Result, error) {
	if a.viewer == nil {
		return nil, ErrNoViewer
	}
	lag := opts.Lag
	if lag <= 0 {
		lag = DefaultLag
	}

	view := timeseries.NewView(tbl)
	if err := view.Validate(opts.Countries); err != nil {
		return nil, err
	}
	years, _ := view.Dims()
	a.logger.Debug("view built",
		zap.Int("years", years),
		zap.Strings("countries", opts.Countries),
		zap.Stringer("mode", opts.Mode))

	fig, err := plotting.LineChart(view, opts.Countries)
	if err != nil {
		return nil, err
	}
	if err := a.viewer.Show(ctx, fig); err != nil {
		return nil, fmt.Errorf("show %s: %w", fig.Name, err)
	}

	switch opts.Mode {
	case ACFDiagnostics:
		return a.diagnose(ctx, view, opts.Countries, lag)
	case FitModel:
		return a.fit(view, opts)
	default:
		return &Result{Mode: PlotOnly, View: view}, nil
	}
}

func (a *Analyzer) diagnose(ctx context.Context, view *timeseries.View, countries []string, lag int) (*Result, error) {
	res := &Result{
		Mode:         ACFDiagnostics,
		Correlograms: make(map[string]*stats.Correlogram, len(countries)),
	}
	for _, c := range countries {
		s, err := view.Series(c)
		if err != nil {
			return nil, err
		}
		corr, err := stats.NewCorrelogram(s.DropMissing(), lag)
		if errors.Is(err, stats.ErrZeroVariance) {
			// Autocorrelation is undefined for a constant series.
			a.logger.Warn("constant series, no correlogram", zap.String("country", c))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("correlogram for %s: %w", c, err)
		}
		a.logger.Info("autocorrelation",
			zap.String("country", c),
			zap.Int("observations", corr.NObs),
			zap.Ints("lags", corr.Lags),
			zap.Float64("bound", corr.ConfBounds),
			zap.Ints("significant_acf", corr.SignificantACF()),
			zap.Ints("significant_pacf", corr.SignificantPACF()))

		fig, err := plotting.CorrelogramChart(c, corr)
		if err != nil {
			return nil, err
		}
		if err := a.viewer.Show(ctx, fig); err != nil {
			return nil, fmt.Errorf("show %s: %w", fig.Name, err)
		}
		res.Correlograms[c] = corr
	}
	return res, nil
}

func (a *Analyzer) fit(view *timeseries.View, opts Options) (*Result, error) {
	res := &Result{
		Mode:   FitModel,
		Models: make(map[string]*arima.Model, len(opts.Countries)),
	}
	for _, c := range opts.Countries {
		s, err := view.Series(c)
		if err != nil {
			return nil, err
		}
		key := ModelKey(c)
		model := arima.New(ModelOrder.P, ModelOrder.D, ModelOrder.Q)
		if err := model.Fit(s.DropMissing()); err != nil {
			a.logger.Warn("fit failed", zap.String("model", key), zap.Error(err))
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		if _, ok := res.Models[key]; !ok {
			res.Keys = append(res.Keys, key)
		}
		res.Models[key] = model
	}

	for _, key := range res.Keys {
		if err := a.report(key, res.Models[key], opts); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (a *Analyzer) report(key string, m *arima.Model, opts Options) error {
	w := &errWriter{w: a.out}
	w.printf("%s\n", key)
	for _, p := range m.Params() {
		w.printf("%-8s %10.4f\n", p.Name, p.Value)
	}

	if opts.Summary {
		s := m.Summary()
		w.printf("%-8s %10.4f\n", "sigma2", s.Variance)
		w.printf("%-8s %10.4f\n", "aic", s.AIC)
		w.printf("%-8s %10.4f\n", "aicc", s.AICc)
		w.printf("%-8s %10.4f\n", "bic", s.BIC)
		if s.LjungBox != nil {
			w.printf("%-8s %10.4f (p=%.4f, lags=%d)\n", "ljungbox",
				s.LjungBox.Statistic, s.LjungBox.PValue, s.LjungBox.Lags)
		}
		if s.DurbinWatson != nil {
			w.printf("%-8s %10.4f\n", "dw", s.DurbinWatson.Statistic)
		}
	}

	if opts.Forecast > 0 {
		forecasts, err := m.Predict(opts.Forecast)
		if err != nil {
			return fmt.Errorf("%s forecast: %w", key, err)
		}
		for h, f := range forecasts {
			w.printf("%-8s %10.4f\n", fmt.Sprintf("h+%d", h+1), f)
		}
	}
	return w.err
}

// errWriter keeps the first write error so a listing can be printed
// without checking every line.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
