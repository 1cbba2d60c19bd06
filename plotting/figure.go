package plotting

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/sartorproj/cpiscope/stats"
	"github.com/sartorproj/cpiscope/timeseries"
)

// Figure is a rendered-on-demand chart.
type Figure struct {
	Name   string
	Width  vg.Length
	Height vg.Length
	draw   func(dc draw.Canvas)
}

// WriteTo renders the figure as PNG.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	img := vgimg.New(f.Width, f.Height)
	f.draw(draw.New(img))
	return vgimg.PngCanvas{Canvas: img}.WriteTo(w)
}

// LineChart plots the scores of countries over the view's years, one line
// per country. Missing years leave a gap in the line's points.
func LineChart(view *timeseries.View, countries []string) (*Figure, error) {
	p, err := linePlot(view, countries)
	if err != nil {
		return nil, err
	}
	return &Figure{
		Name:   "cpi",
		Width:  8 * vg.Inch,
		Height: 5 * vg.Inch,
		draw:   p.Draw,
	}, nil
}

func linePlot(view *timeseries.View, countries []string) (*plot.Plot, error) {
	if err := view.Validate(countries); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = "Corruption Perceptions Index"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "CPI score"
	p.Add(plotter.NewGrid())

	for i, c := range countries {
		s, err := view.Series(c)
		if err != nil {
			return nil, err
		}
		xys := make(plotter.XYs, 0, s.Len())
		for j, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(j), Y: v})
		}
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("line for %s: %w", c, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(c, line)
	}
	if len(view.Years) > 0 {
		p.NominalX(view.Years...)
	}
	// gonum/plot has no automatic legend placement; top right stays clear
	// of scores that decline over time.
	p.Legend.Top = true
	return p, nil
}

// CorrelogramChart draws a two-panel figure: autocorrelation on top and
// partial autocorrelation below, each with its 95% confidence bounds.
func CorrelogramChart(name string, c *stats.Correlogram) (*Figure, error) {
	top, err := correlationPlot("Autocorrelation", c.Lags, c.ACF, c.ConfBounds)
	if err != nil {
		return nil, err
	}
	bottom, err := correlationPlot("Partial Autocorrelation", c.Lags, c.PACF, c.ConfBounds)
	if err != nil {
		return nil, err
	}

	plots := [][]*plot.Plot{{top}, {bottom}}
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      5 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}

	return &Figure{
		Name:   name + "-acf",
		Width:  12 * vg.Inch,
		Height: 8 * vg.Inch,
		draw: func(dc draw.Canvas) {
			canvases := plot.Align(plots, tiles, dc)
			for i := range plots {
				plots[i][0].Draw(canvases[i][0])
			}
		},
	}, nil
}

func correlationPlot(title string, lags []int, values []float64, bound float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Lag"

	ticks := make([]plot.Tick, len(lags))
	points := make(plotter.XYs, len(lags))
	for i, lag := range lags {
		x := float64(lag)
		ticks[i] = plot.Tick{Value: x, Label: strconv.Itoa(lag)}
		points[i] = plotter.XY{X: x, Y: values[i]}

		stem, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: values[i]}})
		if err != nil {
			return nil, fmt.Errorf("%s lag %d: %w", title, lag, err)
		}
		stem.Color = plotutil.Color(0)
		p.Add(stem)
	}

	markers, err := plotter.NewScatter(points)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", title, err)
	}
	markers.GlyphStyle.Shape = draw.CircleGlyph{}
	markers.GlyphStyle.Radius = vg.Points(4)
	markers.GlyphStyle.Color = plotutil.Color(0)
	p.Add(markers)

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	p.Add(zero)
	for _, b := range []float64{bound, -bound} {
		b := b
		band := plotter.NewFunction(func(float64) float64 { return b })
		band.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		band.Color = plotutil.Color(1)
		p.Add(band)
	}

	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min = 0.5
	p.X.Max = float64(len(lags)) + 0.5
	p.Y.Min = math.Min(-1, p.Y.Min)
	p.Y.Max = math.Max(1, p.Y.Max)

	return p, nil
}
