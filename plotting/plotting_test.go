package plotting

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/cpiscope/stats"
	"github.com/sartorproj/cpiscope/timeseries"
)

func testView(t *testing.T) *timeseries.View {
	t.Helper()
	v, err := timeseries.NewViewFromColumns(
		[]string{"2012", "2013", "2014", "2015", "2016"},
		[]string{"USA", "RUS"},
		[][]float64{
			{73, 73, 74, 76, 74},
			{28, 28, 27, 29, math.NaN()},
		})
	require.NoError(t, err)
	return v
}

func TestLineChartRendersPNG(t *testing.T) {
	fig, err := LineChart(testView(t), []string{"USA", "RUS"})
	require.NoError(t, err)
	assert.Equal(t, "cpi", fig.Name)

	var buf bytes.Buffer
	n, err := fig.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())
	assert.Positive(t, img.Bounds().Dy())
}

func TestLineChartLegendTopRight(t *testing.T) {
	p, err := linePlot(testView(t), []string{"USA", "RUS"})
	require.NoError(t, err)
	assert.True(t, p.Legend.Top)
	assert.False(t, p.Legend.Left)
}

func TestLineChartUnknownCountry(t *testing.T) {
	_, err := LineChart(testView(t), []string{"USA", "XXX"})

	var unknown *timeseries.UnknownCountryError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "XXX", unknown.Country)
}

func TestLineChartAllMissingCountry(t *testing.T) {
	v, err := timeseries.NewViewFromColumns(
		[]string{"2015", "2016"},
		[]string{"SSD"},
		[][]float64{{math.NaN(), math.NaN()}})
	require.NoError(t, err)

	fig, err := LineChart(v, []string{"SSD"})
	require.NoError(t, err)
	_, err = fig.WriteTo(&bytes.Buffer{})
	assert.NoError(t, err)
}

func TestCorrelogramChart(t *testing.T) {
	s := timeseries.New([]float64{73, 73, 74, 76, 74, 75, 71, 69, 67, 67, 69, 69})
	c, err := stats.NewCorrelogram(s, 3)
	require.NoError(t, err)

	fig, err := CorrelogramChart("USA", c)
	require.NoError(t, err)
	assert.Equal(t, "USA-acf", fig.Name)

	var buf bytes.Buffer
	_, err = fig.WriteTo(&buf)
	require.NoError(t, err)
	_, err = png.Decode(&buf)
	assert.NoError(t, err)
}

func TestFileViewerWritesFigures(t *testing.T) {
	dir := t.TempDir()
	v := NewFileViewer(dir, nil, nil, nil)

	fig, err := LineChart(testView(t), []string{"USA"})
	require.NoError(t, err)
	require.NoError(t, v.Show(context.Background(), fig))
	require.NoError(t, v.Show(context.Background(), fig))

	written := v.Written()
	require.Len(t, written, 2)
	assert.Equal(t, filepath.Join(dir, "01-cpi.png"), written[0])
	assert.Equal(t, filepath.Join(dir, "02-cpi.png"), written[1])
	for _, path := range written {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestFileViewerBlocksOnPrompt(t *testing.T) {
	var out bytes.Buffer
	v := NewFileViewer(t.TempDir(), strings.NewReader("\n\n"), &out, nil)

	fig, err := LineChart(testView(t), []string{"RUS"})
	require.NoError(t, err)
	require.NoError(t, v.Show(context.Background(), fig))
	require.NoError(t, v.Show(context.Background(), fig))

	assert.Equal(t, 2, strings.Count(out.String(), "press Enter to dismiss"))
}

func TestFileViewerCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := NewFileViewer(t.TempDir(), nil, nil, nil)
	fig, err := LineChart(testView(t), []string{"USA"})
	require.NoError(t, err)

	assert.ErrorIs(t, v.Show(ctx, fig), context.Canceled)
	assert.Empty(t, v.Written())
}

func TestFileViewerCancelWhileWaiting(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	prompted := &notifyWriter{ch: make(chan struct{}, 4)}
	v := NewFileViewer(t.TempDir(), pr, prompted, nil)

	fig, err := LineChart(testView(t), []string{"USA"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- v.Show(ctx, fig) }()

	select {
	case <-prompted.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("Show never prompted")
	}
	cancel()

	select {
	case err := <-result:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Show kept waiting after the context was canceled")
	}

	// The abandoned read is reused: one line dismisses the next figure.
	go func() { _, _ = pw.Write([]byte("\n")) }()
	done := make(chan error, 1)
	go func() { done <- v.Show(context.Background(), fig) }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Show did not return after Enter")
	}
	assert.Len(t, v.Written(), 2)
}

// notifyWriter signals every write of the dismissal prompt.
type notifyWriter struct {
	ch chan struct{}
}

func (w *notifyWriter) Write(p []byte) (int, error) {
	w.ch <- struct{}{}
	return len(p), nil
}
