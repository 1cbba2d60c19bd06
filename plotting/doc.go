// Package plotting renders CPI line charts and ACF/PACF correlograms with
// gonum/plot.
//
// Figures are drawn lazily: LineChart and CorrelogramChart only build the
// plots, and Figure.WriteTo renders a PNG. A Viewer decides what "showing"
// a figure means. FileViewer writes the PNG and, when given a prompt
// reader, blocks until the operator presses Enter:
//
//	viewer := plotting.NewFileViewer("figures", os.Stdin, os.Stderr, logger)
//	fig, _ := plotting.LineChart(view, []string{"USA", "RUS"})
//	if err := viewer.Show(ctx, fig); err != nil {
//	    return err
//	}
package plotting
