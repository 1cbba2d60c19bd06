package analysis

import (
	"fmt"
	"strings"
)

// Mode selects what Analyze does after the line chart is shown.
type Mode int

const (
	// PlotOnly returns the view.
	PlotOnly Mode = iota
	// ACFDiagnostics shows an ACF/PACF figure per country.
	ACFDiagnostics
	// FitModel fits an AR(2) model per country.
	FitModel
)

func (m Mode) String() string {
	switch m {
	case PlotOnly:
		return "plot"
	case ACFDiagnostics:
		return "acf"
	case FitModel:
		return "fit"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "plot", "acf" or "fit", ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plot", "":
		return PlotOnly, nil
	case "acf":
		return ACFDiagnostics, nil
	case "fit":
		return FitModel, nil
	}
	return PlotOnly, fmt.Errorf("unknown mode %q (want plot, acf or fit)", s)
}

// ModeFromFlags maps a pair of boolean switches to a mode. getACF takes
// precedence over getModel.
func ModeFromFlags(getACF, getModel bool) Mode {
	switch {
	case getACF:
		return ACFDiagnostics
	case getModel:
		return FitModel
	default:
		return PlotOnly
	}
}
