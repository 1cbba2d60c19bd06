package analysis

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"plot", PlotOnly},
		{"", PlotOnly},
		{"acf", ACFDiagnostics},
		{"ACF", ACFDiagnostics},
		{" fit ", FitModel},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil {
			t.Errorf("ParseMode(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}

	if _, err := ParseMode("forecast"); err == nil {
		t.Error("Expected error for unknown mode")
	}
}

func TestModeFromFlags(t *testing.T) {
	tests := []struct {
		getACF, getModel bool
		want             Mode
	}{
		{false, false, PlotOnly},
		{false, true, FitModel},
		{true, false, ACFDiagnostics},
		{true, true, ACFDiagnostics},
	}
	for _, tt := range tests {
		if got := ModeFromFlags(tt.getACF, tt.getModel); got != tt.want {
			t.Errorf("ModeFromFlags(%v, %v): expected %v, got %v", tt.getACF, tt.getModel, tt.want, got)
		}
	}
}

func TestModeString(t *testing.T) {
	for _, m := range []Mode{PlotOnly, ACFDiagnostics, FitModel} {
		parsed, err := ParseMode(m.String())
		if err != nil || parsed != m {
			t.Errorf("Mode %d does not round-trip through %q", int(m), m.String())
		}
	}
	if got := Mode(7).String(); got != "Mode(7)" {
		t.Errorf("Expected Mode(7), got %q", got)
	}
}
