package timeseries

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	if s.Len() != 5 {
		t.Errorf("Expected length 5, got %d", s.Len())
	}

	for i, v := range s.Values {
		if v != values[i] {
			t.Errorf("Expected value %f at index %d, got %f", values[i], i, v)
		}
	}

	if s.Index[4] != "4" {
		t.Errorf("Expected default label \"4\", got %q", s.Index[4])
	}
}

func TestNewWithIndexLengthMismatch(t *testing.T) {
	if _, err := NewWithIndex("USA", []string{"2015"}, []float64{1, 2}); err == nil {
		t.Error("Expected error for mismatched index and values")
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single", []float64{5}, 5.0},
		{"negative", []float64{-1, -2, -3}, -2.0},
		{"mixed", []float64{-1, 0, 1}, 0.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.values)
			result := s.Mean()
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("Expected mean %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestVariance(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := 4.571428571428571

	result := s.Variance()
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Expected variance %f, got %f", expected, result)
	}
}

func TestStd(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := math.Sqrt(4.571428571428571)

	result := s.Std()
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Expected std %f, got %f", expected, result)
	}
}

func TestMinMax(t *testing.T) {
	s := New([]float64{5, 2, 8, 1, 9, 3})

	if s.Min() != 1 {
		t.Errorf("Expected min 1, got %f", s.Min())
	}

	if s.Max() != 9 {
		t.Errorf("Expected max 9, got %f", s.Max())
	}

	empty := New(nil)
	if !math.IsNaN(empty.Min()) || !math.IsNaN(empty.Max()) {
		t.Error("Expected NaN min/max for empty series")
	}
}

func TestDropMissing(t *testing.T) {
	s, err := NewWithIndex("BLR",
		[]string{"2012", "2013", "2014", "2015"},
		[]float64{31, math.NaN(), 31, 32})
	if err != nil {
		t.Fatalf("NewWithIndex: %v", err)
	}

	if !s.HasMissing() {
		t.Fatal("Expected HasMissing to report the NaN year")
	}

	clean := s.DropMissing()
	expected := []float64{31, 31, 32}
	expectedIdx := []string{"2012", "2014", "2015"}
	if clean.Len() != len(expected) {
		t.Fatalf("Expected length %d, got %d", len(expected), clean.Len())
	}
	for i := range expected {
		if clean.Values[i] != expected[i] || clean.Index[i] != expectedIdx[i] {
			t.Errorf("At %d: expected %s=%f, got %s=%f", i, expectedIdx[i], expected[i], clean.Index[i], clean.Values[i])
		}
	}
	if clean.Name != "BLR" {
		t.Errorf("Expected name to be kept, got %q", clean.Name)
	}
}

func TestDiff(t *testing.T) {
	s := New([]float64{1, 3, 6, 10, 15})
	diff := s.Diff()

	expected := []float64{2, 3, 4, 5}
	if len(diff.Values) != len(expected) {
		t.Errorf("Expected length %d, got %d", len(expected), len(diff.Values))
	}

	for i, v := range diff.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}

	if diff.Index[0] != "1" {
		t.Errorf("Expected first differenced label \"1\", got %q", diff.Index[0])
	}
}

func TestDiffN(t *testing.T) {
	s := New([]float64{1, 3, 6, 10, 15, 21})
	diff2 := s.DiffN(2)

	expected := []float64{5, 7, 9, 11}
	if len(diff2.Values) != len(expected) {
		t.Errorf("Expected length %d, got %d", len(expected), len(diff2.Values))
	}

	for i, v := range diff2.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
}
