package analysis

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jhoekstra/dosplot/src/types"
)

func series(energies, values []float64) *types.Series {
	return &types.Series{Source: "test", Energies: energies, Values: values}
}

func TestFilterRange_ClosedIntervalPreservesOrder(t *testing.T) {
	s := series(
		[]float64{5, -3, 0, 3, -5, 2},
		[]float64{1, 2, 3, 4, 5, 6},
	)
	got, err := FilterRange(s, -3, 3)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	wantE := []float64{-3, 0, 3, 2}
	wantV := []float64{2, 3, 4, 6}
	if got.Len() != len(wantE) {
		t.Fatalf("expected %d points got %d", len(wantE), got.Len())
	}
	for i := range wantE {
		if got.Energies[i] != wantE[i] || got.Values[i] != wantV[i] {
			t.Fatalf("point %d: (%g,%g) want (%g,%g)", i, got.Energies[i], got.Values[i], wantE[i], wantV[i])
		}
	}
}

func TestFilterRange_BoundaryPointsIncluded(t *testing.T) {
	s := series([]float64{-2, -1, 0, 1, 2}, []float64{1, 1, 1, 1, 1})
	got, err := FilterRange(s, -1, 1)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if got.Len() != 3 {
		t.Fatalf("endpoints must be included: got %d points", got.Len())
	}
}

func TestFilterRange_InvalidRange(t *testing.T) {
	s := series([]float64{0}, []float64{1})
	if _, err := FilterRange(s, 2, 2); err == nil {
		t.Fatal("expected error for min == max")
	}
	if _, err := FilterRange(s, 3, -3); err == nil {
		t.Fatal("expected error for min > max")
	}
}

func TestFilterRange_EmptyResultIsValid(t *testing.T) {
	s := series([]float64{-10, 10}, []float64{1, 1})
	got, err := FilterRange(s, -1, 1)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if got.Len() != 0 {
		t.Fatalf("expected empty result got %d points", got.Len())
	}
}

func TestPercentile_LinearInterpolation(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	cases := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{50, 2.5},
		{100, 4},
		{25, 1.75},
	}
	for _, c := range cases {
		got := Percentile(a, c.p)
		if math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("percentile(%g) = %g want %g", c.p, got, c.want)
		}
	}
	if !math.IsNaN(Percentile(nil, 50)) {
		t.Fatal("empty input should give NaN")
	}
	if Percentile([]float64{7}, 33) != 7 {
		t.Fatal("single value should be returned for any p")
	}
}

func TestAutoRange_CentralWindow(t *testing.T) {
	// 0..100 evenly; 2.5th and 97.5th percentiles land exactly on 2.5 and 97.5.
	energies := make([]float64, 101)
	values := make([]float64, 101)
	for i := range energies {
		energies[i] = float64(i)
		values[i] = 1
	}
	min, max, err := AutoRange(series(energies, values))
	if err != nil {
		t.Fatalf("auto range: %v", err)
	}
	if math.Abs(min-2.5) > 1e-9 || math.Abs(max-97.5) > 1e-9 {
		t.Fatalf("got [%g, %g] want [2.5, 97.5]", min, max)
	}
}

func TestAutoRange_DegenerateAndEmpty(t *testing.T) {
	min, max, err := AutoRange(series([]float64{1.5, 1.5, 1.5}, []float64{1, 2, 3}))
	if err != nil {
		t.Fatalf("auto range: %v", err)
	}
	if max <= min {
		t.Fatalf("degenerate data should still yield a usable window: [%g, %g]", min, max)
	}
	if _, _, err := AutoRange(series(nil, nil)); err == nil {
		t.Fatal("expected error for empty series")
	}
}

func TestSummarize(t *testing.T) {
	s := series(
		[]float64{-2, -0.1, 1, 3},
		[]float64{4, 8, 2, 6},
	)
	sum, err := Summarize(s)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.Points != 4 {
		t.Fatalf("points %d want 4", sum.Points)
	}
	if sum.EnergyMin != -2 || sum.EnergyMax != 3 {
		t.Fatalf("energy bounds [%g, %g]", sum.EnergyMin, sum.EnergyMax)
	}
	if sum.MinDOS != 2 || sum.MaxDOS != 8 {
		t.Fatalf("dos bounds [%g, %g]", sum.MinDOS, sum.MaxDOS)
	}
	if math.Abs(sum.MeanDOS-5) > 1e-12 {
		t.Fatalf("mean %g want 5", sum.MeanDOS)
	}
	if sum.StdDOS <= 0 {
		t.Fatalf("stddev should be positive, got %g", sum.StdDOS)
	}
	if sum.FermiEnergy != -0.1 || sum.FermiDOS != 8 {
		t.Fatalf("fermi point (%g, %g) want (-0.1, 8)", sum.FermiEnergy, sum.FermiDOS)
	}
	if _, err := Summarize(series(nil, nil)); err == nil {
		t.Fatal("expected error for empty series")
	}
}

func TestLegendLabel(t *testing.T) {
	cases := []struct {
		source string
		max    int
		want   string
	}{
		{"", 20, "DOS"},
		{"/data/runs/clean_dos.txt", 20, "clean_dos.txt"},
		{"short.txt", 12, "short.txt"},
		// max below the floor clamps to 8
		{"short.txt", 5, "sh...txt"},
	}
	for _, c := range cases {
		if got := LegendLabel(c.source, c.max); got != c.want {
			t.Fatalf("LegendLabel(%q, %d) = %q want %q", c.source, c.max, got, c.want)
		}
	}
	long := LegendLabel("very_long_descriptive_dos_file_name.txt", 16)
	if len(long) > 16 {
		t.Fatalf("truncated label too long: %q", long)
	}
	if long == "very_long_descriptive_dos_file_name.txt" {
		t.Fatal("expected truncation")
	}
}

func TestLegendLabel_MultiByteNames(t *testing.T) {
	got := LegendLabel("/data/αβγδεζηθικλμνξο_dos.txt", 12)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
	if utf8.RuneCountInString(got) > 12 {
		t.Fatalf("label too long: %q (%d runes)", got, utf8.RuneCountInString(got))
	}
	if !strings.Contains(got, "...") {
		t.Fatalf("expected truncation marker: %q", got)
	}
}
