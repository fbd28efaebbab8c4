// Package analysis provides the numeric operations behind DOS plots: range
// filtering, percentile based auto-ranging and summary statistics.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/jhoekstra/dosplot/src/types"
)

// ErrEmptySeries is returned by operations that need at least one data point.
var ErrEmptySeries = errors.New("series has no data points")

// FilterRange returns the points whose energy lies in the closed interval
// [min, max], preserving order. An empty result is valid; min >= max is not.
func FilterRange(s *types.Series, min, max float64) (*types.Series, error) {
	if min >= max {
		return nil, fmt.Errorf("invalid energy range: min %.3f >= max %.3f", min, max)
	}
	out := &types.Series{Source: s.Source}
	for i, e := range s.Energies {
		if e >= min && e <= max {
			out.Energies = append(out.Energies, e)
			out.Values = append(out.Values, s.Values[i])
		}
	}
	return out, nil
}

// Percentile computes the p-th percentile (0..100) of a with linear
// interpolation between closest ranks, matching the numpy convention the
// upstream tooling uses. a is not modified.
func Percentile(a []float64, p float64) float64 {
	if len(a) == 0 {
		return math.NaN()
	}
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	sorted := append([]float64(nil), a...)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// AutoRange returns the energy window holding the central 95% of the data:
// the 2.5th and 97.5th percentiles of the energy column.
func AutoRange(s *types.Series) (min, max float64, err error) {
	if s.Len() == 0 {
		return 0, 0, ErrEmptySeries
	}
	min = Percentile(s.Energies, 2.5)
	max = Percentile(s.Energies, 97.5)
	if max <= min {
		// Degenerate data (all identical energies); widen so a plot range exists.
		max = min + 1
	}
	return min, max, nil
}

// Summary holds the statistics block shown for a loaded curve.
type Summary struct {
	Points    int
	EnergyMin float64
	EnergyMax float64
	MinDOS    float64
	MaxDOS    float64
	MeanDOS   float64
	StdDOS    float64
	// FermiEnergy is the tabulated energy nearest 0 eV; FermiDOS the DOS there.
	FermiEnergy float64
	FermiDOS    float64
}

// Summarize computes summary statistics for a series.
func Summarize(s *types.Series) (Summary, error) {
	if s.Len() == 0 {
		return Summary{}, ErrEmptySeries
	}
	sum := Summary{
		Points:    s.Len(),
		EnergyMin: floats.Min(s.Energies),
		EnergyMax: floats.Max(s.Energies),
		MinDOS:    floats.Min(s.Values),
		MaxDOS:    floats.Max(s.Values),
		MeanDOS:   stat.Mean(s.Values, nil),
	}
	if s.Len() > 1 {
		sum.StdDOS = stat.StdDev(s.Values, nil)
	}
	fi := 0
	best := math.Abs(s.Energies[0])
	for i, e := range s.Energies[1:] {
		if d := math.Abs(e); d < best {
			best = d
			fi = i + 1
		}
	}
	sum.FermiEnergy = s.Energies[fi]
	sum.FermiDOS = s.Values[fi]
	return sum, nil
}

// LegendLabel derives a legend entry from a series source: the base name,
// truncated in the middle when longer than max runes.
func LegendLabel(source string, max int) string {
	if source == "" {
		return "DOS"
	}
	label := filepath.Base(source)
	if max < 8 {
		max = 8
	}
	runes := []rune(label)
	if len(runes) <= max {
		return label
	}
	keep := max - 3
	left := keep / 2
	right := keep - left
	return string(runes[:left]) + "..." + string(runes[len(runes)-right:])
}
