package uihelpers

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EnergyLimit bounds the accepted energy entries; values beyond it are
// almost certainly typos rather than physical energies.
const EnergyLimit = 1000.0

// ComputeChartDimensions applies the width/height clamp rules used for the
// plot canvas. Input: desired raw width (e.g. canvas width). Returns clamped
// width and height.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 800 {
		w = 800
	}
	h := int(float32(w) * 0.5)
	if h < 400 {
		h = 400
	}
	if h > 700 {
		h = 700
	}
	return w, h
}

// ParseEnergy parses one energy entry field.
func ParseEnergy(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", strings.TrimSpace(s))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", strings.TrimSpace(s))
	}
	if math.Abs(v) > EnergyLimit {
		return 0, fmt.Errorf("energy %g out of bounds (|E| <= %g eV)", v, EnergyLimit)
	}
	return v, nil
}

// ParseRangeEntries parses and validates the min/max entry fields as an
// energy window.
func ParseRangeEntries(minText, maxText string) (min, max float64, err error) {
	min, err = ParseEnergy(minText)
	if err != nil {
		return 0, 0, err
	}
	max, err = ParseEnergy(maxText)
	if err != nil {
		return 0, 0, err
	}
	if min >= max {
		return 0, 0, fmt.Errorf("min %g must be below max %g", min, max)
	}
	return min, max, nil
}

// FormatEnergy renders an energy value for an entry field, trimming
// trailing zeros.
func FormatEnergy(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
