package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoekstra/dosplot/src/types"
)

// parseRange parses "MIN:MAX" into an energy window.
func parseRange(s string) (min, max float64, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid range %q (expected MIN:MAX, e.g. -5:5)", s)
	}
	min, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range minimum %q", parts[0])
	}
	max, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range maximum %q", parts[1])
	}
	if min >= max {
		return 0, 0, fmt.Errorf("invalid range: min %.3f must be below max %.3f", min, max)
	}
	return min, max, nil
}

// parseSize parses "WxH" into pixel dimensions.
func parseSize(s string) (w, h int, err error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH, e.g. 1200x800)", s)
	}
	w, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err == nil {
		h, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	if err != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q (expected positive WxH)", s)
	}
	return w, h, nil
}

// plotFlags are the rendering flags shared by the plotting commands.
type plotFlags struct {
	rangeSpec string
	output    string
	color     string
	scheme    string
	lineWidth float64
	size      string
	title     string
	noFermi   bool
	noGrid    bool
}

// options turns the flag values into plot options, starting from defaults.
func (f *plotFlags) options() (types.PlotOptions, error) {
	opts := types.DefaultPlotOptions()
	if f.rangeSpec != "" {
		min, max, err := parseRange(f.rangeSpec)
		if err != nil {
			return opts, err
		}
		opts.EnergyMin, opts.EnergyMax = min, max
	}
	if f.size != "" {
		w, h, err := parseSize(f.size)
		if err != nil {
			return opts, err
		}
		opts.Width, opts.Height = w, h
	}
	if f.color != "" {
		opts.LineColor = f.color
	}
	if f.scheme != "" {
		opts.Scheme = f.scheme
	}
	if f.lineWidth > 0 {
		opts.LineWidth = f.lineWidth
	}
	opts.Title = f.title
	opts.ShowFermi = !f.noFermi
	opts.ShowGrid = !f.noGrid
	return opts, nil
}
