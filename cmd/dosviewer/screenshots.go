package main

import (
	"bytes"
	"fmt"
	"image"
	png "image/png"
	"os"
	"path/filepath"

	"github.com/jhoekstra/dosplot/src/analysis"
	"github.com/jhoekstra/dosplot/src/dosfile"
	"github.com/jhoekstra/dosplot/src/render"
	"github.com/jhoekstra/dosplot/src/types"
)

// RunScreenshotsMode renders a curated set of plots and writes them as PNGs
// under outDir. It runs headlessly without creating a UI window. When no
// input file is given the synthetic sample profiles are used.
func RunScreenshotsMode(filePath, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}

	var s *types.Series
	if filePath != "" {
		var err error
		s, err = dosfile.ReadFile(filePath)
		if err != nil {
			return err
		}
	} else {
		s = dosfile.Sample("demo")
	}

	opts := types.DefaultPlotOptions()
	opts.Width, opts.Height = 1200, 700

	autoOpts := opts
	if min, max, err := analysis.AutoRange(s); err == nil {
		autoOpts.EnergyMin, autoOpts.EnergyMax = min, max
	}

	plainOpts := opts
	plainOpts.ShowGrid = false
	plainOpts.ShowFermi = false

	multi := []*types.Series{
		dosfile.Sample("clean"),
		dosfile.Sample("h-bridge"),
		dosfile.Sample("o-vacancy"),
	}
	multiOpts := opts
	multiOpts.Title = "Surface Comparison"

	toRender := []struct {
		name   string
		series []*types.Series
		opts   types.PlotOptions
	}{
		{"plot_default.png", []*types.Series{s}, opts},
		{"plot_auto_range.png", []*types.Series{s}, autoOpts},
		{"plot_plain.png", []*types.Series{s}, plainOpts},
		{"plot_comparison.png", multi, multiOpts},
	}

	for _, item := range toRender {
		filtered := make([]*types.Series, 0, len(item.series))
		for _, raw := range item.series {
			f, err := analysis.FilterRange(raw, item.opts.EnergyMin, item.opts.EnergyMax)
			if err != nil {
				return err
			}
			filtered = append(filtered, f)
		}
		img, err := render.Plot(filtered, item.opts)
		if err != nil {
			return fmt.Errorf("render %s: %w", item.name, err)
		}
		if err := writePNG(filepath.Join(outDir, item.name), img); err != nil {
			return err
		}
		fmt.Printf("[screenshots] wrote %s\n", filepath.Join(outDir, item.name))
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
