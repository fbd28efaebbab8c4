// Package render turns DOS series into line charts via go-chart. Callers pass
// already-filtered series; the X axis is pinned to the option range and the Y
// axis auto-scales to the data with rounded bounds.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	png "image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jhoekstra/dosplot/src/analysis"
	"github.com/jhoekstra/dosplot/src/types"
)

const legendLabelMax = 28

// Plot renders the series as a PNG-backed image. Series with no points in
// range are dropped; when nothing remains a placeholder image is returned so
// the caller always has something to show.
func Plot(series []*types.Series, opts types.PlotOptions) (image.Image, error) {
	var buf bytes.Buffer
	if err := RenderPNG(&buf, series, opts); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode rendered chart: %w", err)
	}
	return img, nil
}

// RenderPNG renders the chart as PNG to w.
func RenderPNG(w io.Writer, series []*types.Series, opts types.PlotOptions) error {
	return renderTo(w, series, opts, chart.PNG)
}

// RenderSVG renders the chart as SVG to w.
func RenderSVG(w io.Writer, series []*types.Series, opts types.PlotOptions) error {
	return renderTo(w, series, opts, chart.SVG)
}

// WriteFile renders to path, picking the encoder from the extension
// (.png or .svg).
func WriteFile(path string, series []*types.Series, opts types.PlotOptions) error {
	var render func(io.Writer, []*types.Series, types.PlotOptions) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		render = RenderPNG
	case ".svg":
		render = RenderSVG
	default:
		return fmt.Errorf("unsupported output format %q (use .png or .svg)", filepath.Ext(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := render(f, series, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func renderTo(w io.Writer, series []*types.Series, opts types.PlotOptions, rp chart.RendererProvider) error {
	ch := buildChart(series, opts)
	if err := ch.Render(rp, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func dim(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

// buildChart assembles the chart.Chart.
func buildChart(series []*types.Series, opts types.PlotOptions) chart.Chart {
	var drawn []chart.Series
	minY := math.MaxFloat64
	maxY := -math.MaxFloat64

	colors := SchemeColors(opts.Scheme, len(series))
	for i, s := range series {
		if s.Len() == 0 {
			continue
		}
		col := colors[i]
		if len(series) == 1 {
			col = NamedColor(opts.LineColor)
		}
		xs := s.Energies
		ys := s.Values
		if len(xs) == 1 {
			// go-chart needs a non-zero X span; duplicate the lone point.
			xs = []float64{xs[0], xs[0] + 1e-3}
			ys = []float64{ys[0], ys[0]}
		}
		for _, v := range ys {
			if v < minY {
				minY = v
			}
			if v > maxY {
				maxY = v
			}
		}
		drawn = append(drawn, chart.ContinuousSeries{
			Name:    analysis.LegendLabel(s.Source, legendLabelMax),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: strokeWidth(opts.LineWidth),
			},
		})
	}
	noData := len(drawn) == 0
	if noData {
		// go-chart cannot render an empty series list; draw an invisible
		// baseline across the range so the frame and axes still appear.
		minY, maxY = 0, 1
		drawn = append(drawn, chart.ContinuousSeries{
			XValues: []float64{opts.EnergyMin, opts.EnergyMax},
			YValues: []float64{0, 0},
			Style:   chart.Style{StrokeColor: drawing.Color{}, StrokeWidth: 0.01},
		})
	}

	nMin, nMax := niceAxisBounds(minY, maxY)
	if nMin > 0 {
		nMin = 0 // DOS curves read best with a zero baseline when all-positive
	}

	if opts.ShowFermi && opts.EnergyMin <= 0 && opts.EnergyMax >= 0 {
		drawn = append(drawn, chart.ContinuousSeries{
			Name:    "Fermi Level",
			XValues: []float64{0, 0},
			YValues: []float64{nMin, nMax},
			Style: chart.Style{
				StrokeColor:     NamedColor(opts.FermiColor),
				StrokeWidth:     strokeWidth(opts.LineWidth),
				StrokeDashArray: []float64{5, 5},
			},
		})
	}

	gridStyle := chart.Style{Hidden: true}
	if opts.ShowGrid {
		alpha := opts.GridAlpha
		if alpha <= 0 || alpha > 1 {
			alpha = 0.3
		}
		gridStyle = chart.Style{
			StrokeColor: drawing.Color{R: 110, G: 110, B: 110, A: uint8(alpha * 255)},
			StrokeWidth: 1,
		}
	}

	title := opts.Title
	if title == "" {
		title = "Density of States"
	}
	if noData {
		title += " (no data in selected range)"
	}

	ch := chart.Chart{
		Title:      title,
		Width:      dim(opts.Width, 1200),
		Height:     dim(opts.Height, 800),
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:           "Energy (eV)",
			Range:          &chart.ContinuousRange{Min: opts.EnergyMin, Max: opts.EnergyMax},
			GridMajorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Name:           "DOS (states/eV)",
			Range:          &chart.ContinuousRange{Min: nMin, Max: nMax},
			Ticks:          niceTicks(nMin, nMax, 6),
			GridMajorStyle: gridStyle,
		},
		Series: drawn,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

func strokeWidth(w float64) float64 {
	if w <= 0 {
		return 2
	}
	return w
}

// niceAxisBounds expands [min,max] by a small margin and rounds to "nice"
// numbers for readability.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	pad := span * 0.05
	if pad <= 0 {
		pad = 1
	}
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// niceTicks generates up to n tick marks between [min, max] using nice
// increments (1, 2, 2.5, 5 scaled by powers of ten).
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil((max - min) / step)
		if count < 2 {
			count = 2
		}
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	ticks := []chart.Tick{}
	for v := start; v <= end+bestStep/2; v += bestStep {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	return ticks
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// Blank returns a dark blank image used as a fallback when rendering fails.
func Blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 18, G: 18, B: 18, A: 255})
		}
	}
	return img
}

// Placeholder returns a blank image with a message strip.
func Placeholder(w, h int, msg string) image.Image {
	return DrawHint(Blank(w, h), msg)
}

// DrawHint draws a small text strip onto the image near the bottom-left.
func DrawHint(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 6
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	shadowCol := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 180})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	drShadow := &font.Drawer{Dst: rgba, Src: shadowCol, Face: face, Dot: fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y + 1)}}
	drShadow.DrawString(text)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}
