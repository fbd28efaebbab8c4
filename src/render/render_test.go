package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jhoekstra/dosplot/src/types"
)

func testSeries() *types.Series {
	s := &types.Series{Source: "test_dos.txt"}
	for i := 0; i < 50; i++ {
		e := -5 + float64(i)*0.2
		s.Energies = append(s.Energies, e)
		s.Values = append(s.Values, 1+0.5*e*e/25)
	}
	return s
}

func TestRenderPNG_Decodable(t *testing.T) {
	opts := types.DefaultPlotOptions()
	opts.Width, opts.Height = 640, 480
	var buf bytes.Buffer
	if err := RenderPNG(&buf, []*types.Series{testSeries()}, opts); err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 640 || b.Dy() != 480 {
		t.Fatalf("unexpected dimensions %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderSVG_ProducesMarkup(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSVG(&buf, []*types.Series{testSeries()}, types.DefaultPlotOptions()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Fatalf("output does not look like SVG: %q", buf.String()[:min(80, buf.Len())])
	}
}

func TestRender_EmptySeriesStillDraws(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPNG(&buf, nil, types.DefaultPlotOptions()); err != nil {
		t.Fatalf("render with no series: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestRender_SinglePointSeries(t *testing.T) {
	s := &types.Series{Source: "one", Energies: []float64{0.5}, Values: []float64{2}}
	var buf bytes.Buffer
	if err := RenderPNG(&buf, []*types.Series{s}, types.DefaultPlotOptions()); err != nil {
		t.Fatalf("render single point: %v", err)
	}
}

func TestWriteFile_ExtensionDispatch(t *testing.T) {
	dir := t.TempDir()
	series := []*types.Series{testSeries()}
	opts := types.DefaultPlotOptions()

	pngPath := filepath.Join(dir, "out.png")
	if err := WriteFile(pngPath, series, opts); err != nil {
		t.Fatalf("write png: %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Fatalf("png file not decodable: %v", err)
	}

	svgPath := filepath.Join(dir, "out.svg")
	if err := WriteFile(svgPath, series, opts); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Fatal("svg file missing markup")
	}

	if err := WriteFile(filepath.Join(dir, "out.pdf"), series, opts); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestPlot_ReturnsImage(t *testing.T) {
	opts := types.DefaultPlotOptions()
	opts.Width, opts.Height = 320, 240
	img, err := Plot([]*types.Series{testSeries()}, opts)
	if err != nil {
		t.Fatalf("plot: %v", err)
	}
	if img.Bounds().Dx() != 320 {
		t.Fatalf("width %d want 320", img.Bounds().Dx())
	}
}

func TestNiceAxisBounds(t *testing.T) {
	lo, hi := niceAxisBounds(0.3, 4.7)
	if lo > 0.3 || hi < 4.7 {
		t.Fatalf("bounds [%g, %g] must contain the data", lo, hi)
	}
	lo, hi = niceAxisBounds(2, 2)
	if hi <= lo {
		t.Fatalf("equal inputs should still give a span: [%g, %g]", lo, hi)
	}
}

func TestNiceTicks(t *testing.T) {
	ticks := niceTicks(0, 10, 6)
	if len(ticks) < 3 {
		t.Fatalf("expected several ticks, got %d", len(ticks))
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i].Value <= ticks[i-1].Value {
			t.Fatalf("ticks not increasing at %d", i)
		}
	}
	if niceTicks(0, 10, 1) != nil {
		t.Fatal("n < 2 should give nil")
	}
}

func TestPlaceholderAndHint(t *testing.T) {
	img := Placeholder(200, 100, "no data loaded")
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 100 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	if got := DrawHint(nil, "x"); got != nil {
		t.Fatal("nil image should pass through")
	}
	base := Blank(50, 50)
	if got := DrawHint(base, "  "); got != base {
		t.Fatal("blank text should pass the image through")
	}
}
