package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestDOS(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dos.txt")
	var b strings.Builder
	b.WriteString("# Energy DOS\n")
	for i := 0; i < 40; i++ {
		e := -8 + float64(i)*0.4
		fmt.Fprintf(&b, "%.4f %.4f\n", e, 1+e*e/50)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestParseRange(t *testing.T) {
	cases := []struct {
		in       string
		min, max float64
		wantErr  bool
	}{
		{"-5:5", -5, 5, false},
		{" -2.5 : 7.5 ", -2.5, 7.5, false},
		{"5:-5", 0, 0, true},
		{"3:3", 0, 0, true},
		{"abc:5", 0, 0, true},
		{"5", 0, 0, true},
	}
	for _, c := range cases {
		min, max, err := parseRange(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("parseRange(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseRange(%q): %v", c.in, err)
		}
		if min != c.min || max != c.max {
			t.Fatalf("parseRange(%q) = [%g, %g] want [%g, %g]", c.in, min, max, c.min, c.max)
		}
	}
}

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("1600x900")
	if err != nil || w != 1600 || h != 900 {
		t.Fatalf("parseSize: %d %d %v", w, h, err)
	}
	if _, _, err := parseSize("1600X900"); err != nil {
		t.Fatalf("uppercase separator should parse: %v", err)
	}
	for _, bad := range []string{"1600", "0x900", "-5x5", "axb"} {
		if _, _, err := parseSize(bad); err == nil {
			t.Fatalf("parseSize(%q): expected error", bad)
		}
	}
}

func TestPlotFlagsOptions(t *testing.T) {
	f := &plotFlags{rangeSpec: "-3:3", size: "800x600", color: "red", noFermi: true}
	opts, err := f.options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.EnergyMin != -3 || opts.EnergyMax != 3 {
		t.Fatalf("range not applied: [%g, %g]", opts.EnergyMin, opts.EnergyMax)
	}
	if opts.Width != 800 || opts.Height != 600 {
		t.Fatalf("size not applied: %dx%d", opts.Width, opts.Height)
	}
	if opts.LineColor != "red" || opts.ShowFermi || !opts.ShowGrid {
		t.Fatalf("flags not applied: %+v", opts)
	}
	if _, err := (&plotFlags{rangeSpec: "9:1"}).options(); err == nil {
		t.Fatal("inverted range should error")
	}
}

func TestPlotSingle_WritesImageAndCSV(t *testing.T) {
	in := writeTestDOS(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "plot.png")
	csv := filepath.Join(dir, "plot.csv")
	err := Execute([]string{"plot", "single", in, "-r", "-5:5", "-o", out, "--export-csv", csv})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Fatalf("output image missing or empty: %v", err)
	}
	data, err := os.ReadFile(csv)
	if err != nil {
		t.Fatalf("csv missing: %v", err)
	}
	if !strings.HasPrefix(string(data), "Energy(eV),DOS(states/eV)") {
		t.Fatal("csv header missing")
	}
}

func TestPlotMulti_WritesImage(t *testing.T) {
	a := writeTestDOS(t)
	b := writeTestDOS(t)
	out := filepath.Join(t.TempDir(), "cmp.svg")
	if err := Execute([]string{"plot", "multi", a, b, "-c", "viridis", "-o", out}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Fatal("expected svg output")
	}
}

func TestQuick_AutoRange(t *testing.T) {
	in := writeTestDOS(t)
	out := filepath.Join(t.TempDir(), "quick.png")
	if err := Execute([]string{"quick", in, "-o", out}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Fatalf("output image missing or empty: %v", err)
	}
}

func TestStats_Runs(t *testing.T) {
	if err := Execute([]string{"stats", writeTestDOS(t)}); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestSample_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	if err := Execute([]string{"sample", "-d", dir}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 sample files got %d", len(entries))
	}
}

func TestMissingFileFails(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.png")
	if err := Execute([]string{"plot", "single", "/no/such/file.txt", "-o", out}); err == nil {
		t.Fatal("expected error for missing input")
	}
	if err := Execute([]string{"quick", "/no/such/file.txt"}); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestBadOutputExtensionFails(t *testing.T) {
	in := writeTestDOS(t)
	if err := Execute([]string{"plot", "single", in, "-o", filepath.Join(t.TempDir(), "x.gif")}); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
