// Package types holds the shared data structures passed between the file
// readers, the analysis helpers and the chart renderers.
package types

// Series is one DOS curve: parallel energy/value slices of equal length,
// ordered as the points appeared in the source file.
type Series struct {
	// Source is the path or label the curve was loaded from. Used for legends.
	Source   string
	Energies []float64
	Values   []float64
}

// Len returns the number of data points.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Energies)
}

// PlotOptions captures everything that influences how a chart is drawn.
// The zero value is not useful; start from DefaultPlotOptions.
type PlotOptions struct {
	EnergyMin float64 `yaml:"energy_min"`
	EnergyMax float64 `yaml:"energy_max"`

	LineWidth float64 `yaml:"line_width"`
	// LineColor names the single-series line color (blue, red, green, black,
	// purple, orange, gray). Multi-series plots use Scheme instead.
	LineColor string `yaml:"line_color"`
	// Scheme selects the multi-series palette: default, rainbow, viridis, grayscale.
	Scheme string `yaml:"scheme"`

	ShowFermi  bool    `yaml:"show_fermi"`
	FermiColor string  `yaml:"fermi_color"`
	ShowGrid   bool    `yaml:"show_grid"`
	GridAlpha  float64 `yaml:"grid_alpha"`

	Title  string `yaml:"title,omitempty"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// DefaultPlotOptions returns the conventional DOS plot defaults: -7..7 eV
// window, blue 2px line, red dashed Fermi guide at 0 eV, light grid.
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{
		EnergyMin:  -7,
		EnergyMax:  7,
		LineWidth:  2,
		LineColor:  "blue",
		Scheme:     "default",
		ShowFermi:  true,
		FermiColor: "red",
		ShowGrid:   true,
		GridAlpha:  0.3,
		Width:      1200,
		Height:     800,
	}
}
