package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	png "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/jhoekstra/dosplot/src/analysis"
	"github.com/jhoekstra/dosplot/src/dosfile"
	"github.com/jhoekstra/dosplot/src/render"
	"github.com/jhoekstra/dosplot/src/types"
	"github.com/jhoekstra/dosplot/cmd/dosviewer/uihelpers"
)

type loadResult struct {
	gen    int64
	path   string
	series *types.Series
	err    error
}

type uiState struct {
	app      fyne.App
	window   fyne.Window
	filePath string

	series *types.Series
	opts   types.PlotOptions

	// widgets
	plotCanvas *canvas.Image
	statsLabel *widget.Label
	fileLabel  *widget.Label
	status     *widget.Label
	minEntry   *widget.Entry
	maxEntry   *widget.Entry

	// background load results are drained by the UI ticker
	loadCh chan loadResult
	// incremented per startLoad; results from older loads are dropped
	loadGen atomic.Int64
	// set when controls change; the ticker redraws once it sees it
	dirty atomic.Bool
}

// offerLoad puts res into loadCh, displacing any undelivered older result so
// the latest load always wins.
func (state *uiState) offerLoad(res loadResult) {
	for {
		select {
		case state.loadCh <- res:
			return
		default:
			select {
			case <-state.loadCh:
			default:
			}
		}
	}
}

// isStale reports whether a newer load was started after res.
func (state *uiState) isStale(res loadResult) bool {
	return res.gen != state.loadGen.Load()
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var fileFlag string
	var screenshotsDir string
	flag.StringVar(&fileFlag, "file", "", "Path to a two-column DOS file to open")
	flag.StringVar(&screenshotsDir, "screenshots", "", "Render charts headlessly into this directory and exit")
	flag.Parse()

	if screenshotsDir != "" {
		if err := RunScreenshotsMode(fileFlag, screenshotsDir); err != nil {
			fmt.Fprintf(os.Stderr, "dosviewer: %v\n", err)
			os.Exit(1)
		}
		return
	}

	a := app.NewWithID("com.dosplot.viewer")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow("DOS Viewer")
	w.Resize(fyne.NewSize(1100, 800))

	settings := types.DefaultSettings()
	if path, err := types.DefaultSettingsPath(); err == nil {
		if loaded, err := types.LoadSettings(path); err == nil {
			settings = loaded
		} else {
			dosfile.Warnf("load settings: %v", err)
		}
	}
	state := &uiState{
		app:      a,
		window:   w,
		filePath: fileFlag,
		opts:     settings.Plot,
		loadCh:   make(chan loadResult, 1),
	}
	if state.filePath == "" {
		state.filePath = settings.LastFile
	}

	// top bar controls
	state.fileLabel = widget.NewLabel(truncatePath(state.filePath, 60))
	state.status = widget.NewLabel("no file loaded")
	state.statsLabel = widget.NewLabel("")

	state.minEntry = widget.NewEntry()
	state.minEntry.SetText(uihelpers.FormatEnergy(state.opts.EnergyMin))
	state.maxEntry = widget.NewEntry()
	state.maxEntry.SetText(uihelpers.FormatEnergy(state.opts.EnergyMax))
	// Debounced: typing flips the dirty flag, the ticker applies it shortly after.
	state.minEntry.OnChanged = func(string) { state.dirty.Store(true) }
	state.maxEntry.OnChanged = func(string) { state.dirty.Store(true) }

	// Sliders mirror into the entries; the entries stay the source of truth.
	minSlider := widget.NewSlider(-20, 20)
	minSlider.Step = 0.5
	minSlider.Value = state.opts.EnergyMin
	minSlider.OnChanged = func(v float64) { state.minEntry.SetText(uihelpers.FormatEnergy(v)) }
	maxSlider := widget.NewSlider(-20, 20)
	maxSlider.Step = 0.5
	maxSlider.Value = state.opts.EnergyMax
	maxSlider.OnChanged = func(v float64) { state.maxEntry.SetText(uihelpers.FormatEnergy(v)) }
	widthSlider := widget.NewSlider(1, 5)
	widthSlider.Step = 0.5
	widthSlider.Value = state.opts.LineWidth
	widthSlider.OnChanged = func(v float64) {
		state.opts.LineWidth = v
		state.dirty.Store(true)
	}

	colorSelect := widget.NewSelect(render.ColorNames(), nil)
	colorSelect.Selected = state.opts.LineColor
	fermiChk := widget.NewCheck("Fermi level", nil)
	fermiChk.SetChecked(state.opts.ShowFermi)
	gridChk := widget.NewCheck("Grid", nil)
	gridChk.SetChecked(state.opts.ShowGrid)
	sampleSelect := widget.NewSelect(dosfile.SampleNames(), nil)
	sampleSelect.PlaceHolder = "Sample…"

	autoBtn := widget.NewButton("Auto Range", func() {
		if state.series == nil || state.series.Len() == 0 {
			return
		}
		min, max, err := analysis.AutoRange(state.series)
		if err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		setRangeEntries(state, min, max)
	})
	zoomBtn := widget.NewButton("Zoom to Data", func() {
		if state.series == nil || state.series.Len() == 0 {
			return
		}
		sum, err := analysis.Summarize(state.series)
		if err != nil {
			return
		}
		setRangeEntries(state, sum.EnergyMin, sum.EnergyMax)
	})
	resetBtn := widget.NewButton("Reset", func() {
		def := types.DefaultPlotOptions()
		state.opts = def
		colorSelect.SetSelected(def.LineColor)
		fermiChk.SetChecked(def.ShowFermi)
		gridChk.SetChecked(def.ShowGrid)
		setRangeEntries(state, def.EnergyMin, def.EnergyMax)
	})

	// plot canvas
	state.plotCanvas = canvas.NewImageFromImage(render.Placeholder(1000, 500, "Open a DOS file to begin"))
	state.plotCanvas.FillMode = canvas.ImageFillContain
	state.plotCanvas.SetMinSize(fyne.NewSize(900, 500))

	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(state) }),
		widget.NewButton("Reload", func() { startLoad(state, state.filePath) }),
		widget.NewLabel("Range (eV):"), state.minEntry, widget.NewLabel(".."), state.maxEntry,
		autoBtn, zoomBtn, resetBtn,
		widget.NewLabel("Color:"), colorSelect,
		fermiChk, gridChk,
		sampleSelect,
		widget.NewLabel("File:"), state.fileLabel,
	)

	sliderRow := container.NewGridWithColumns(3,
		container.NewBorder(nil, nil, widget.NewLabel("Min:"), nil, minSlider),
		container.NewBorder(nil, nil, widget.NewLabel("Max:"), nil, maxSlider),
		container.NewBorder(nil, nil, widget.NewLabel("Line px:"), nil, widthSlider),
	)

	plotScroll := container.NewVScroll(state.plotCanvas)
	plotScroll.SetMinSize(fyne.NewSize(900, 600))
	tabs := container.NewAppTabs(
		container.NewTabItem("Plot", plotScroll),
		container.NewTabItem("Stats", container.NewVScroll(state.statsLabel)),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	tabs.OnSelected = func(*container.TabItem) {
		a.Preferences().SetInt("selectedTabIndex", tabs.SelectedIndex())
	}
	content := container.NewBorder(container.NewVBox(top, sliderRow), state.status, nil, nil, tabs)
	w.SetContent(content)

	// Wire callbacks now that the canvas exists.
	colorSelect.OnChanged = func(v string) {
		state.opts.LineColor = v
		state.dirty.Store(true)
	}
	fermiChk.OnChanged = func(b bool) {
		state.opts.ShowFermi = b
		state.dirty.Store(true)
	}
	gridChk.OnChanged = func(b bool) {
		state.opts.ShowGrid = b
		state.dirty.Store(true)
	}
	sampleSelect.OnChanged = func(name string) {
		if name == "" {
			return
		}
		s := dosfile.Sample(name)
		state.series = s
		state.filePath = ""
		state.fileLabel.SetText(s.Source)
		state.status.SetText(fmt.Sprintf("%s: %d points", s.Source, s.Len()))
		state.dirty.Store(true)
	}

	// Drains background loads, applies debounced control changes and follows
	// window resizes. All UI mutation goes through fyne.Do.
	done := make(chan struct{})
	w.SetOnClosed(func() {
		saveState(state)
		close(done)
	})
	go func() {
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		prevW := 0
		for {
			select {
			case <-done:
				return
			case res := <-state.loadCh:
				fyne.Do(func() { applyLoad(state, res) })
			case <-t.C:
				c := w.Canvas()
				if c == nil {
					continue
				}
				curW := int(c.Size().Width)
				resized := curW != prevW && prevW != 0
				prevW = curW
				if resized || state.dirty.Swap(false) {
					fyne.Do(func() { redrawPlot(state) })
				}
			}
		}
	}()

	buildMenus(state)
	if idx := a.Preferences().IntWithFallback("selectedTabIndex", 0); idx > 0 && idx < len(tabs.Items) {
		tabs.SelectIndex(idx)
	}
	if state.filePath != "" {
		state.fileLabel.SetText(truncatePath(state.filePath, 60))
		startLoad(state, state.filePath)
	}

	w.ShowAndRun()
}

func buildMenus(state *uiState) {
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(truncatePath(f, 60), func() {
			startLoad(state, f)
		}))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(state); buildMenus(state) })
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Reload", func() { startLoad(state, state.filePath) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Plot…", func() { exportPlotPNG(state) }),
		fyne.NewMenuItem("Export CSV…", func() { exportCSV(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, recentMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { startLoad(state, state.filePath) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { startLoad(state, state.filePath) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		startLoad(state, rc.URI().Path())
	}, state.window)
	d.Show()
}

// startLoad parses the file off the UI thread; the result lands in loadCh.
func startLoad(state *uiState, path string) {
	if path == "" {
		return
	}
	state.status.SetText("loading " + truncatePath(path, 60) + "…")
	gen := state.loadGen.Add(1)
	go func() {
		start := time.Now()
		s, err := dosfile.ReadFile(path)
		dosfile.TimeTrack(start, "load "+path)
		state.offerLoad(loadResult{gen: gen, path: path, series: s, err: err})
	}()
}

func applyLoad(state *uiState, res loadResult) {
	if state.isStale(res) {
		return
	}
	if res.err != nil {
		state.status.SetText("load failed: " + res.err.Error())
		dialog.ShowError(res.err, state.window)
		return
	}
	state.series = res.series
	state.filePath = res.path
	state.fileLabel.SetText(truncatePath(res.path, 60))
	state.status.SetText(fmt.Sprintf("%s: %d points", filepath.Base(res.path), res.series.Len()))
	addRecentFile(state, res.path)
	buildMenus(state)
	saveState(state)
	redrawPlot(state)
}

// redrawPlot re-renders the chart from the current series and options.
func redrawPlot(state *uiState) {
	if state.plotCanvas == nil {
		return
	}
	min, max, err := uihelpers.ParseRangeEntries(state.minEntry.Text, state.maxEntry.Text)
	if err != nil {
		state.status.SetText("range: " + err.Error())
		return
	}
	state.opts.EnergyMin, state.opts.EnergyMax = min, max

	w, h := chartSize(state)
	state.opts.Width, state.opts.Height = w, h

	var img image.Image
	if state.series == nil {
		img = render.Placeholder(w, h, "Open a DOS file to begin")
	} else {
		filtered, ferr := analysis.FilterRange(state.series, min, max)
		if ferr != nil {
			state.status.SetText(ferr.Error())
			return
		}
		img, err = render.Plot([]*types.Series{filtered}, state.opts)
		if err != nil {
			dosfile.Errorf("render: %v", err)
			img = render.Placeholder(w, h, "render failed: "+err.Error())
		}
		state.status.SetText(fmt.Sprintf("%s: %d of %d points in [%.2f, %.2f]",
			sourceLabel(state), filtered.Len(), state.series.Len(), min, max))
	}
	state.plotCanvas.Image = img
	state.plotCanvas.SetMinSize(fyne.NewSize(float32(w), float32(h)))
	state.plotCanvas.Refresh()
	updateStats(state)
}

func sourceLabel(state *uiState) string {
	if state.filePath != "" {
		return filepath.Base(state.filePath)
	}
	if state.series != nil {
		return state.series.Source
	}
	return "?"
}

func updateStats(state *uiState) {
	if state.statsLabel == nil {
		return
	}
	if state.series == nil || state.series.Len() == 0 {
		state.statsLabel.SetText("No data loaded.")
		return
	}
	sum, err := analysis.Summarize(state.series)
	if err != nil {
		state.statsLabel.SetText(err.Error())
		return
	}
	state.statsLabel.SetText(fmt.Sprintf(
		"Source: %s\nPoints: %d\nEnergy range: %.4f .. %.4f eV\nDOS min/max: %.6f / %.6f states/eV\nDOS mean: %.6f (std %.6f)\nDOS near E_F: %.6f states/eV at %.4f eV",
		sourceLabel(state), sum.Points, sum.EnergyMin, sum.EnergyMax,
		sum.MinDOS, sum.MaxDOS, sum.MeanDOS, sum.StdDOS, sum.FermiDOS, sum.FermiEnergy))
}

func setRangeEntries(state *uiState, min, max float64) {
	state.minEntry.SetText(uihelpers.FormatEnergy(min))
	state.maxEntry.SetText(uihelpers.FormatEnergy(max))
	state.dirty.Store(true)
}

// chartSize follows the window width so the plot uses the available space.
func chartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return 1000, 500
	}
	raw := int(state.window.Canvas().Size().Width*0.95) - 12
	return uihelpers.ComputeChartDimensions(raw)
}

func exportPlotPNG(state *uiState) {
	if state.plotCanvas == nil || state.plotCanvas.Image == nil {
		dialog.ShowInformation("Export", "No plot to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, state.plotCanvas.Image); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName("dos_plot.png")
	fs.Show()
}

func exportCSV(state *uiState) {
	if state.series == nil || state.series.Len() == 0 {
		dialog.ShowInformation("Export", "No data to export.", state.window)
		return
	}
	filtered, err := analysis.FilterRange(state.series, state.opts.EnergyMin, state.opts.EnergyMax)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := dosfile.WriteCSV(wc, filtered); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName("dos_data.csv")
	fs.Show()
}

// recent files helpers
func recentFiles(state *uiState) []string {
	raw := state.app.Preferences().StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(state *uiState, path string) {
	list := recentFiles(state)
	filtered := []string{path}
	for _, f := range list {
		if f != path && len(filtered) < 10 {
			filtered = append(filtered, f)
		}
	}
	state.app.Preferences().SetString("recentFiles", strings.Join(filtered, "\n"))
}

func clearRecentFiles(state *uiState) {
	state.app.Preferences().SetString("recentFiles", "")
}

// saveState persists the plot options and last file to the settings file.
func saveState(state *uiState) {
	if state == nil {
		return
	}
	path, err := types.DefaultSettingsPath()
	if err != nil {
		dosfile.Warnf("save settings: %v", err)
		return
	}
	s := types.Settings{Plot: state.opts, LastFile: state.filePath}
	if err := types.SaveSettings(path, s); err != nil {
		dosfile.Warnf("save settings: %v", err)
	}
}

// utils
func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
