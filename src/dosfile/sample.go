package dosfile

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/jhoekstra/dosplot/src/types"
)

// gaussian is one component of a synthetic DOS profile.
type gaussian struct {
	amp, center, width float64
}

// sampleProfiles are the demo surfaces shipped for comparison plots. Shapes
// mimic typical clean/adsorbate/vacancy surface DOS curves.
var sampleProfiles = map[string][]gaussian{
	"clean":     {{1.0, -3, 2}, {0.5, 2, 1.5}},
	"h-bridge":  {{0.8, -1, 1.5}, {0.6, 3, 2}},
	"o-vacancy": {{1.2, -2, 1.8}, {0.4, 1, 1.2}},
	"demo":      {{1.0, -5, 2}, {0.8, -2, 1.5}, {0.6, 1, 1}, {0.4, 4, 2}},
}

// SampleNames lists the available synthetic profiles.
func SampleNames() []string {
	return []string{"clean", "h-bridge", "o-vacancy", "demo"}
}

// Sample generates a synthetic DOS series with 200 points over -10..10 eV.
// Unknown names fall back to the demo profile.
func Sample(name string) *types.Series {
	profile, ok := sampleProfiles[strings.ToLower(name)]
	if !ok {
		profile = sampleProfiles["demo"]
		name = "demo"
	}
	const n = 200
	energies := make([]float64, n)
	floats.Span(energies, -10, 10)
	values := make([]float64, n)
	for i, e := range energies {
		v := 0.0
		for _, g := range profile {
			d := e - g.center
			v += g.amp * math.Exp(-d*d/g.width)
		}
		values[i] = v
	}
	return &types.Series{Source: "sample:" + name, Energies: energies, Values: values}
}

// WriteSampleFiles emits the three comparison sample files under dir and
// returns their paths.
func WriteSampleFiles(dir string) ([]string, error) {
	names := []string{"clean", "h-bridge", "o-vacancy"}
	paths := make([]string, 0, len(names))
	for _, name := range names {
		s := Sample(name)
		path := filepath.Join(dir, fmt.Sprintf("%s_dos.txt", strings.ReplaceAll(name, "-", "_")))
		if err := WriteTableFile(path, s); err != nil {
			return nil, fmt.Errorf("write sample %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
