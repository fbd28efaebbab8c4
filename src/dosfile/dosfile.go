// Package dosfile reads and writes DOS data files.
//
// The input format is the two-column text emitted by electronic-structure
// codes: whitespace-separated energy and DOS value per line, full-line
// comments starting with '#'. Parsing is best-effort: lines that do not yield
// two floats are skipped, so a file with N well-formed lines always produces
// exactly N points.
package dosfile

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jhoekstra/dosplot/src/types"
)

// Read parses DOS data from r. source is recorded as the series label.
func Read(r io.Reader, source string) (*types.Series, error) {
	s := &types.Series{Source: source}
	skipped := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			skipped++
			continue
		}
		energy, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			skipped++
			continue
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			skipped++
			continue
		}
		s.Energies = append(s.Energies, energy)
		s.Values = append(s.Values, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", source, err)
	}
	if skipped > 0 {
		Debugf("%s: skipped %d malformed line(s)", source, skipped)
	}
	return s, nil
}

// ReadFile parses a DOS file from disk.
func ReadFile(path string) (*types.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open DOS file: %w", err)
	}
	defer f.Close()
	return Read(f, path)
}

// ReadAll loads several DOS files for a comparison plot. The first failure
// aborts the whole load; partial overlays are more confusing than an error.
func ReadAll(paths []string) ([]*types.Series, error) {
	out := make([]*types.Series, 0, len(paths))
	for _, p := range paths {
		s, err := ReadFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// WriteCSV writes a series as CSV with the conventional header.
func WriteCSV(w io.Writer, s *types.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Energy(eV)", "DOS(states/eV)"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range s.Energies {
		rec := []string{
			strconv.FormatFloat(s.Energies[i], 'f', 6, 64),
			strconv.FormatFloat(s.Values[i], 'f', 6, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes a series as a CSV file.
func WriteCSVFile(path string, s *types.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := WriteCSV(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV parses a CSV export back into a series. The header row is optional.
func ReadCSV(r io.Reader, source string) (*types.Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	s := &types.Series{Source: source}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv %s: %w", source, err)
		}
		if len(rec) < 2 {
			continue
		}
		energy, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			continue // header or junk row
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			continue
		}
		s.Energies = append(s.Energies, energy)
		s.Values = append(s.Values, value)
	}
	return s, nil
}

// ReadCSVFile parses a CSV export from disk.
func ReadCSVFile(path string) (*types.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, path)
}

// WriteTable writes a series as tab-separated text with a header line,
// readable both by spreadsheets and by Read (the header is skipped as junk).
func WriteTable(w io.Writer, s *types.Series) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "# Energy(eV)\tDOS(states/eV)"); err != nil {
		return err
	}
	for i := range s.Energies {
		if _, err := fmt.Fprintf(bw, "%.6f\t%.6f\n", s.Energies[i], s.Values[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteTableFile writes a series as a tab-separated text file.
func WriteTableFile(path string, s *types.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	if err := WriteTable(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
