package scene

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Load reads a scene file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SceneLoadError{Path: path, Err: err}
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads the scene format:
//
//	<height> <width> <g> <k>
//	<code> <density>        (k lines, code is a single raw byte)
//	<row>                   (height lines of width bytes)
func Parse(r io.Reader, name string) (*Scene, error) {
	br := bufio.NewReader(r)
	line := 0
	fail := func(err error) (*Scene, error) {
		return nil, &SceneLoadError{Path: name, Line: line, Err: err}
	}
	next := func() ([]byte, error) {
		b, err := br.ReadBytes('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(b) > 0) {
			if errors.Is(err, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		line++
		b = bytes.TrimSuffix(b, []byte("\n"))
		return bytes.TrimSuffix(b, []byte("\r")), nil
	}

	header, err := next()
	if err != nil {
		return fail(fmt.Errorf("reading header: %w", err))
	}
	fields := strings.Fields(string(header))
	if len(fields) != 4 {
		return fail(fmt.Errorf("header %q: want \"height width g k\"", header))
	}

	s := &Scene{}
	if s.Height, err = strconv.Atoi(fields[0]); err != nil {
		return fail(fmt.Errorf("height: %w", err))
	}
	if s.Width, err = strconv.Atoi(fields[1]); err != nil {
		return fail(fmt.Errorf("width: %w", err))
	}
	if s.G, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return fail(fmt.Errorf("gravity: %w", err))
	}
	k, err := strconv.Atoi(fields[3])
	if err != nil || k < 0 || k > 256 {
		return fail(fmt.Errorf("density count %q invalid", fields[3]))
	}
	if s.Height <= 0 || s.Width <= 0 {
		return fail(fmt.Errorf("dimensions %dx%d must be positive", s.Height, s.Width))
	}

	for i := 0; i < k; i++ {
		entry, err := next()
		if err != nil {
			return fail(fmt.Errorf("reading density %d: %w", i, err))
		}
		if len(entry) < 2 {
			return fail(fmt.Errorf("density entry %q too short", entry))
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(string(entry[1:])), 64)
		if err != nil {
			return fail(fmt.Errorf("density for %q: %w", entry[0], err))
		}
		s.Densities[entry[0]] = d
	}

	// Rows are appended as they arrive so a bogus header cannot force a
	// huge allocation.
	for y := 0; y < s.Height; y++ {
		row, err := next()
		if err != nil {
			return fail(fmt.Errorf("reading row %d: %w", y, err))
		}
		if len(row) != s.Width {
			return fail(fmt.Errorf("row %d has %d cells, want %d", y, len(row), s.Width))
		}
		s.Field = append(s.Field, append([]byte(nil), row...))
	}
	return s, nil
}

// Write emits s in the scene format. Numbers use the shortest of fixed or
// exponent notation at six significant digits.
func Write(w io.Writer, s *Scene) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %s %d\n", s.Height, s.Width, formatFloat(s.G), s.DensityCount())
	for code, d := range s.Densities {
		if d == 0 {
			continue
		}
		bw.WriteByte(byte(code))
		fmt.Fprintf(bw, " %s\n", formatFloat(d))
	}
	for _, row := range s.Field {
		bw.Write(row)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Save writes s to path, replacing any previous content.
func Save(path string, s *Scene) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating snapshot dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
