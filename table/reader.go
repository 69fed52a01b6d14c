// Package table reads and writes label files: one interval per line with
// start, end and label columns, separated by tabs or whitespace, using a
// comma or a dot as decimal separator.
package table

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/chewbite/cblabels/labels"
)

// Read loads every record of the label file at path.
func Read(path string) ([]labels.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFrom(f, path)
}

// ReadFrom parses label records from r; name is used in error messages.
//
// Tab separated lines keep spaces inside labels. Other lines are split on
// runs of whitespace. Columns after the third are ignored and a missing
// label column reads as the empty label.
func ReadFrom(r io.Reader, name string) ([]labels.Record, error) {
	var out []labels.Record
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := split(text)
		if len(fields) < 2 {
			return nil, errors.Errorf("%s:%d: want start, end and label columns, got %q", name, line, text)
		}
		start, err := ParseNumber(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: start", name, line)
		}
		end, err := ParseNumber(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: end", name, line)
		}
		rec := labels.Record{Start: start, End: end}
		if len(fields) > 2 {
			rec.Label = fields[2]
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return out, nil
}

func split(line string) []string {
	if !strings.Contains(line, "\t") {
		return strings.Fields(line)
	}
	parts := strings.Split(line, "\t")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// ParseNumber parses a decimal number written with either a comma or a dot.
func ParseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
	if err != nil {
		return 0, errors.Errorf("invalid number %q", s)
	}
	return v, nil
}
