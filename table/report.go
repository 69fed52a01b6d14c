package table

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Report columns every metrics report must carry.
const (
	ActivityColumn  = "activity"
	PredictorColumn = "predictor_name"
)

// ReportRow is one predictor's scores on one activity of one recording.
type ReportRow struct {
	Activity  string
	Predictor string
	// Metrics holds every other column; empty or non-numeric cells are NaN.
	Metrics map[string]float64
}

// ReadReport loads a metrics report with a header row. The separator is a
// tab when the header contains one, a comma otherwise.
func ReadReport(path string) ([]ReportRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadReportFrom(f, path)
}

// ReadReportFrom parses a metrics report from r.
func ReadReportFrom(r io.Reader, name string) ([]ReportRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	header, _, _ := strings.Cut(text, "\n")

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = ','
	if strings.Contains(header, "\t") {
		cr.Comma = '\t'
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", name)
	}
	if len(records) == 0 {
		return nil, errors.Errorf("%s: empty report", name)
	}

	cols := records[0]
	act, pred := -1, -1
	for i, c := range cols {
		cols[i] = strings.TrimSpace(c)
		switch cols[i] {
		case ActivityColumn:
			act = i
		case PredictorColumn:
			pred = i
		}
	}
	if act < 0 || pred < 0 {
		return nil, errors.Errorf("%s: report needs %q and %q columns", name, ActivityColumn, PredictorColumn)
	}

	out := make([]ReportRow, 0, len(records)-1)
	for n, rec := range records[1:] {
		if len(rec) != len(cols) {
			return nil, errors.Errorf("%s:%d: want %d columns, got %d", name, n+2, len(cols), len(rec))
		}
		row := ReportRow{
			Activity:  strings.TrimSpace(rec[act]),
			Predictor: strings.TrimSpace(rec[pred]),
			Metrics:   make(map[string]float64, len(cols)-2),
		}
		for i, c := range cols {
			if i == act || i == pred || c == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				v = math.NaN()
			}
			row.Metrics[c] = v
		}
		out = append(out, row)
	}
	return out, nil
}
