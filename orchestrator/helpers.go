package orchestrator

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/chewbite/cblabels/table"
)

// groupReport splits the metric samples by activity, then by predictor.
// Both levels are sorted by name; non-finite samples are dropped.
func groupReport(rows []table.ReportRow, metric string) ([]Distribution, error) {
	byActivity := map[string]map[string][]float64{}
	found := false
	for _, r := range rows {
		v, ok := r.Metrics[metric]
		if !ok {
			continue
		}
		found = true
		preds := byActivity[r.Activity]
		if preds == nil {
			preds = map[string][]float64{}
			byActivity[r.Activity] = preds
		}
		vals := preds[r.Predictor]
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			vals = append(vals, v)
		}
		preds[r.Predictor] = vals
	}
	if !found {
		return nil, fmt.Errorf("report has no %q values", metric)
	}

	out := make([]Distribution, 0, len(byActivity))
	for _, act := range sortedKeys(byActivity) {
		preds := byActivity[act]
		d := Distribution{Activity: act, Metric: metric, OutputBase: "violin_" + metric + "_" + act}
		for _, name := range sortedKeys(preds) {
			d.Groups = append(d.Groups, Group{Name: name, Values: preds[name], Summary: summarize(preds[name])})
		}
		out = append(out, d)
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	v := append([]float64(nil), values...)
	sort.Float64s(v)
	return Summary{
		N:      len(v),
		Min:    v[0],
		Q1:     quantile(v, 0.25),
		Median: quantile(v, 0.5),
		Q3:     quantile(v, 0.75),
		Max:    v[len(v)-1],
		Mean:   stat.Mean(v, nil),
	}
}

// quantile interpolates linearly between the closest ranks of sorted
// (Hyndman and Fan type 7), the quartiles the violin renderer draws.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
