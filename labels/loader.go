package labels

import (
	"fmt"
	"math"
)

// span is an interval in integer ticks of 10^-decimals seconds.
type span struct {
	start, end int
	label      string
}

// ticks rounds a time to the tick grid, halves going to the even neighbour.
func ticks(x, scale float64) int {
	return int(math.RoundToEven(x * scale))
}

// cleanFloat drops accumulated binary noise from frame boundaries.
func cleanFloat(x float64) float64 {
	return math.Round(x*1e9) / 1e9
}

// Normalize rounds record times to whole seconds and cleans their labels.
// Aliases are not resolved, so the file's own vocabulary is kept.
func Normalize(records []Record) []Interval {
	out := make([]Interval, 0, len(records))
	for _, r := range records {
		out = append(out, Interval{
			Start: ticks(r.Start, 1),
			End:   ticks(r.End, 1),
			Label: Clean(r.Label),
		})
	}
	return out
}

// windowed rounds, resolves aliases, clips to w and applies segmentation.
func windowed(records []Record, scale float64, w Window, toSeg bool) []span {
	var ws, we int
	if w.Start != nil {
		ws = ticks(*w.Start, scale)
	}
	if w.End != nil {
		we = ticks(*w.End, scale)
	}
	out := make([]span, 0, len(records))
	for _, r := range records {
		s := span{start: ticks(r.Start, scale), end: ticks(r.End, scale), label: Canonical(r.Label)}
		// Bounds may fall inside a label; such labels are cut at the bound.
		if w.Start != nil {
			if s.end <= ws {
				continue
			}
			s.start = max(s.start, ws)
			if s.start < ws {
				continue
			}
		}
		if w.End != nil {
			if s.start >= we {
				continue
			}
			s.end = min(s.end, we)
			if s.end > we {
				continue
			}
		}
		// Sub-tick records round away to nothing.
		if s.end <= s.start {
			continue
		}
		if toSeg {
			s.label = toSegmentation(s.label)
		}
		out = append(out, s)
	}
	return out
}

func ofInterest(spans []span, toSeg bool) (kept []span, found []string) {
	seen := make(map[string]bool)
	for _, s := range spans {
		if !seen[s.label] {
			seen[s.label] = true
			found = append(found, s.label)
		}
		if OfInterest(s.label, toSeg) {
			kept = append(kept, s)
		}
	}
	return kept, found
}

// Load expands records into a per-second series of grazing and rumination
// labels (or the single segmentation label when ToSegmentation is set).
//
// The series covers [0, max end) of the kept intervals. Where kept intervals
// overlap the later record wins and an OverlapWarning is reported. When
// nothing is kept the result is a single empty label and an EmptyWarning.
func Load(records []Record, opts LoadOptions) (Series, Diagnostics) {
	kept, found := ofInterest(windowed(records, 1, opts.Window, opts.ToSegmentation), opts.ToSegmentation)
	diag := Diagnostics{Found: found}

	n := 0
	for _, s := range kept {
		n = max(n, s.end)
	}
	if len(kept) == 0 || n < 1 {
		diag.Warnings = append(diag.Warnings, Warning{Kind: EmptyWarning, Source: opts.Source})
		return Series{""}, diag
	}

	series := make(Series, n)
	for _, s := range kept {
		for t := max(s.start, 0); t < s.end; t++ {
			series[t] = s.label
		}
	}
	if w, ok := overlapWarning(kept, 1, opts.Source); ok {
		diag.Warnings = append(diag.Warnings, w)
	}
	return series, diag
}

// LoadFrames splits the loaded span into frames of FrameLen seconds. The span
// starts at the window start (or 0) and ends at the window end (or the last
// record end, whatever its label). A frame takes the label of interest that
// covers strictly more than half of it, or the empty label.
func LoadFrames(records []Record, opts FrameOptions) ([]Frame, Diagnostics, error) {
	if opts.FrameLen <= 0 {
		return nil, Diagnostics{}, fmt.Errorf("frame length must be positive, got %g", opts.FrameLen)
	}
	if opts.Decimals < 0 {
		return nil, Diagnostics{}, fmt.Errorf("decimals must not be negative, got %d", opts.Decimals)
	}
	scale := math.Pow10(opts.Decimals)
	all := windowed(records, scale, opts.Window, opts.ToSegmentation)
	kept, found := ofInterest(all, opts.ToSegmentation)
	diag := Diagnostics{Found: found}
	if len(kept) == 0 {
		diag.Warnings = append(diag.Warnings, Warning{Kind: EmptyWarning, Source: opts.Source})
	}

	var from, to float64
	if opts.Start != nil {
		from = float64(ticks(*opts.Start, scale)) / scale
	}
	if opts.End != nil {
		to = float64(ticks(*opts.End, scale)) / scale
	} else {
		for _, s := range all {
			to = max(to, float64(s.end)/scale)
		}
	}
	n := max(int(math.Ceil(cleanFloat((to-from)/opts.FrameLen))), 1)

	frames := make([]Frame, n)
	for k := range frames {
		fs := cleanFloat(from + float64(k)*opts.FrameLen)
		fe := cleanFloat(from + float64(k+1)*opts.FrameLen)
		frames[k] = Frame{Start: fs, End: fe, Label: majority(kept, fs, fe, scale)}
	}
	if w, ok := overlapWarning(kept, scale, opts.Source); ok {
		diag.Warnings = append(diag.Warnings, w)
	}
	return frames, diag, nil
}

func majority(spans []span, fs, fe, scale float64) string {
	cover := make(map[string]float64)
	best, bestLen := "", 0.0
	for _, s := range spans {
		ov := math.Min(fe, float64(s.end)/scale) - math.Max(fs, float64(s.start)/scale)
		if ov <= 0 {
			continue
		}
		cover[s.label] += ov
		if c := cover[s.label]; c > bestLen {
			best, bestLen = s.label, c
		}
	}
	if 2*bestLen-(fe-fs) > 1e-9 {
		return best
	}
	return ""
}

// SignalLength returns the time between the first start and the last end of
// the records inside w, in whole seconds. Labels are not considered.
func SignalLength(records []Record, w Window) int {
	spans := windowed(records, 1, w, false)
	if len(spans) == 0 {
		return 0
	}
	lo, hi := spans[0].start, spans[0].end
	for _, s := range spans[1:] {
		lo = min(lo, s.start)
		hi = max(hi, s.end)
	}
	return hi - lo
}
