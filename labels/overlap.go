package labels

import (
	"sort"

	"github.com/biogo/store/interval"
)

// treeSpan adapts a span to the interval tree. Ranges are half-open.
type treeSpan struct {
	id         uintptr
	start, end int
}

func (s treeSpan) Overlap(r interval.IntRange) bool { return s.start < r.End && r.Start < s.end }
func (s treeSpan) ID() uintptr                      { return s.id }
func (s treeSpan) Range() interval.IntRange         { return interval.IntRange{Start: s.start, End: s.end} }

// overlaps returns the sections covered by more than one span, sorted and
// with touching sections joined.
func overlaps(spans []span) []interval.IntRange {
	var tree interval.IntTree
	for i, s := range spans {
		if s.end <= s.start {
			continue
		}
		// Start <= End holds, the only condition Insert rejects.
		_ = tree.Insert(treeSpan{id: uintptr(i), start: s.start, end: s.end}, false)
	}

	var hits []interval.IntRange
	for i, s := range spans {
		if s.end <= s.start {
			continue
		}
		for _, e := range tree.Get(treeSpan{id: uintptr(i), start: s.start, end: s.end}) {
			o := e.(treeSpan)
			if o.id <= uintptr(i) {
				continue
			}
			hits = append(hits, interval.IntRange{Start: max(s.start, o.start), End: min(s.end, o.end)})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Start < hits[j].Start })
	out := []interval.IntRange{hits[0]}
	for _, h := range hits[1:] {
		last := &out[len(out)-1]
		if h.Start <= last.End {
			last.End = max(last.End, h.End)
			continue
		}
		out = append(out, h)
	}
	return out
}

func overlapWarning(spans []span, scale float64, source string) (Warning, bool) {
	ranges := overlaps(spans)
	if len(ranges) == 0 {
		return Warning{}, false
	}
	w := Warning{Kind: OverlapWarning, Source: source, Ranges: make([]Frame, 0, len(ranges))}
	for _, r := range ranges {
		w.Ranges = append(w.Ranges, Frame{Start: float64(r.Start) / scale, End: float64(r.End) / scale})
	}
	return w, true
}
