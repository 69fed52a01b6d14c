package labels

// Merge collapses every run of adjacent intervals sharing a label into one
// interval spanning the run. Order is kept and the input is not modified.
func Merge(ivs []Interval) []Interval {
	out := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if n := len(out); n > 0 && out[n-1].Label == iv.Label {
			out[n-1].End = iv.End
			continue
		}
		out = append(out, iv)
	}
	return out
}

// DefaultMaxLen is the longest segment, in seconds, the elision passes remove.
const DefaultMaxLen = 300

// RemoveSilences relabels interior silence intervals no longer than maxLen
// whose two neighbours share a label, then merges the result.
func RemoveSilences(ivs []Interval, maxLen int, silence string) []Interval {
	silence = Clean(silence)
	return elide(ivs, maxLen, func(label, prev, next string) bool {
		return label == silence && prev == next
	})
}

// RemoveBetweenGiven relabels interior intervals no longer than maxLen that
// sit between two anchor intervals, then merges the result.
func RemoveBetweenGiven(ivs []Interval, anchor string, maxLen int) []Interval {
	return elide(ivs, maxLen, func(label, prev, next string) bool {
		return label != anchor && prev == anchor && next == anchor
	})
}

// elide makes a single forward pass. Decisions read the neighbours' labels
// as they were before the pass, so a relabeled interval never anchors
// another relabel.
func elide(ivs []Interval, maxLen int, match func(label, prev, next string) bool) []Interval {
	out := make([]Interval, len(ivs))
	copy(out, ivs)
	for i := 1; i < len(ivs)-1; i++ {
		if ivs[i].Len() > maxLen {
			continue
		}
		if prev := ivs[i-1].Label; match(ivs[i].Label, prev, ivs[i+1].Label) {
			out[i].Label = prev
		}
	}
	return Merge(out)
}
