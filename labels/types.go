// Package labels turns grazing and rumination annotation records into
// per-second label series, fixed-length frames and merged interval lists.
package labels

import (
	"fmt"
	"math"
	"strings"
)

// Record is one raw row of a label file.
type Record struct {
	Start float64
	End   float64
	Label string
}

// Interval is a labeled span [Start, End) in whole seconds.
type Interval struct {
	Start int
	End   int
	Label string
}

// Len returns the duration of the interval.
func (iv Interval) Len() int { return iv.End - iv.Start }

// Frame is one fixed-length slot of a frame table.
type Frame struct {
	Start float64
	End   float64
	Label string
}

// Series holds one label per second; index t covers [t, t+1).
// An empty string means no label of interest.
type Series []string

// Intervals collapses the series into runs of equal labels, empty runs included.
func (s Series) Intervals() []Interval {
	ivs := make([]Interval, 0, len(s))
	for t, l := range s {
		ivs = append(ivs, Interval{Start: t, End: t + 1, Label: l})
	}
	return Merge(ivs)
}

// WarningKind tells the non-fatal conditions of a load apart.
type WarningKind int

const (
	// OverlapWarning is raised when two kept intervals cover the same time.
	OverlapWarning WarningKind = iota
	// EmptyWarning is raised when no interval of interest survives.
	EmptyWarning
)

// Warning is a non-fatal condition found while loading.
type Warning struct {
	Kind   WarningKind
	Source string
	// Ranges lists the overlapping sections, in seconds, for OverlapWarning.
	Ranges []Frame
}

// Seconds expands the overlapping ranges into the whole seconds they touch.
func (w Warning) Seconds() []int {
	var out []int
	last := math.MinInt
	for _, r := range w.Ranges {
		for t := int(r.Start); float64(t) < r.End; t++ {
			if t > last {
				out = append(out, t)
				last = t
			}
		}
	}
	return out
}

func (w Warning) String() string {
	switch w.Kind {
	case OverlapWarning:
		parts := make([]string, 0, len(w.Ranges))
		for _, r := range w.Ranges {
			parts = append(parts, fmt.Sprintf("[%g, %g)", r.Start, r.End))
		}
		return fmt.Sprintf("overlapping labels in %s at %s", w.Source, strings.Join(parts, " "))
	case EmptyWarning:
		return fmt.Sprintf("no labels of interest in the requested span of %s", w.Source)
	}
	return fmt.Sprintf("warning %d in %s", int(w.Kind), w.Source)
}

// Diagnostics carries what a loader found besides its result.
type Diagnostics struct {
	// Found lists the distinct labels inside the window, in order of
	// appearance, before filtering by labels of interest.
	Found    []string
	Warnings []Warning
}

// Window restricts loading to [Start, End). A nil bound is open.
type Window struct {
	Start *float64
	End   *float64
}

// LoadOptions configures Load.
type LoadOptions struct {
	Window
	ToSegmentation bool
	// Source names the input in warnings.
	Source string
}

// FrameOptions configures LoadFrames.
type FrameOptions struct {
	Window
	FrameLen float64
	// Decimals is the number of decimal places record times are rounded to.
	Decimals       int
	ToSegmentation bool
	Source         string
}
