package labels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

// floatRecords mirrors a two-activity label file with sub-second bounds.
var floatRecords = []Record{
	{0, 3.4, "silencio"},
	{3.4, 7.2, "Rumia Pastura"},
	{7.2, 10.2, "caminata"},
	{10.2, 16.2, "grazing"},
	{16.2, 21, "silencio"},
}

func series(runs ...Interval) Series {
	var s Series
	for _, r := range runs {
		for t := r.Start; t < r.End; t++ {
			s = append(s, r.Label)
		}
	}
	return s
}

func TestLoad(t *testing.T) {
	s, diag := Load(floatRecords, LoadOptions{Source: "a.txt"})
	assert.Equal(t, series(
		Interval{0, 3, ""},
		Interval{3, 7, Rumination},
		Interval{7, 10, ""},
		Interval{10, 16, Grazing},
	), s)
	assert.Empty(t, diag.Warnings)
	assert.Equal(t, []string{"SILENCIO", Rumination, "CAMINATA", Grazing}, diag.Found)
}

func TestLoadWindow(t *testing.T) {
	s, diag := Load(floatRecords, LoadOptions{Window: Window{Start: ptr(5), End: ptr(12)}})
	assert.Equal(t, series(
		Interval{0, 5, ""},
		Interval{5, 7, Rumination},
		Interval{7, 10, ""},
		Interval{10, 12, Grazing},
	), s)
	assert.Empty(t, diag.Warnings)
	assert.Equal(t, []string{Rumination, "CAMINATA", Grazing}, diag.Found)
}

func TestLoadZeroWindowStartIsHonoured(t *testing.T) {
	recs := []Record{{-2, 3, "P"}, {3, 5, "R"}}
	s, _ := Load(recs, LoadOptions{Window: Window{Start: ptr(0)}})
	assert.Equal(t, Series{Grazing, Grazing, Grazing, Rumination, Rumination}, s)
}

func TestLoadSegmentation(t *testing.T) {
	s, diag := Load(floatRecords, LoadOptions{ToSegmentation: true})
	assert.Equal(t, series(
		Interval{0, 3, ""},
		Interval{3, 7, Segmentation},
		Interval{7, 10, ""},
		Interval{10, 16, Segmentation},
	), s)
	assert.Contains(t, diag.Found, Segmentation)
	assert.NotContains(t, diag.Found, Grazing)
}

func TestLoadOverlap(t *testing.T) {
	recs := []Record{{0, 5, "R"}, {3, 8, "P"}, {8, 10, "P"}}
	s, diag := Load(recs, LoadOptions{Source: "overlap.txt"})
	assert.Equal(t, series(Interval{0, 3, Rumination}, Interval{3, 10, Grazing}), s)

	require.Len(t, diag.Warnings, 1)
	w := diag.Warnings[0]
	assert.Equal(t, OverlapWarning, w.Kind)
	assert.Equal(t, "overlap.txt", w.Source)
	assert.Equal(t, []Frame{{Start: 3, End: 5}}, w.Ranges)
	assert.Equal(t, []int{3, 4}, w.Seconds())
	assert.True(t, strings.Contains(w.String(), "overlap.txt"))
}

func TestLoadOverlapJoinsSections(t *testing.T) {
	recs := []Record{{0, 10, "P"}, {2, 4, "R"}, {3, 6, "R"}, {20, 30, "P"}, {25, 26, "R"}}
	_, diag := Load(recs, LoadOptions{})
	require.Len(t, diag.Warnings, 1)
	assert.Equal(t, []Frame{{Start: 2, End: 6}, {Start: 25, End: 26}}, diag.Warnings[0].Ranges)
	assert.Equal(t, []int{2, 3, 4, 5, 25}, diag.Warnings[0].Seconds())
}

func TestLoadEmpty(t *testing.T) {
	s, diag := Load([]Record{{0, 40, "silencio"}}, LoadOptions{Source: "none.txt"})
	assert.Equal(t, Series{""}, s)
	require.Len(t, diag.Warnings, 1)
	assert.Equal(t, EmptyWarning, diag.Warnings[0].Kind)
	assert.Equal(t, "none.txt", diag.Warnings[0].Source)

	s, diag = Load(floatRecords, LoadOptions{Window: Window{Start: ptr(100)}})
	assert.Equal(t, Series{""}, s)
	require.Len(t, diag.Warnings, 1)
	assert.Empty(t, diag.Found)
}

func TestLoadDropsRecordsRoundedToNothing(t *testing.T) {
	s, diag := Load([]Record{{5.2, 5.4, "P"}}, LoadOptions{Source: "short.txt"})
	assert.Equal(t, Series{""}, s)
	require.Len(t, diag.Warnings, 1)
	assert.Equal(t, EmptyWarning, diag.Warnings[0].Kind)
	assert.Equal(t, "short.txt", diag.Warnings[0].Source)

	s, diag = Load([]Record{{5.2, 5.4, "P"}, {6, 8, "R"}}, LoadOptions{})
	assert.Equal(t, Series{"", "", "", "", "", "", Rumination, Rumination}, s)
	assert.Empty(t, diag.Warnings)
}

func TestWindowedStaysInsideBounds(t *testing.T) {
	recs := append([]Record{{-3, 30, "P"}, {11.9, 12.2, "R"}}, floatRecords...)
	for _, w := range []Window{
		{Start: ptr(5), End: ptr(12)},
		{Start: ptr(0)},
		{End: ptr(4)},
	} {
		for _, s := range windowed(recs, 1, w, false) {
			assert.Less(t, s.start, s.end)
			if w.Start != nil {
				assert.GreaterOrEqual(t, s.start, ticks(*w.Start, 1))
			}
			if w.End != nil {
				assert.LessOrEqual(t, s.end, ticks(*w.End, 1))
			}
		}
	}
}

func TestLoadCoverage(t *testing.T) {
	recs := []Record{{12, 15, "P"}, {1, 4, "R"}}
	s, _ := Load(recs, LoadOptions{})
	require.Len(t, s, 15)
	for i, l := range s {
		switch {
		case i >= 1 && i < 4:
			assert.Equal(t, Rumination, l)
		case i >= 12:
			assert.Equal(t, Grazing, l)
		default:
			assert.Equal(t, "", l)
		}
	}
}

func TestLoadRoundsHalfToEven(t *testing.T) {
	s, _ := Load([]Record{{0.5, 2.5, "P"}}, LoadOptions{})
	assert.Equal(t, Series{Grazing, Grazing}, s)
	s, _ = Load([]Record{{1.5, 3.5, "P"}}, LoadOptions{})
	assert.Equal(t, Series{"", "", Grazing, Grazing}, s)
}

func TestSeriesIntervals(t *testing.T) {
	s := Series{"", "", Grazing, Grazing, Rumination}
	assert.Equal(t, []Interval{{0, 2, ""}, {2, 4, Grazing}, {4, 5, Rumination}}, s.Intervals())
}

func frames(frameLen float64, labels ...string) []Frame {
	return framesFrom(0, frameLen, labels...)
}

func framesFrom(from, frameLen float64, labels ...string) []Frame {
	out := make([]Frame, len(labels))
	for i, l := range labels {
		out[i] = Frame{Start: from + float64(i)*frameLen, End: from + float64(i+1)*frameLen, Label: l}
	}
	return out
}

func TestLoadFramesInteger(t *testing.T) {
	recs := []Record{{0, 3, "SILENCIO"}, {3, 6, "R"}, {6, 9, "SILENCIO"}, {9, 15, "P"}, {15, 21, "SILENCIO"}}
	got, diag, err := LoadFrames(recs, FrameOptions{FrameLen: 3})
	require.NoError(t, err)
	assert.Empty(t, diag.Warnings)
	assert.Equal(t, frames(3, "", Rumination, "", Grazing, Grazing, "", ""), got)
}

func TestLoadFramesLongFrame(t *testing.T) {
	recs := []Record{{0, 10, "rumination"}, {10, 25, "silencio"}}
	got, _, err := LoadFrames(recs, FrameOptions{FrameLen: 5})
	require.NoError(t, err)
	assert.Equal(t, frames(5, Rumination, Rumination, "", "", ""), got)
}

func TestLoadFramesFloat(t *testing.T) {
	got, _, err := LoadFrames(floatRecords, FrameOptions{FrameLen: 3.5, Decimals: 1})
	require.NoError(t, err)
	assert.Equal(t, frames(3.5, "", Rumination, "", Grazing, Grazing, ""), got)
}

func TestLoadFramesWindow(t *testing.T) {
	got, _, err := LoadFrames(floatRecords, FrameOptions{
		Window:   Window{Start: ptr(8), End: ptr(17)},
		FrameLen: 3.5,
		Decimals: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, []Frame{
		{Start: 8, End: 11.5, Label: ""},
		{Start: 11.5, End: 15, Label: Grazing},
		{Start: 15, End: 18.5, Label: ""},
	}, got)
}

func TestLoadFramesNoLabels(t *testing.T) {
	recs := []Record{{0, 15, "silencio"}, {15, 40, "caminata"}}
	got, diag, err := LoadFrames(recs, FrameOptions{FrameLen: 10, Decimals: 1, Source: "nolabels.txt"})
	require.NoError(t, err)
	assert.Equal(t, frames(10, "", "", "", ""), got)
	require.Len(t, diag.Warnings, 1)
	assert.Equal(t, EmptyWarning, diag.Warnings[0].Kind)
}

func TestLoadFramesSegmentation(t *testing.T) {
	got, _, err := LoadFrames(floatRecords, FrameOptions{FrameLen: 7, Decimals: 1, ToSegmentation: true})
	require.NoError(t, err)
	// Rumination and grazing add up inside [7, 14); [14, 21) holds 2.2 s only.
	assert.Equal(t, frames(7, Segmentation, Segmentation, ""), got)
}

func TestLoadFramesInvalid(t *testing.T) {
	_, _, err := LoadFrames(floatRecords, FrameOptions{FrameLen: 0})
	assert.Error(t, err)
	_, _, err = LoadFrames(floatRecords, FrameOptions{FrameLen: 1, Decimals: -1})
	assert.Error(t, err)
}

func TestSignalLength(t *testing.T) {
	assert.Equal(t, 21, SignalLength(floatRecords, Window{}))
	assert.Equal(t, 9, SignalLength(floatRecords, Window{Start: ptr(8), End: ptr(17)}))
	assert.Equal(t, 0, SignalLength(floatRecords, Window{Start: ptr(50)}))
	assert.Equal(t, 0, SignalLength(nil, Window{}))
}
