package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	in := []Interval{
		{0, 10, "RUMIA"},
		{10, 20, "RUMIA"},
		{20, 36, "PASTOREO"},
		{36, 50, "SILENCIO"},
		{50, 61, "PASTOREO"},
		{61, 70, "PASTOREO"},
		{70, 75, "PASTOREO"},
	}
	orig := append([]Interval(nil), in...)

	got := Merge(in)
	assert.Equal(t, []Interval{
		{0, 20, "RUMIA"},
		{20, 36, "PASTOREO"},
		{36, 50, "SILENCIO"},
		{50, 75, "PASTOREO"},
	}, got)
	assert.Equal(t, orig, in, "input must not be modified")
	assert.Equal(t, got, Merge(got), "merge is idempotent")
}

func TestMergeEdges(t *testing.T) {
	assert.Empty(t, Merge(nil))
	assert.Equal(t, []Interval{{0, 5, "P"}}, Merge([]Interval{{0, 5, "P"}}))
	alternating := []Interval{{0, 1, "A"}, {1, 2, "B"}, {2, 3, "A"}}
	assert.Equal(t, alternating, Merge(alternating))
}

func TestRemoveSilences(t *testing.T) {
	in := []Interval{
		{0, 100, "PASTOREO"},
		{100, 150, "SILENCIO"},
		{150, 400, "PASTOREO"},
		{400, 800, "SILENCIO"},
		{800, 900, "PASTOREO"},
		{900, 910, "SILENCIO"},
		{910, 1000, "RUMIA"},
	}
	assert.Equal(t, []Interval{
		{0, 400, "PASTOREO"},
		{400, 800, "SILENCIO"},
		{800, 900, "PASTOREO"},
		{900, 910, "SILENCIO"},
		{910, 1000, "RUMIA"},
	}, RemoveSilences(in, DefaultMaxLen, " silencio "))

	// The limit is inclusive.
	assert.Equal(t, []Interval{{0, 900, "PASTOREO"}}, RemoveSilences(in[:5], 400, Silence))
}

func TestRemoveSilencesKeepsEnds(t *testing.T) {
	in := []Interval{
		{0, 10, "SILENCIO"},
		{10, 20, "PASTOREO"},
		{20, 30, "SILENCIO"},
	}
	assert.Equal(t, in, RemoveSilences(in, DefaultMaxLen, Silence))
}

func TestRemoveBetweenGiven(t *testing.T) {
	in := []Interval{
		{0, 100, "RUMIA"},
		{100, 110, "SILENCIO"},
		{110, 200, "RUMIA"},
		{200, 210, "PASTOREO"},
		{210, 300, "RUMIA"},
		{300, 310, "SILENCIO"},
		{310, 400, "PASTOREO"},
	}
	got := RemoveBetweenGiven(in, "RUMIA", 60)
	assert.Equal(t, []Interval{
		{0, 300, "RUMIA"},
		{300, 310, "SILENCIO"},
		{310, 400, "PASTOREO"},
	}, got)
	assert.Equal(t, got, RemoveBetweenGiven(got, "RUMIA", 60))

	// Anchors are compared as given.
	assert.Equal(t, Merge(in), RemoveBetweenGiven(in, "rumia", 60))
}

func TestRemoveBetweenGivenNeedsBothAnchors(t *testing.T) {
	in := []Interval{
		{0, 10, "PASTOREO"},
		{10, 20, "SILENCIO"},
		{20, 30, "CAMINATA"},
		{30, 40, "PASTOREO"},
	}
	assert.Equal(t, in, RemoveBetweenGiven(in, "PASTOREO", DefaultMaxLen))
}
