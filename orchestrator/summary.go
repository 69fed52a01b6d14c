package orchestrator

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/chewbite/cblabels/labels"
)

const boxWidth = 40

var (
	keyColor   = color.New(color.FgYellow)
	valueColor = color.New(color.FgGreen)
	labelColor = map[string]*color.Color{
		labels.Grazing:      color.New(color.FgGreen),
		labels.Rumination:   color.New(color.FgMagenta),
		labels.Segmentation: color.New(color.FgCyan),
	}
)

// PrintRuns writes one line per run of equal labels.
func (p *Pipeline) PrintRuns(ivs []labels.Interval) {
	for _, iv := range ivs {
		fmt.Fprintf(p.out, "%8d %8d  ", iv.Start, iv.End)
		printLabel(p.out, iv.Label)
	}
}

// PrintFrames writes one line per frame.
func (p *Pipeline) PrintFrames(frames []labels.Frame) {
	for _, f := range frames {
		fmt.Fprintf(p.out, "%10g %10g  ", f.Start, f.End)
		printLabel(p.out, f.Label)
	}
}

func printLabel(w io.Writer, l string) {
	if l == "" {
		color.New(color.FgHiBlack).Fprintln(w, "-")
		return
	}
	if c, ok := labelColor[l]; ok {
		c.Fprintln(w, l)
		return
	}
	fmt.Fprintln(w, l)
}

// PrintLength writes the labeled length of a file.
func (p *Pipeline) PrintLength(path string, seconds int) {
	keyColor.Fprint(p.out, "file: ")
	valueColor.Fprintf(p.out, "%s\n", path)
	keyColor.Fprint(p.out, "length: ")
	valueColor.Fprintf(p.out, "%ds (%s)\n", seconds, clock(seconds))
}

func clock(seconds int) string {
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

// printDistribution writes a text box plot per predictor on a scale that
// always includes [0, 1].
func printDistribution(w io.Writer, d Distribution) {
	lo, hi := 0.0, 1.0
	for _, g := range d.Groups {
		if g.Summary.N > 0 {
			lo = math.Min(lo, g.Summary.Min)
			hi = math.Max(hi, g.Summary.Max)
		}
	}
	keyColor.Fprintf(w, "\n================ %s ================\n\n", d.Activity)
	for _, g := range d.Groups {
		valueColor.Fprintf(w, "%-20s ", g.Name)
		if g.Summary.N == 0 {
			fmt.Fprintln(w, "no finite samples")
			continue
		}
		s := g.Summary
		fmt.Fprintf(w, "%s n=%d median=%.3f iqr=[%.3f, %.3f] range=[%.3f, %.3f]\n",
			box(s, lo, hi), s.N, s.Median, s.Q1, s.Q3, s.Min, s.Max)
	}
	los, his := fmt.Sprint(lo), fmt.Sprint(hi)
	fmt.Fprintf(w, "%22s%-*s%s\n", "", boxWidth-len(his), los, his)
}

func box(s Summary, lo, hi float64) string {
	pos := func(v float64) int {
		i := int(math.Round((v - lo) / (hi - lo) * float64(boxWidth-1)))
		return min(max(i, 0), boxWidth-1)
	}
	b := []rune(strings.Repeat(" ", boxWidth))
	for i := pos(s.Min); i <= pos(s.Max); i++ {
		b[i] = '-'
	}
	for i := pos(s.Q1); i <= pos(s.Q3); i++ {
		b[i] = '='
	}
	b[pos(s.Median)] = '|'
	return "[" + string(b) + "]"
}
