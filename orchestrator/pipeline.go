package orchestrator

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/chewbite/cblabels/clients"
	cfg "github.com/chewbite/cblabels/config"
	"github.com/chewbite/cblabels/labels"
	"github.com/chewbite/cblabels/table"
)

type Pipeline struct {
	cfg  *cfg.Root
	http *clients.HTTP
	log  logrus.FieldLogger
	out  io.Writer // terminal summaries
}

func NewPipeline(c *cfg.Root, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{cfg: c, http: clients.NewHTTP(), log: log, out: os.Stdout}
}

func (p *Pipeline) readIntervals(path string) ([]labels.Interval, error) {
	recs, err := table.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	return labels.Normalize(recs), nil
}

func (p *Pipeline) writeIntervals(path string, ivs []labels.Interval, before int, op string) error {
	if err := table.WriteIntervals(path, ivs); err != nil {
		return fmt.Errorf("write labels: %w", err)
	}
	p.log.WithFields(logrus.Fields{"out": path, "before": before, "after": len(ivs)}).Info(op)
	return nil
}

// MergeFile merges contiguous equally labeled rows of in and writes them to out.
func (p *Pipeline) MergeFile(in, out string) error {
	ivs, err := p.readIntervals(in)
	if err != nil {
		return err
	}
	return p.writeIntervals(out, labels.Merge(ivs), len(ivs), "merged labels")
}

// RemoveSilences folds silences up to maxLen seconds into equally labeled
// neighbours.
func (p *Pipeline) RemoveSilences(in, out string, maxLen int, silence string) error {
	ivs, err := p.readIntervals(in)
	if err != nil {
		return err
	}
	return p.writeIntervals(out, labels.RemoveSilences(ivs, maxLen, silence), len(ivs), "removed silences")
}

// RemoveBetweenGiven folds blocks up to maxLen seconds lying between two
// blocks of anchor into them.
func (p *Pipeline) RemoveBetweenGiven(in, out, anchor string, maxLen int) error {
	ivs, err := p.readIntervals(in)
	if err != nil {
		return err
	}
	return p.writeIntervals(out, labels.RemoveBetweenGiven(ivs, anchor, maxLen), len(ivs), "removed blocks between "+anchor)
}

// LoadFile loads the per-second activity series of a label file.
func (p *Pipeline) LoadFile(path string, w labels.Window, toSegmentation bool) (labels.Series, error) {
	recs, err := table.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	s, diag := labels.Load(recs, labels.LoadOptions{Window: w, ToSegmentation: toSegmentation, Source: path})
	p.logDiagnostics(path, w, diag)
	return s, nil
}

// LoadFramesFile loads a label file as frames of the configured length.
func (p *Pipeline) LoadFramesFile(path string, w labels.Window, toSegmentation bool) ([]labels.Frame, error) {
	recs, err := table.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	frames, diag, err := labels.LoadFrames(recs, labels.FrameOptions{
		Window:         w,
		FrameLen:       p.cfg.Labels.FrameLen,
		Decimals:       p.cfg.Labels.Decimals,
		ToSegmentation: toSegmentation,
		Source:         path,
	})
	if err != nil {
		return nil, err
	}
	p.logDiagnostics(path, w, diag)
	return frames, nil
}

// SignalLength returns the labeled span of a file inside w, in seconds.
func (p *Pipeline) SignalLength(path string, w labels.Window) (int, error) {
	recs, err := table.Read(path)
	if err != nil {
		return 0, fmt.Errorf("read labels: %w", err)
	}
	return labels.SignalLength(recs, w), nil
}

func (p *Pipeline) logDiagnostics(path string, w labels.Window, diag labels.Diagnostics) {
	p.log.WithFields(logrus.Fields{
		"file":   path,
		"start":  bound(w.Start),
		"end":    bound(w.End),
		"labels": diag.Found,
	}).Debug("labels in window")

	for _, wr := range diag.Warnings {
		entry := p.log.WithField("file", wr.Source)
		switch wr.Kind {
		case labels.OverlapWarning:
			entry.WithField("seconds", wr.Seconds()).Warn("overlapping labels found, the later label wins")
		case labels.EmptyWarning:
			entry.Warn("no labels of interest in the requested span")
		default:
			entry.Warn(wr.String())
		}
	}
}

func bound(b *float64) string {
	if b == nil {
		return "-"
	}
	return strconv.FormatFloat(*b, 'f', -1, 64)
}
