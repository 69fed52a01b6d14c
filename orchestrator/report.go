package orchestrator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/chewbite/cblabels/clients"
	"github.com/chewbite/cblabels/table"
)

// maxPredictors is the most violins a single plot stays readable with.
const maxPredictors = 10

// Report groups the metric of a report by activity and predictor, prints a
// text summary of each activity and, when a visualization service is
// configured, renders violin_<metric>_<activity>.{pdf,png}. The grouped
// samples are saved as distributions.json in a new directory under the
// outputs path.
func (p *Pipeline) Report(ctx context.Context, path, metric string) ([]Distribution, error) {
	rows, err := table.ReadReport(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	dists, err := groupReport(rows, metric)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	runID, outDir, err := mkRunDir(p.cfg.Paths.Outputs)
	if err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	url := p.cfg.Services.Visualization.URL
	for i := range dists {
		d := &dists[i]
		if len(d.Groups) > maxPredictors {
			p.log.WithFields(logrus.Fields{"activity": d.Activity, "predictors": len(d.Groups)}).
				Warnf("more than %d predictors, the plot may be unreadable", maxPredictors)
		}
		printDistribution(p.out, *d)
		if url == "" {
			continue
		}
		resp, err := p.http.RenderDistribution(ctx, url, violinRequest(*d, outDir))
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", d.OutputBase, err)
		}
		d.Plots = resp.Paths
	}
	if url == "" {
		p.log.Debug("no visualization service configured, plots skipped")
	}

	saved, err := persist(outDir, runID, path, metric, dists)
	if err != nil {
		return nil, fmt.Errorf("save distributions: %w", err)
	}
	p.log.WithFields(logrus.Fields{"run": runID, "path": saved, "activities": len(dists)}).Info("report summarised")
	return dists, nil
}

func violinRequest(d Distribution, outDir string) clients.ViolinReq {
	req := clients.ViolinReq{
		Title:      d.Activity,
		XLabel:     "Frame F1-score",
		RefLines:   []float64{0, 1},
		Formats:    []string{"pdf", "png"},
		OutputBase: d.OutputBase,
		OutputDir:  outDir,
	}
	if d.Metric != "frame_f1score" {
		req.XLabel = d.Metric
	}
	for _, g := range d.Groups {
		req.Groups = append(req.Groups, clients.Group{Name: g.Name, Values: g.Values})
	}
	return req
}
