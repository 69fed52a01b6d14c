package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

func mkRunDir(outputsRoot string) (string, string, error) {
	ts := time.Now().Format("20060102-150405")
	rid := "report_" + ts
	dir := filepath.Join(outputsRoot, rid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	return rid, dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// persist writes the grouped samples next to the rendered plots.
func persist(outDir, runID, reportPath, metric string, dists []Distribution) (string, error) {
	path := filepath.Join(outDir, "distributions.json")
	bundle := PersistBundle{
		RunID:         runID,
		ReportPath:    reportPath,
		Metric:        metric,
		GeneratedAt:   time.Now(),
		Distributions: dists,
	}
	if err := writeJSON(path, bundle); err != nil {
		return "", err
	}
	return path, nil
}
