package orchestrator

import "time"

// Summary describes one group of metric samples.
type Summary struct {
	N      int     `json:"n"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

type Group struct {
	Name    string    `json:"name"` // predictor
	Values  []float64 `json:"values"`
	Summary Summary   `json:"summary"`
}

// Distribution holds one metric of one activity, grouped by predictor.
type Distribution struct {
	Activity   string   `json:"activity"`
	Metric     string   `json:"metric"`
	Groups     []Group  `json:"groups"`
	OutputBase string   `json:"output_base"`     // violin_<metric>_<activity>
	Plots      []string `json:"plots,omitempty"` // files written by the renderer
}

type PersistBundle struct {
	RunID         string         `json:"run_id"`
	ReportPath    string         `json:"report_path"`
	Metric        string         `json:"metric"`
	GeneratedAt   time.Time      `json:"generated_at"`
	Distributions []Distribution `json:"distributions"`
}
