package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

// --- Visualization (/generate-violin) ---
type Group struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

type ViolinReq struct {
	Title      string    `json:"title"`
	XLabel     string    `json:"x_label"`
	Groups     []Group   `json:"groups"`
	RefLines   []float64 `json:"ref_lines,omitempty"`
	Formats    []string  `json:"formats"`
	OutputBase string    `json:"output_base"`
	OutputDir  string    `json:"output_dir,omitempty"`
}

type ViolinResp struct {
	Status string   `json:"status"`
	Paths  []string `json:"paths"`
}

// RenderDistribution asks the visualization service to draw one violin per
// group and save it as outputBase.pdf and outputBase.png. Transport errors,
// 429 and 5xx responses are retried.
func (h *HTTP) RenderDistribution(ctx context.Context, url string, req ViolinReq) (*ViolinResp, error) {
	if len(req.Formats) == 0 {
		req.Formats = []string{"pdf", "png"}
	}
	b, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("viz violin encode: %w", err)
	}

	var out ViolinResp
	err = retry.Do(
		func() error {
			r, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/generate-violin", bytes.NewReader(b))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			r.Header.Set("Content-Type", "application/json")
			resp, err := h.c.Do(r)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
				err := fmt.Errorf("viz violin %s: %s", resp.Status, string(body))
				if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
					return err
				}
				return retry.Unrecoverable(err)
			}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return retry.Unrecoverable(fmt.Errorf("viz violin decode: %w", err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(h.attempts),
		retry.Delay(h.retryDelay),
		retry.MaxDelay(30*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
