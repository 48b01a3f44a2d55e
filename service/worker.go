package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"time"

	"aida-server/config"
	"aida-server/pipeline"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WorkerClient is the live generation collaborator: it submits a job to the
// generation worker, polls until the job settles, and re-hosts any produced
// files in the asset store so the returned URLs outlive the worker's job
// retention.
type WorkerClient struct {
	endpoint     string
	http         *http.Client
	assets       *AssetStore // nil keeps the worker's own URLs
	pollInterval time.Duration
	pollTimeout  time.Duration
	log          zerolog.Logger
}

func NewWorkerClient(cfg *config.Config, assets *AssetStore, log zerolog.Logger) *WorkerClient {
	return &WorkerClient{
		endpoint:     cfg.Worker.Addr,
		http:         &http.Client{Timeout: 30 * time.Second},
		assets:       assets,
		pollInterval: time.Duration(cfg.Worker.PollIntervalSec) * time.Second,
		pollTimeout:  time.Duration(cfg.Worker.PollTimeoutMin) * time.Minute,
		log:          log,
	}
}

type jobStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error"`
	Result struct {
		JSON   json.RawMessage `json:"json,omitempty"`
		Assets []struct {
			Kind        string `json:"kind"`
			URL         string `json:"url"`
			DurationSec int    `json:"durationSec"`
		} `json:"assets,omitempty"`
	} `json:"result"`
}

func (c *WorkerClient) Generate(ctx context.Context, req pipeline.Request) (*pipeline.Response, error) {
	jobID, err := c.submit(ctx, req)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("job_id", jobID).Str("stage", string(req.Stage)).Msg("generation job submitted")

	status, err := c.poll(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resp := &pipeline.Response{JSON: status.Result.JSON}
	for i, a := range status.Result.Assets {
		url := a.URL
		if c.assets != nil {
			url, err = c.rehost(ctx, string(req.Stage), a.URL)
			if err != nil {
				return nil, fmt.Errorf("re-host asset %d: %w", i, err)
			}
		}
		resp.Assets = append(resp.Assets, pipeline.Asset{
			Kind:        a.Kind,
			URL:         url,
			DurationSec: a.DurationSec,
		})
	}
	return resp, nil
}

func (c *WorkerClient) submit(ctx context.Context, req pipeline.Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("submit job: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("worker returned status %d", resp.StatusCode)
	}

	var out struct {
		ID    string `json:"id"`
		JobID string `json:"job_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode submit response: %w", err)
	}
	if out.ID != "" {
		return out.ID, nil
	}
	if out.JobID != "" {
		return out.JobID, nil
	}
	return "", fmt.Errorf("submit response missing job id")
}

func (c *WorkerClient) poll(ctx context.Context, jobID string) (*jobStatus, error) {
	jobURL := fmt.Sprintf("%s/v1/jobs/%s", c.endpoint, jobID)

	timeout := time.After(c.pollTimeout)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			return nil, fmt.Errorf("job %s: polling timed out", jobID)
		case <-ctx.Done():
			return nil, fmt.Errorf("job %s: %w", jobID, ctx.Err())
		case <-ticker.C:
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, jobURL, nil)
			if err != nil {
				return nil, fmt.Errorf("create poll request: %w", err)
			}
			resp, err := c.http.Do(req)
			if err != nil {
				// transient network error, keep polling; context
				// cancellation is caught above
				c.log.Warn().Err(err).Str("job_id", jobID).Msg("poll failed, retrying")
				continue
			}

			var status jobStatus
			err = json.NewDecoder(resp.Body).Decode(&status)
			resp.Body.Close()
			if err != nil {
				c.log.Warn().Err(err).Str("job_id", jobID).Msg("undecodable poll response, retrying")
				continue
			}

			switch status.Status {
			case "finished", "success", "succeeded", "completed":
				return &status, nil
			case "failed", "error":
				return nil, fmt.Errorf("job %s failed: %s", jobID, status.Error)
			}
			// still running
		}
	}
}

func (c *WorkerClient) rehost(ctx context.Context, stage, sourceURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("create download request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download asset: status %d", resp.StatusCode)
	}

	ext := path.Ext(sourceURL)
	if ext == "" {
		ext = ".bin"
	}
	objectName := fmt.Sprintf("%s/%s%s", stage, uuid.NewString(), ext)
	return c.assets.Put(ctx, objectName, resp.Body, resp.ContentLength)
}
