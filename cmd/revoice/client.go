package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"revoice/internal/api"
)

// apiClient is a thin HTTP wrapper over the daemon's job API.
type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("is revoiced running? %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr api.ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *apiClient) submit(ctx context.Context, req api.SubmitRequest) (api.JobResponse, error) {
	var job api.JobResponse
	err := c.do(ctx, http.MethodPost, "/api/jobs", req, &job)
	return job, err
}

func (c *apiClient) job(ctx context.Context, id string) (api.JobResponse, error) {
	var job api.JobResponse
	err := c.do(ctx, http.MethodGet, "/api/jobs/"+id, nil, &job)
	return job, err
}

func (c *apiClient) jobs(ctx context.Context) ([]api.JobResponse, error) {
	var list api.JobListResponse
	if err := c.do(ctx, http.MethodGet, "/api/jobs", nil, &list); err != nil {
		return nil, err
	}
	return list.Jobs, nil
}

func (c *apiClient) languages(ctx context.Context) ([]api.LanguageResponse, error) {
	var langs []api.LanguageResponse
	err := c.do(ctx, http.MethodGet, "/api/languages", nil, &langs)
	return langs, err
}

func (c *apiClient) status(ctx context.Context) (api.StatusResponse, error) {
	var status api.StatusResponse
	err := c.do(ctx, http.MethodGet, "/api/status", nil, &status)
	return status, err
}
