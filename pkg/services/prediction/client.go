// Package prediction consumes the remote prediction service as an opaque
// collaborator: clinical features go in, a finished report JSON comes back.
// No prediction logic lives in this module.
package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/med-tools/clinreport/pkg/models/domain"
	"github.com/med-tools/clinreport/pkg/services/config"
)

type Client struct {
	endpoint config.Endpoint
	client   *http.Client
}

func NewClient(endpoint config.Endpoint, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{endpoint: endpoint, client: client}
}

// Predict submits a feature map and returns the service's report. One
// attempt only; a non-2xx status surfaces as an error.
func (c *Client) Predict(ctx context.Context, features map[string]interface{}) (*domain.ReportData, error) {
	body, err := json.Marshal(map[string]interface{}{"features": features})
	if err != nil {
		return nil, fmt.Errorf("encode prediction request: %w", err)
	}

	url := c.endpoint.Host + "/api/v1/predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.endpoint.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.endpoint.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prediction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<14))
		return nil, fmt.Errorf("prediction service returned %d: %s", resp.StatusCode, string(raw))
	}

	var report domain.ReportData
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode prediction response: %w", err)
	}
	return &report, nil
}
