package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/verilens/verilens/internal/util"
	"github.com/verilens/verilens/internal/worker"
)

// HFProvider calls one model behind the Hugging Face Inference Providers
// router. One instance per model ID; the same type serves both classifier
// and object-detection models since the wire contract is identical.
type HFProvider struct {
	modelID    string
	url        string
	apiKey     string
	httpClient *http.Client
	limiter    *worker.Limiter
}

// hfError is the error-shaped body some non-200 responses carry
type hfError struct {
	Error         string  `json:"error"`
	Message       string  `json:"message"`
	EstimatedTime float64 `json:"estimated_time"`
}

// NewHFProvider creates a provider for the given model ID
func NewHFProvider(modelID string, cfg Config, limiter *worker.Limiter) *HFProvider {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &HFProvider{
		modelID: modelID,
		url:     strings.TrimSuffix(cfg.BaseURL, "/") + "/" + modelID,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
		},
		limiter: limiter,
	}
}

// Name returns the model ID
func (p *HFProvider) Name() string {
	return p.modelID
}

// Infer POSTs the raw image bytes and returns the JSON body on success.
// Failure modes (transport error, non-200 status, non-JSON body) are all
// errors here; the cascade decides what to do with them.
func (p *HFProvider) Infer(ctx context.Context, image []byte) (json.RawMessage, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, p.url); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call '%s': %w", p.modelID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from '%s': %w", p.modelID, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		if !json.Valid(body) {
			return nil, fmt.Errorf("non-JSON response from '%s'", p.modelID)
		}
		return body, nil

	case http.StatusServiceUnavailable:
		// Cold start. The ETA is a hint only; never wait on it.
		eta := "unknown"
		var apiErr hfError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.EstimatedTime > 0 {
			eta = fmt.Sprintf("%.0fs", apiErr.EstimatedTime)
		}
		return nil, fmt.Errorf("model '%s' is warming up (ETA: %s)", p.modelID, eta)

	case http.StatusUnauthorized:
		return nil, fmt.Errorf("%w (401) for '%s': ensure the token can call inference providers", ErrUnauthorized, p.modelID)

	default:
		msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
		var apiErr hfError
		if json.Unmarshal(body, &apiErr) == nil {
			if apiErr.Error != "" {
				msg = apiErr.Error
			} else if apiErr.Message != "" {
				msg = apiErr.Message
			}
		}
		return nil, fmt.Errorf("inference error for '%s': %s", p.modelID, msg)
	}
}
