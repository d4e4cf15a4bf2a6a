package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"print3d-shop/internal/config"
	"time"
)

// Terminal and in-flight task states reported by the generation API.
const (
	TaskPending    = "PENDING"
	TaskInProgress = "IN_PROGRESS"
	TaskSucceeded  = "SUCCEEDED"
	TaskFailed     = "FAILED"
	TaskCanceled   = "CANCELED"
)

type TaskStatus struct {
	Status   string
	ModelURL string
}

type GenerationClient interface {
	CreateTask(ctx context.Context, prompt string) (string, error)
	GetTask(ctx context.Context, taskID string) (*TaskStatus, error)
	DownloadModel(ctx context.Context, modelURL string) (io.ReadCloser, error)
}

type meshyClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	apiKey     string
}

func NewMeshyClient(meshyCfg *config.Meshy) GenerationClient {
	return &meshyClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: meshyCfg.BaseApiURL,
		apiKey:     meshyCfg.APIKey,
	}
}

func (c *meshyClientImpl) CreateTask(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"mode":      "preview",
		"prompt":    prompt,
		"art_style": "realistic",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/openapi/v2/text-to-3d",
		bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generation api error %d: %s", resp.StatusCode, string(b))
	}

	var result struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}
	if result.Result == "" {
		return "", fmt.Errorf("generation api returned no task id")
	}

	return result.Result, nil
}

func (c *meshyClientImpl) GetTask(ctx context.Context, taskID string) (*TaskStatus, error) {
	url := fmt.Sprintf("%s/openapi/v2/text-to-3d/%s", c.baseApiURL, taskID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("generation api error %d: %s", resp.StatusCode, string(b))
	}

	var result struct {
		Status    string `json:"status"`
		ModelURLs struct {
			Obj string `json:"obj"`
		} `json:"model_urls"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode task status: %w", err)
	}

	return &TaskStatus{
		Status:   result.Status,
		ModelURL: result.ModelURLs.Obj,
	}, nil
}

func (c *meshyClientImpl) DownloadModel(ctx context.Context, modelURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, modelURL, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download model: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("download model: status %d", resp.StatusCode)
	}

	return resp.Body, nil
}
