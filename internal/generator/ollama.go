// Package generator produces deck skeletons and replacement picks from
// a local LLM. Output is names only; the lookup service turns names
// into real cards and the validator decides what survives.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// OllamaConfig configures the Ollama client.
type OllamaConfig struct {
	// BaseURL is the Ollama API endpoint.
	BaseURL string

	// Model is the model name to use.
	Model string

	// RequestTimeout is the timeout for status API requests.
	RequestTimeout time.Duration

	// InferenceTimeout is the timeout for generation requests.
	InferenceTimeout time.Duration

	// MaxRetries is the number of retries for failed requests.
	MaxRetries int

	// AutoPullModel automatically pulls the model if not available.
	AutoPullModel bool
}

// DefaultOllamaConfig returns sensible defaults.
func DefaultOllamaConfig() *OllamaConfig {
	return &OllamaConfig{
		BaseURL:          "http://localhost:11434",
		Model:            "qwen3:8b",
		RequestTimeout:   30 * time.Second,
		InferenceTimeout: 120 * time.Second,
		MaxRetries:       2,
		AutoPullModel:    true,
	}
}

// OllamaClient provides access to the Ollama API.
type OllamaClient struct {
	config     *OllamaConfig
	httpClient *http.Client
	available  bool
	modelReady bool
	lastCheck  time.Time
	mu         sync.RWMutex
}

// OllamaStatus reports Ollama and model availability.
type OllamaStatus struct {
	Available    bool     `json:"available"`
	Version      string   `json:"version,omitempty"`
	ModelReady   bool     `json:"model_ready"`
	ModelName    string   `json:"model_name"`
	ModelsLoaded []string `json:"models_loaded,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// ChatMessage represents a chat message.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// ChatRequest is the request body for chat completions.
type ChatRequest struct {
	Model    string           `json:"model"`
	Messages []ChatMessage    `json:"messages"`
	Stream   bool             `json:"stream"`
	Options  *GenerateOptions `json:"options,omitempty"`
}

// GenerateOptions are optional inference parameters.
type GenerateOptions struct {
	Temperature float64  `json:"temperature,omitempty"`
	TopP        float64  `json:"top_p,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}

// ChatResponse is the response from chat completions.
type ChatResponse struct {
	Model     string      `json:"model"`
	CreatedAt string      `json:"created_at"`
	Message   ChatMessage `json:"message"`
	Done      bool        `json:"done"`
}

type versionResponse struct {
	Version string `json:"version"`
}

type listModelsResponse struct {
	Models []modelInfo `json:"models"`
}

type modelInfo struct {
	Name string `json:"name"`
}

// NewOllamaClient creates a new Ollama client.
func NewOllamaClient(config *OllamaConfig) *OllamaClient {
	if config == nil {
		config = DefaultOllamaConfig()
	}
	return &OllamaClient{
		config: config,
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
	}
}

// CheckAvailability checks whether Ollama is running and the model is
// ready, pulling it when AutoPullModel is set.
func (c *OllamaClient) CheckAvailability(ctx context.Context) *OllamaStatus {
	status := &OllamaStatus{ModelName: c.config.Model}

	version, err := c.getVersion(ctx)
	if err != nil {
		status.Error = fmt.Sprintf("Ollama not available: %v", err)
		c.setAvailability(false, false)
		return status
	}
	status.Available = true
	status.Version = version

	models, err := c.listModels(ctx)
	if err != nil {
		status.Error = fmt.Sprintf("Failed to list models: %v", err)
		c.setAvailability(true, false)
		return status
	}

	status.ModelsLoaded = make([]string, 0, len(models))
	for _, m := range models {
		status.ModelsLoaded = append(status.ModelsLoaded, m.Name)
		if strings.HasPrefix(m.Name, strings.Split(c.config.Model, ":")[0]) {
			status.ModelReady = true
		}
	}

	if !status.ModelReady && c.config.AutoPullModel {
		if pullErr := c.PullModel(ctx); pullErr != nil {
			status.Error = fmt.Sprintf("Failed to pull model: %v", pullErr)
		} else {
			status.ModelReady = true
		}
	}

	c.setAvailability(status.Available, status.ModelReady)
	return status
}

// IsAvailable returns whether Ollama is currently usable.
func (c *OllamaClient) IsAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.available && c.modelReady
}

// Chat sends a chat completion request.
func (c *OllamaClient) Chat(ctx context.Context, messages []ChatMessage, options *GenerateOptions) (*ChatResponse, error) {
	if !c.IsAvailable() {
		status := c.CheckAvailability(ctx)
		if !status.Available || !status.ModelReady {
			return nil, fmt.Errorf("ollama not available: %s", status.Error)
		}
	}

	req := &ChatRequest{
		Model:    c.config.Model,
		Messages: messages,
		Stream:   false,
		Options:  options,
	}
	return c.doChat(ctx, req)
}

// PullModel pulls the configured model.
func (c *OllamaClient) PullModel(ctx context.Context) error {
	url := c.config.BaseURL + "/api/pull"

	body, err := json.Marshal(map[string]any{
		"name":   c.config.Model,
		"stream": false,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Model pulls can take a long time.
	client := &http.Client{Timeout: 30 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("pull request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("pull failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

func (c *OllamaClient) doChat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	url := c.config.BaseURL + "/api/chat"

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: c.config.InferenceTimeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("chat failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &chatResp, nil
}

func (c *OllamaClient) getVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/version", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("version check failed with status %d", resp.StatusCode)
	}

	var version versionResponse
	if err := json.NewDecoder(resp.Body).Decode(&version); err != nil {
		return "", err
	}
	return version.Version, nil
}

func (c *OllamaClient) listModels(ctx context.Context) ([]modelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list models failed with status %d", resp.StatusCode)
	}

	var models listModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		return nil, err
	}
	return models.Models, nil
}

func (c *OllamaClient) setAvailability(available, modelReady bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.available = available
	c.modelReady = modelReady
	c.lastCheck = time.Now()
}

// GetModel returns the configured model name.
func (c *OllamaClient) GetModel() string {
	return c.config.Model
}
