package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OllamaClient generates embeddings through a local Ollama server.
type OllamaClient struct {
	baseURL    string
	model      string
	dimensions int
	client     *http.Client
}

// ollamaEmbedRequest is the request body for the Ollama embed API.
type ollamaEmbedRequest struct {
	Model    string   `json:"model"`
	Input    []string `json:"input"`
	Truncate bool     `json:"truncate,omitempty"`
}

// ollamaEmbedResponse is the response from the Ollama embed API.
type ollamaEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// NewOllamaClient creates a new Ollama embedding client.
// If baseURL is empty, the local default is used.
func NewOllamaClient(baseURL, model string) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	return &OllamaClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		dimensions: ModelDimensions(model),
		client:     &http.Client{},
	}
}

// Embed generates an embedding for the given text.
func (c *OllamaClient) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := c.embedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return embeddings[0], nil
}

// EmbedBatch generates embeddings for multiple texts.
func (c *OllamaClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	return c.embedTexts(ctx, texts)
}

// Dimensions returns the embedding dimensions.
func (c *OllamaClient) Dimensions() int {
	return c.dimensions
}

// Provider returns the provider name.
func (c *OllamaClient) Provider() Provider {
	return ProviderOllama
}

// ModelName returns the model name.
func (c *OllamaClient) ModelName() string {
	return c.model
}

// embedTexts performs the actual embedding request.
func (c *OllamaClient) embedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	reqBody := ollamaEmbedRequest{
		Model:    c.model,
		Input:    texts,
		Truncate: true,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/api/embed"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body))
	}

	var result ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Correct the dimensions from the first live response.
	if len(result.Embeddings) > 0 && len(result.Embeddings[0]) > 0 {
		c.dimensions = len(result.Embeddings[0])
	}

	return result.Embeddings, nil
}
