package embedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient generates embeddings through the OpenAI API or any
// OpenAI-compatible endpoint.
type OpenAIClient struct {
	client     openai.Client
	model      string
	dimensions int
}

// NewOpenAIClient creates a new OpenAI embedding client.
// baseURL may be empty to use the OpenAI API.
func NewOpenAIClient(apiKey, model, baseURL string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIClient{
		client:     openai.NewClient(opts...),
		model:      model,
		dimensions: ModelDimensions(model),
	}, nil
}

// Embed generates an embedding for the given text.
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
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
func (c *OpenAIClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	return c.embedTexts(ctx, texts)
}

// Dimensions returns the embedding dimensions.
func (c *OpenAIClient) Dimensions() int {
	return c.dimensions
}

// Provider returns the provider name.
func (c *OpenAIClient) Provider() Provider {
	return ProviderOpenAI
}

// ModelName returns the model name.
func (c *OpenAIClient) ModelName() string {
	return c.model
}

// embedTexts performs the actual embedding request.
func (c *OpenAIClient) embedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}

	// Responses may arrive out of order; place each by its index.
	embeddings := make([][]float32, len(texts))
	for _, data := range resp.Data {
		idx := int(data.Index)
		if idx >= len(embeddings) {
			continue
		}
		vec := make([]float32, len(data.Embedding))
		for i, v := range data.Embedding {
			vec[i] = float32(v)
		}
		embeddings[idx] = vec
	}

	if len(embeddings) > 0 && len(embeddings[0]) > 0 {
		c.dimensions = len(embeddings[0])
	}

	return embeddings, nil
}
