// Package embedding provides clients for external text-to-vector services.
//
// The collection core never calls these itself; the hosting application
// embeds documents and queries and passes the resulting vectors in. Calls
// are blocking and carry no internal timeout or retry; use the context (or
// a custom HTTP client) to bound them.
package embedding

import (
	"context"
)

// Provider identifies an embedding service provider.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// Embedder generates fixed-length embedding vectors for text.
type Embedder interface {
	// Embed generates an embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding dimensions for this model.
	Dimensions() int

	// Provider returns the provider name.
	Provider() Provider

	// ModelName returns the model name.
	ModelName() string
}

// Known model dimensions
var modelDimensions = map[string]int{
	// Ollama models
	"all-minilm:l6-v2":  384,
	"all-minilm":        384,
	"nomic-embed-text":  768,
	"mxbai-embed-large": 1024,

	// OpenAI models
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// ModelDimensions returns the known dimensions for a model, or 0 if unknown.
func ModelDimensions(model string) int {
	return modelDimensions[model]
}
