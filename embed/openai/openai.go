// Package openai embeds text through the OpenAI embeddings API.
package openai

import (
	"context"
	"fmt"

	oai "github.com/sashabaranov/go-openai"
)

// Default model and its vector size.
const (
	DefaultModel      = oai.SmallEmbedding3 // text-embedding-3-small
	defaultDimensions = 1536
)

// Config configures the OpenAI embedder.
type Config struct {
	// APIKey is the OpenAI API key. Required.
	APIKey string

	// Model overrides the embedding model (default: text-embedding-3-small).
	Model oai.EmbeddingModel

	// Dimensions is the vector size of the chosen model
	// (default: 1536 for text-embedding-3-small).
	Dimensions int
}

// Embedder generates embeddings via the OpenAI API.
type Embedder struct {
	client     *oai.Client
	model      oai.EmbeddingModel
	dimensions int
}

// New creates an OpenAI embedder.
func New(cfg Config) (*Embedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("APIKey is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = defaultDimensions
	}

	return &Embedder{
		client:     oai.NewClient(cfg.APIKey),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed converts text to an embedding vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, oai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embeddings: empty response")
	}
	return resp.Data[0].Embedding, nil
}

// Dimensions returns the embedding vector size.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}
