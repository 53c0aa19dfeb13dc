//go:build !onnx

package main

import (
	"fmt"
	"os"

	"github.com/draftwise/draftwise/embed"
	oaiembed "github.com/draftwise/draftwise/embed/openai"
)

// newEmbedder builds the default embedder: OpenAI embeddings behind a
// local cache. Building with -tags onnx swaps in the local MiniLM model.
func newEmbedder() (embed.Embedder, func(), error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, nil, fmt.Errorf("embeddings need OPENAI_API_KEY set in the environment or .env file")
	}

	inner, err := oaiembed.New(oaiembed.Config{APIKey: key})
	if err != nil {
		return nil, nil, err
	}
	cached, err := embed.NewCached(inner, 0)
	if err != nil {
		return nil, nil, err
	}
	return cached, cached.Close, nil
}
