//go:build onnx

package main

import (
	"github.com/spf13/viper"

	"github.com/draftwise/draftwise/embed"
	"github.com/draftwise/draftwise/embed/onnx"
)

// newEmbedder builds the local MiniLM embedder. Config keys onnx_model
// and onnx_tokenizer point at the model files; no API key is needed for
// embeddings in this build.
func newEmbedder() (embed.Embedder, func(), error) {
	inner, err := onnx.New(onnx.Config{
		ModelPath:     viper.GetString("onnx_model"),
		TokenizerPath: viper.GetString("onnx_tokenizer"),
	})
	if err != nil {
		return nil, nil, err
	}
	cached, err := embed.NewCached(inner, 0)
	if err != nil {
		inner.Close()
		return nil, nil, err
	}
	cleanup := func() {
		cached.Close()
		inner.Close()
	}
	return cached, cleanup, nil
}
