// Package provider abstracts the chat models that rewrite scripts.
//
// Two providers are implemented: Anthropic (Claude) and OpenAI (GPT).
// The model catalog maps the assistant's display names to provider and
// model id, so callers can say "Claude Sonnet 4" or pass a raw model id.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/draftwise/draftwise/core"
)

// Request is a single-turn completion request.
type Request struct {
	// Model is the provider-specific model id.
	Model string

	// System is the system prompt. May be empty.
	System string

	// Prompt is the user message.
	Prompt string

	// MaxTokens caps the response. Zero selects the provider default.
	MaxTokens int
}

// Response is the model's reply.
type Response struct {
	Text  string
	Usage core.TokenUsage
}

// Provider is a chat-model client.
type Provider interface {
	// Name identifies the provider ("anthropic", "openai").
	Name() string

	// Complete runs the request and returns the full response.
	Complete(ctx context.Context, req *Request) (*Response, error)

	// Stream runs the request, invoking onChunk for each text delta,
	// and returns the assembled response.
	Stream(ctx context.Context, req *Request, onChunk func(chunk string)) (*Response, error)
}

// Provider names used in the model catalog and client registries.
const (
	NameAnthropic = "anthropic"
	NameOpenAI    = "openai"
)

// ModelSpec describes one selectable model.
type ModelSpec struct {
	// DisplayName is the human-facing name ("Claude Sonnet 4").
	DisplayName string

	// Provider is which client serves this model.
	Provider string

	// ID is the provider's model identifier.
	ID string

	// MaxTokens is the response cap used when the caller does not set one.
	MaxTokens int
}

// Catalog lists the supported models. The first entry is the default.
var Catalog = []ModelSpec{
	{DisplayName: "Claude Sonnet 4", Provider: NameAnthropic, ID: "claude-sonnet-4-20250514", MaxTokens: 1000},
	{DisplayName: "GPT-5", Provider: NameOpenAI, ID: "gpt-5", MaxTokens: 4096},
}

// DefaultModel returns the catalog default.
func DefaultModel() ModelSpec {
	return Catalog[0]
}

// Resolve finds a model by display name (case-insensitive) or model id.
func Resolve(nameOrID string) (ModelSpec, error) {
	s := strings.TrimSpace(nameOrID)
	if s == "" {
		return DefaultModel(), nil
	}
	for _, m := range Catalog {
		if strings.EqualFold(m.DisplayName, s) || m.ID == s {
			return m, nil
		}
	}
	return ModelSpec{}, fmt.Errorf("unknown model %q (want one of %s)", nameOrID, strings.Join(ModelNames(), ", "))
}

// ModelNames lists the display names in the catalog.
func ModelNames() []string {
	names := make([]string, len(Catalog))
	for i, m := range Catalog {
		names[i] = m.DisplayName
	}
	return names
}
