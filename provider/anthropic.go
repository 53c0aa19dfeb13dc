package provider

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/draftwise/draftwise/core"
)

const anthropicDefaultMaxTokens = 4096

// Anthropic is the Claude chat provider.
type Anthropic struct {
	client *anthropic.Client
}

// NewAnthropic creates a Claude provider with the given API key.
func NewAnthropic(apiKey string) *Anthropic {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Anthropic{client: &client}
}

// Name identifies the provider.
func (a *Anthropic) Name() string {
	return NameAnthropic
}

func (a *Anthropic) params(req *Request) anthropic.MessageNewParams {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	return params
}

// Complete runs a single-turn request against the Messages API.
func (a *Anthropic) Complete(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.Messages.New(ctx, a.params(req))
	if err != nil {
		return nil, fmt.Errorf("claude API error: %w", err)
	}
	return anthropicResponse(resp), nil
}

// Stream runs the request with streaming, invoking onChunk per text delta.
func (a *Anthropic) Stream(ctx context.Context, req *Request, onChunk func(string)) (*Response, error) {
	stream := a.client.Messages.NewStreaming(ctx, a.params(req))
	defer stream.Close()

	// Accumulate the full message from events while forwarding deltas.
	message := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()

		if err := message.Accumulate(event); err != nil {
			// Accumulation errors are non-fatal; the deltas still flow.
			continue
		}

		switch evt := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch delta := evt.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				onChunk(delta.Text)
			}
		}
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("claude streaming error: %w", err)
	}

	return anthropicResponse(&message), nil
}

func anthropicResponse(msg *anthropic.Message) *Response {
	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return &Response{
		Text: text,
		Usage: core.TokenUsage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
		},
	}
}
