package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	oai "github.com/sashabaranov/go-openai"

	"github.com/draftwise/draftwise/core"
)

// OpenAI is the GPT chat provider.
type OpenAI struct {
	client *oai.Client
}

// NewOpenAI creates a GPT provider with the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{client: oai.NewClient(apiKey)}
}

// Name identifies the provider.
func (o *OpenAI) Name() string {
	return NameOpenAI
}

func (o *OpenAI) request(req *Request) oai.ChatCompletionRequest {
	var messages []oai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, oai.ChatCompletionMessage{
			Role:    oai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, oai.ChatCompletionMessage{
		Role:    oai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	return oai.ChatCompletionRequest{
		Model:               req.Model,
		Messages:            messages,
		MaxCompletionTokens: req.MaxTokens,
	}
}

// Complete runs a single-turn request against the chat completions API.
func (o *OpenAI) Complete(ctx context.Context, req *Request) (*Response, error) {
	resp, err := o.client.CreateChatCompletion(ctx, o.request(req))
	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai API error: empty response")
	}
	return &Response{
		Text: resp.Choices[0].Message.Content,
		Usage: core.TokenUsage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

// Stream runs the request with streaming, invoking onChunk per text delta.
func (o *OpenAI) Stream(ctx context.Context, req *Request, onChunk func(string)) (*Response, error) {
	chatReq := o.request(req)
	chatReq.Stream = true
	chatReq.StreamOptions = &oai.StreamOptions{IncludeUsage: true}

	stream, err := o.client.CreateChatCompletionStream(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("openai streaming error: %w", err)
	}
	defer stream.Close()

	var text strings.Builder
	var usage core.TokenUsage
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("openai streaming error: %w", err)
		}

		// The final usage chunk carries no choices.
		if chunk.Usage != nil {
			usage.InputTokens = chunk.Usage.PromptTokens
			usage.OutputTokens = chunk.Usage.CompletionTokens
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			text.WriteString(delta)
			onChunk(delta)
		}
	}

	return &Response{Text: text.String(), Usage: usage}, nil
}
