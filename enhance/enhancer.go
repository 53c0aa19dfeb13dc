// Package enhance turns a rough script draft into a polished script.
//
// The pipeline retrieves similar examples from the content memory banks,
// folds them into an editing prompt, and sends it to the selected chat
// model. Retrieval failures degrade to fewer examples rather than failing
// the run.
package enhance

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/draftwise/draftwise/core"
	"github.com/draftwise/draftwise/library"
	"github.com/draftwise/draftwise/provider"
)

// How many examples each bank contributes to the prompt.
const (
	styleExampleCount   = 2
	creatorExampleCount = 3
)

// Options configures one improvement run.
type Options struct {
	// Source selects which memory banks feed the prompt. Default: both.
	Source core.InspirationSource

	// Focus is the improvement focus area. Default: storytelling.
	Focus core.FocusArea

	// Creators restricts creator retrieval to these names. Empty = all.
	Creators []string

	// Model is a catalog display name or model id. Default: catalog default.
	Model string

	// OnChunk, when set, streams response text deltas as they arrive.
	OnChunk func(chunk string)
}

// Result is the outcome of an improvement run.
type Result struct {
	// Text is the improved script.
	Text string `json:"text"`

	// Model is the model id that produced it.
	Model string `json:"model"`

	Usage core.TokenUsage `json:"usage"`

	// StyleMatches and CreatorMatches record which examples fed the prompt.
	StyleMatches   []library.Match `json:"style_matches,omitempty"`
	CreatorMatches []library.Match `json:"creator_matches,omitempty"`
}

// Enhancer runs improvement pipelines over a library and a set of
// provider clients keyed by provider name.
type Enhancer struct {
	lib       *library.Library
	providers map[string]provider.Provider
}

// New creates an Enhancer. providers maps provider names
// (provider.NameAnthropic, provider.NameOpenAI) to configured clients;
// models whose provider has no client fail at run time with a clear error.
func New(lib *library.Library, providers map[string]provider.Provider) *Enhancer {
	return &Enhancer{lib: lib, providers: providers}
}

// Improve rewrites draft according to opts.
func (e *Enhancer) Improve(ctx context.Context, draft string, opts Options) (*Result, error) {
	if strings.TrimSpace(draft) == "" {
		return nil, core.ErrEmptyDraft
	}

	source := opts.Source
	if source == "" {
		source = core.SourceBoth
	}
	focus := opts.Focus
	if focus == "" {
		focus = core.FocusStorytelling
	}

	model, err := provider.Resolve(opts.Model)
	if err != nil {
		return nil, err
	}
	client, ok := e.providers[model.Provider]
	if !ok {
		return nil, fmt.Errorf("no client configured for provider %q (model %s)", model.Provider, model.DisplayName)
	}

	// Retrieve inspiration. A failed bank logs and degrades; the model can
	// still improve the draft without examples.
	var styleMatches, creatorMatches []library.Match
	if source.UsesStyle() {
		styleMatches, err = e.lib.SearchStyle(ctx, draft, styleExampleCount)
		if err != nil {
			log.Printf("[ENHANCE] style retrieval failed: %v", err)
			styleMatches = nil
		}
	}
	if source.UsesCreators() {
		creatorMatches, err = e.lib.SearchCreators(ctx, draft, creatorExampleCount, opts.Creators)
		if err != nil {
			log.Printf("[ENHANCE] creator retrieval failed: %v", err)
			creatorMatches = nil
		}
	}
	log.Printf("[ENHANCE] using %d style and %d creator examples (source=%s, focus=%s)",
		len(styleMatches), len(creatorMatches), source, focus)

	prompt, err := renderPrompt(draft, focus, buildContext(styleMatches, creatorMatches))
	if err != nil {
		return nil, err
	}

	req := &provider.Request{
		Model:     model.ID,
		System:    SystemPrompt,
		Prompt:    prompt,
		MaxTokens: model.MaxTokens,
	}

	var resp *provider.Response
	if opts.OnChunk != nil {
		resp, err = client.Stream(ctx, req, opts.OnChunk)
	} else {
		resp, err = client.Complete(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[ENHANCE] %s produced %d chars (in=%d out=%d tokens)",
		model.ID, len(resp.Text), resp.Usage.InputTokens, resp.Usage.OutputTokens)

	return &Result{
		Text:           resp.Text,
		Model:          model.ID,
		Usage:          resp.Usage,
		StyleMatches:   styleMatches,
		CreatorMatches: creatorMatches,
	}, nil
}
