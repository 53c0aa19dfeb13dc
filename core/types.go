package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Collection identifies which content memory bank an entry belongs to.
type Collection string

const (
	// CollectionStyle holds the user's own past content.
	CollectionStyle Collection = "style"

	// CollectionCreators holds transcripts from admired creators.
	CollectionCreators Collection = "creators"
)

// Entry is one stored piece of content in a memory bank.
type Entry struct {
	ID         string     `json:"id"`
	Collection Collection `json:"collection"`

	// Creator is set only for CollectionCreators entries.
	Creator string `json:"creator,omitempty"`

	Title string `json:"title"`
	Body  string `json:"body"`

	// Notes are free-form style annotations ("casual tone, uses humor")
	// or, for creator clips, what the user likes about them.
	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Validation and lookup errors shared across packages.
var (
	ErrEmptyTitle   = errors.New("title is required")
	ErrEmptyBody    = errors.New("content body is required")
	ErrEmptyCreator = errors.New("creator name is required")
	ErrEmptyDraft   = errors.New("draft script is empty")
	ErrNotFound     = errors.New("entry not found")
)

// InspirationSource selects which memory banks feed the improvement.
type InspirationSource string

const (
	// SourceStyle draws only on the user's own content.
	SourceStyle InspirationSource = "style"

	// SourceCreators draws only on favorite-creator content.
	SourceCreators InspirationSource = "creators"

	// SourceBoth draws on both banks.
	SourceBoth InspirationSource = "both"
)

// ParseInspirationSource parses a user-supplied source name.
func ParseInspirationSource(s string) (InspirationSource, error) {
	switch InspirationSource(strings.ToLower(strings.TrimSpace(s))) {
	case SourceStyle:
		return SourceStyle, nil
	case SourceCreators:
		return SourceCreators, nil
	case SourceBoth, "":
		return SourceBoth, nil
	default:
		return "", fmt.Errorf("unknown inspiration source %q (want style, creators or both)", s)
	}
}

// UsesStyle reports whether the source includes the user's own content.
func (s InspirationSource) UsesStyle() bool {
	return s == SourceStyle || s == SourceBoth
}

// UsesCreators reports whether the source includes favorite-creator content.
func (s InspirationSource) UsesCreators() bool {
	return s == SourceCreators || s == SourceBoth
}

// FocusArea is the aspect of the script the improvement concentrates on.
type FocusArea string

const (
	FocusStorytelling FocusArea = "storytelling"
	FocusHook         FocusArea = "hook"
	FocusCTA          FocusArea = "cta"
	FocusClarity      FocusArea = "clarity"
	FocusEngagement   FocusArea = "engagement"
	FocusVoice        FocusArea = "voice"
)

// focusPhrases maps each focus area to the phrasing used in prompts.
var focusPhrases = map[FocusArea]string{
	FocusStorytelling: "Overall storytelling and flow",
	FocusHook:         "Hook and opening strength",
	FocusCTA:          "Call-to-action effectiveness",
	FocusClarity:      "Clarity and structure",
	FocusEngagement:   "Emotional engagement",
	FocusVoice:        "Match my personal voice",
}

// ParseFocusArea parses a user-supplied focus name.
func ParseFocusArea(s string) (FocusArea, error) {
	f := FocusArea(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FocusStorytelling, nil
	}
	if _, ok := focusPhrases[f]; !ok {
		return "", fmt.Errorf("unknown focus area %q (want one of %s)", s, strings.Join(FocusAreaNames(), ", "))
	}
	return f, nil
}

// Phrase returns the prompt phrasing for the focus area.
func (f FocusArea) Phrase() string {
	if p, ok := focusPhrases[f]; ok {
		return p
	}
	return string(f)
}

// FocusAreaNames returns all valid focus area names, for CLI help text.
func FocusAreaNames() []string {
	return []string{
		string(FocusStorytelling),
		string(FocusHook),
		string(FocusCTA),
		string(FocusClarity),
		string(FocusEngagement),
		string(FocusVoice),
	}
}

// TokenUsage tracks chat API token consumption for a run.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Add accumulates another usage into u.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}
