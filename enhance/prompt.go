package enhance

import (
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/draftwise/draftwise/core"
	"github.com/draftwise/draftwise/library"
)

// SystemPrompt frames the model as a script editor.
const SystemPrompt = `You are an expert script editor specializing in content creation and storytelling.`

// contextSnippetLen caps how much of each retrieved example goes into the
// prompt, so a handful of long transcripts cannot crowd out the draft.
const contextSnippetLen = 400

// noExamplesContext is used when retrieval found nothing.
const noExamplesContext = "No relevant examples found."

var promptTemplate = template.Must(template.New("enhance").Parse(
	`ORIGINAL SCRIPT TO IMPROVE:
"{{.Draft}}"

FOCUS AREA: {{.Focus}}

INSPIRATION SOURCES:
{{.Context}}

Your task:
1. Rewrite and improve the original script, focusing specifically on {{.FocusLower}}
2. Draw inspiration from the provided examples while maintaining the user's authentic voice
3. Enhance storytelling elements, structure, and engagement
4. Keep the core message but elevate the execution

Provide the improved script.

Make it compelling, authentic, and ready to use.`))

type promptData struct {
	Draft      string
	Focus      string
	FocusLower string
	Context    string
}

func renderPrompt(draft string, focus core.FocusArea, contextBlock string) (string, error) {
	var sb strings.Builder
	err := promptTemplate.Execute(&sb, promptData{
		Draft:      draft,
		Focus:      focus.Phrase(),
		FocusLower: strings.ToLower(focus.Phrase()),
		Context:    contextBlock,
	})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return sb.String(), nil
}

// buildContext assembles the inspiration block from retrieved matches.
func buildContext(styleMatches, creatorMatches []library.Match) string {
	var parts []string

	if len(styleMatches) > 0 {
		parts = append(parts, "Your personal writing style examples:")
		for i, m := range styleMatches {
			parts = append(parts, fmt.Sprintf("Your Style Example %d - '%s':\n%s",
				i+1, m.Entry.Title, snippet(m.Entry.Body)))
		}
	}

	if len(creatorMatches) > 0 {
		parts = append(parts, "\nSuccessful creator examples for inspiration:")
		for i, m := range creatorMatches {
			parts = append(parts, fmt.Sprintf("Creator Example %d - %s: '%s':\n%s",
				i+1, m.Entry.Creator, m.Entry.Title, snippet(m.Entry.Body)))
		}
	}

	if len(parts) == 0 {
		return noExamplesContext
	}
	return strings.Join(parts, "\n\n")
}

func snippet(body string) string {
	if len(body) <= contextSnippetLen {
		return body
	}
	// Back up so the cut never splits a UTF-8 rune.
	cut := contextSnippetLen
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + "..."
}
