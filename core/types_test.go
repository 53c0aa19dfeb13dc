package core_test

import (
	"testing"

	"github.com/draftwise/draftwise/core"
)

func TestParseInspirationSource(t *testing.T) {
	cases := []struct {
		in      string
		want    core.InspirationSource
		wantErr bool
	}{
		{"style", core.SourceStyle, false},
		{"creators", core.SourceCreators, false},
		{"both", core.SourceBoth, false},
		{"", core.SourceBoth, false},
		{" Both ", core.SourceBoth, false},
		{"everything", "", true},
	}

	for _, tc := range cases {
		got, err := core.ParseInspirationSource(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseInspirationSource(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseInspirationSource(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseInspirationSource(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInspirationSourceSelection(t *testing.T) {
	if !core.SourceStyle.UsesStyle() || core.SourceStyle.UsesCreators() {
		t.Error("SourceStyle should use style only")
	}
	if core.SourceCreators.UsesStyle() || !core.SourceCreators.UsesCreators() {
		t.Error("SourceCreators should use creators only")
	}
	if !core.SourceBoth.UsesStyle() || !core.SourceBoth.UsesCreators() {
		t.Error("SourceBoth should use both banks")
	}
}

func TestParseFocusArea(t *testing.T) {
	f, err := core.ParseFocusArea("hook")
	if err != nil {
		t.Fatalf("ParseFocusArea(hook): %v", err)
	}
	if f != core.FocusHook {
		t.Errorf("got %q, want %q", f, core.FocusHook)
	}
	if f.Phrase() != "Hook and opening strength" {
		t.Errorf("unexpected phrase: %q", f.Phrase())
	}

	// Empty defaults to storytelling.
	f, err = core.ParseFocusArea("")
	if err != nil || f != core.FocusStorytelling {
		t.Errorf("empty focus: got %q, %v", f, err)
	}

	if _, err := core.ParseFocusArea("vibes"); err == nil {
		t.Error("expected error for unknown focus area")
	}
}

func TestFocusAreaNamesHavePhrases(t *testing.T) {
	for _, name := range core.FocusAreaNames() {
		f, err := core.ParseFocusArea(name)
		if err != nil {
			t.Errorf("ParseFocusArea(%q): %v", name, err)
			continue
		}
		if f.Phrase() == name {
			t.Errorf("focus %q has no display phrase", name)
		}
	}
}

func TestTokenUsageAdd(t *testing.T) {
	u := core.TokenUsage{InputTokens: 10, OutputTokens: 5}
	u.Add(core.TokenUsage{InputTokens: 3, OutputTokens: 7})
	if u.InputTokens != 13 || u.OutputTokens != 12 {
		t.Errorf("unexpected usage after Add: %+v", u)
	}
}
