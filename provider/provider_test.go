package provider_test

import (
	"testing"

	"github.com/draftwise/draftwise/provider"
)

func TestResolveByDisplayName(t *testing.T) {
	m, err := provider.Resolve("claude sonnet 4")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m.Provider != provider.NameAnthropic || m.ID != "claude-sonnet-4-20250514" {
		t.Errorf("unexpected model: %+v", m)
	}
}

func TestResolveByID(t *testing.T) {
	m, err := provider.Resolve("gpt-5")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m.Provider != provider.NameOpenAI || m.DisplayName != "GPT-5" {
		t.Errorf("unexpected model: %+v", m)
	}
}

func TestResolveEmptyReturnsDefault(t *testing.T) {
	m, err := provider.Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m != provider.DefaultModel() {
		t.Errorf("got %+v, want default %+v", m, provider.DefaultModel())
	}
}

func TestResolveUnknown(t *testing.T) {
	if _, err := provider.Resolve("gpt-2"); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestCatalogProvidersKnown(t *testing.T) {
	for _, m := range provider.Catalog {
		if m.Provider != provider.NameAnthropic && m.Provider != provider.NameOpenAI {
			t.Errorf("model %q has unknown provider %q", m.DisplayName, m.Provider)
		}
		if m.MaxTokens <= 0 {
			t.Errorf("model %q has no token cap", m.DisplayName)
		}
	}
}
